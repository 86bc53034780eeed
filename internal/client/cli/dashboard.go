package cli

import (
	"context"
	"strconv"

	"github.com/dmitrijs2005/trustcart/internal/client/forms"
	"github.com/dmitrijs2005/trustcart/internal/client/services"
)

func (a *App) review(ctx context.Context, args []string) error {
	const usage = "review add <product> | review edit <product> <review> | review delete <product> <review>"
	if len(args) == 0 {
		return a.usage(usage)
	}
	switch {
	case args[0] == "add" && len(args) == 2:
		d, err := a.reviewDraft()
		if err != nil {
			return err
		}
		return a.submit(ctx, func(ctx context.Context) error {
			return a.reviews.Add(ctx, args[1], d)
		})

	case args[0] == "edit" && len(args) == 3:
		d, err := a.reviewDraft()
		if err != nil {
			return err
		}
		return a.submit(ctx, func(ctx context.Context) error {
			return a.reviews.Edit(ctx, args[1], args[2], d)
		})

	case args[0] == "delete" && len(args) == 3:
		return a.confirmed(ctx, "Delete this review?", func(ctx context.Context) error {
			return a.reviews.Delete(ctx, args[1], args[2])
		})
	}
	return a.usage(usage)
}

func (a *App) reviewDraft() (forms.ReviewDraft, error) {
	var d forms.ReviewDraft
	var err error
	if d.Rating, err = a.ask("Rating (1-5)"); err != nil {
		return d, err
	}
	d.Review, err = a.ask("Review")
	return d, err
}

// confirmed runs call after a yes/no confirmation.
func (a *App) confirmed(ctx context.Context, prompt string, call func(context.Context) error) error {
	ok, err := Confirm(a.reader, prompt, a.out)
	if err != nil || !ok {
		return err
	}
	return a.submit(ctx, call)
}

func (a *App) overview(ctx context.Context, _ []string) error {
	ctx, cancel := a.callContext(ctx)
	defer cancel()

	stats, err := a.catalog.Stats(ctx)
	if err != nil {
		a.println("Failed to load statistics:", failureText(err))
		return err
	}
	a.println("Overview")
	renderStats(a.out, stats)
	return nil
}

// pageArg reads an optional page number argument.
func (a *App) pageArg(args []string) (int, bool) {
	if len(args) == 0 {
		return 1, true
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		a.println("Page must be a positive number")
		return 0, false
	}
	return n, true
}

func (a *App) productTable(ctx context.Context, args []string) error {
	page, ok := a.pageArg(args)
	if !ok {
		return nil
	}
	ctx, cancel := a.callContext(ctx)
	defer cancel()

	err := renderListing(a.out, a.admin.Products(ctx, page, services.DefaultPageSize), "products", productLine)
	a.printf("Page %d\n", page)
	return err
}

func (a *App) myProducts(ctx context.Context, args []string) error {
	return a.productTable(ctx, args)
}

func (a *App) userTable(ctx context.Context, args []string) error {
	page, ok := a.pageArg(args)
	if !ok {
		return nil
	}
	ctx, cancel := a.callContext(ctx)
	defer cancel()

	err := renderListing(a.out, a.admin.Users(ctx, page, services.DefaultPageSize), "users", userLine)
	a.printf("Page %d\n", page)
	return err
}

const adminUsage = "admin products [page] | addproduct | editproduct <id> | delproduct <id> | users [page] | adduser | edituser <id> | deluser <id>"

func (a *App) adminCmd(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.usage(adminUsage)
	}
	sub, rest := args[0], args[1:]
	switch {
	case sub == "products":
		return a.productTable(ctx, rest)
	case sub == "users":
		return a.userTable(ctx, rest)
	case sub == "addproduct":
		return a.addProduct(ctx)
	case sub == "editproduct" && len(rest) == 1:
		return a.editProduct(ctx, rest[0])
	case sub == "delproduct" && len(rest) == 1:
		return a.confirmed(ctx, "Delete product "+rest[0]+"?", func(ctx context.Context) error {
			return a.admin.DeleteProduct(ctx, rest[0])
		})
	case sub == "adduser":
		return a.addUser(ctx)
	case sub == "edituser" && len(rest) == 1:
		return a.editUser(ctx, rest[0])
	case sub == "deluser" && len(rest) == 1:
		return a.confirmed(ctx, "Delete user "+rest[0]+"?", func(ctx context.Context) error {
			return a.admin.DeleteUser(ctx, rest[0])
		})
	}
	return a.usage(adminUsage)
}

// productForm fills d interactively. With replace set, empty image answers
// keep the stored images.
func (a *App) productForm(d forms.ProductDraft, replace bool) (forms.ProductDraft, error) {
	var err error
	if d.Title, err = a.askDefault("Title", d.Title); err != nil {
		return d, err
	}
	if d.Description == "" {
		d.Description, err = GetMultiline(a.reader, "Description", a.out)
	} else {
		d.Description, err = a.askDefault("Description", d.Description)
	}
	if err != nil {
		return d, err
	}
	if d.Price, err = a.askDefault("Price", d.Price); err != nil {
		return d, err
	}
	if d.Brand, err = a.askDefault("Brand id", d.Brand); err != nil {
		return d, err
	}
	if d.Category, err = a.askDefault("Category id", d.Category); err != nil {
		return d, err
	}
	coverPrompt := "Cover image (path or s3:// URL)"
	imagesPrompt := "Product images, up to 4 (paths or s3:// URLs)"
	if replace {
		coverPrompt += ", empty to keep"
		imagesPrompt += ", none to keep"
	}
	if d.Cover, err = a.ask(coverPrompt); err != nil {
		return d, err
	}
	d.Images, err = a.askLines(imagesPrompt)
	return d, err
}

func (a *App) addProduct(ctx context.Context) error {
	d, err := a.productForm(forms.ProductDraft{}, false)
	if err != nil {
		return err
	}
	return a.submit(ctx, func(ctx context.Context) error {
		return a.admin.AddProduct(ctx, d)
	})
}

func (a *App) editProduct(ctx context.Context, id string) error {
	cctx, cancel := a.callContext(ctx)
	d, err := a.admin.ProductDraft(cctx, id)
	cancel()
	if err != nil {
		a.println("Failed to load product:", failureText(err))
		return err
	}
	if d, err = a.productForm(d, true); err != nil {
		return err
	}
	return a.submit(ctx, func(ctx context.Context) error {
		return a.admin.EditProduct(ctx, id, d)
	})
}

// userForm fills d interactively. Passwords are asked for new users; on
// edit they stay unchanged when left empty.
func (a *App) userForm(d forms.UserDraft, edit bool) (forms.UserDraft, error) {
	var err error
	if d.Name, err = a.askDefault("Name", d.Name); err != nil {
		return d, err
	}
	if d.Email, err = a.askDefault("Email", d.Email); err != nil {
		return d, err
	}
	if d.Role, err = a.askDefault("Role (user or admin)", d.Role); err != nil {
		return d, err
	}
	prompt := "Password"
	if edit {
		prompt = "New password (empty to keep)"
	}
	if d.Password, err = a.askPassword(prompt); err != nil {
		return d, err
	}
	if d.Password == "" && edit {
		return d, nil
	}
	d.PasswordConfirm, err = a.askPassword("Confirm password")
	return d, err
}

func (a *App) addUser(ctx context.Context) error {
	d, err := a.userForm(forms.UserDraft{}, false)
	if err != nil {
		return err
	}
	return a.submit(ctx, func(ctx context.Context) error {
		return a.admin.AddUser(ctx, d)
	})
}

func (a *App) editUser(ctx context.Context, id string) error {
	cctx, cancel := a.callContext(ctx)
	d, err := a.admin.UserDraft(cctx, id)
	cancel()
	if err != nil {
		a.println("Failed to load user:", failureText(err))
		return err
	}
	if d, err = a.userForm(d, true); err != nil {
		return err
	}
	return a.submit(ctx, func(ctx context.Context) error {
		return a.admin.EditUser(ctx, id, d)
	})
}
