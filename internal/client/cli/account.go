package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/trustcart/internal/client/forms"
	"github.com/dmitrijs2005/trustcart/internal/client/services"
)

// submit runs a form submission under the call timeout and renders any
// field errors inline.
func (a *App) submit(ctx context.Context, call func(context.Context) error) error {
	ctx, cancel := a.callContext(ctx)
	defer cancel()

	err := call(ctx)
	renderFieldErrors(a.out, err)
	return err
}

// login prompts for credentials and signs in.
func (a *App) login(ctx context.Context, _ []string) error {
	email, err := a.askDefault("Enter email", a.emailHint(ctx))
	if err != nil {
		return err
	}
	password, err := a.askPassword("Enter password")
	if err != nil {
		return err
	}
	return a.submit(ctx, func(ctx context.Context) error {
		return a.account.Login(ctx, forms.LoginDraft{Email: email, Password: password})
	})
}

// emailHint is the email of the last sign-in, or "".
func (a *App) emailHint(ctx context.Context) string {
	if a.lastEmail == nil {
		return ""
	}
	email, err := a.lastEmail(ctx)
	if err != nil {
		a.log.Debug(ctx, "read last email", "err", err)
		return ""
	}
	return email
}

func (a *App) register(ctx context.Context, _ []string) error {
	var d forms.RegisterDraft
	var err error
	if d.Name, err = a.ask("Enter name"); err != nil {
		return err
	}
	if d.Email, err = a.ask("Enter email"); err != nil {
		return err
	}
	if d.Password, err = a.askPassword("Enter password"); err != nil {
		return err
	}
	if d.PasswordConfirm, err = a.askPassword("Confirm password"); err != nil {
		return err
	}
	return a.submit(ctx, func(ctx context.Context) error {
		return a.account.Register(ctx, d)
	})
}

func (a *App) forgot(ctx context.Context, _ []string) error {
	email, err := a.ask("Enter your account email")
	if err != nil {
		return err
	}
	return a.submit(ctx, func(ctx context.Context) error {
		return a.account.ForgotPassword(ctx, forms.ForgotPasswordDraft{Email: email})
	})
}

// reset takes the token from the reset link, as an argument or prompted.
func (a *App) reset(ctx context.Context, args []string) error {
	var d forms.ResetPasswordDraft
	var err error
	if len(args) > 0 {
		d.Token = args[0]
	} else if d.Token, err = a.ask("Enter reset token"); err != nil {
		return err
	}
	if d.Password, err = a.askPassword("Enter new password"); err != nil {
		return err
	}
	if d.PasswordConfirm, err = a.askPassword("Confirm new password"); err != nil {
		return err
	}
	return a.submit(ctx, func(ctx context.Context) error {
		return a.account.ResetPassword(ctx, d)
	})
}

func (a *App) logout(ctx context.Context, _ []string) error {
	return a.account.Logout(ctx)
}

func (a *App) profile(_ context.Context, _ []string) error {
	u := a.session.Snapshot().User
	a.printf("Name:  %s\n", u.Name)
	a.printf("Email: %s\n", u.Email)
	a.printf("Role:  %s\n", u.Role)
	if u.Photo != "" {
		a.printf("Photo: %s\n", u.Photo)
	}
	return nil
}

func (a *App) updateMe(ctx context.Context, _ []string) error {
	u := a.session.Snapshot().User
	d := forms.ProfileDraft{Name: u.Name, Email: u.Email}
	var err error
	if d.Name, err = a.askDefault("Name", d.Name); err != nil {
		return err
	}
	if d.Email, err = a.askDefault("Email", d.Email); err != nil {
		return err
	}
	if d.Photo, err = a.ask("New photo (path or s3:// URL, empty to keep)"); err != nil {
		return err
	}
	return a.submit(ctx, func(ctx context.Context) error {
		return a.account.UpdateProfile(ctx, d)
	})
}

func (a *App) passwd(ctx context.Context, _ []string) error {
	var d forms.ChangePasswordDraft
	var err error
	if d.PasswordCurrent, err = a.askPassword("Current password"); err != nil {
		return err
	}
	if d.Password, err = a.askPassword("New password"); err != nil {
		return err
	}
	if d.PasswordConfirm, err = a.askPassword("Confirm new password"); err != nil {
		return err
	}
	return a.submit(ctx, func(ctx context.Context) error {
		return a.account.ChangePassword(ctx, d)
	})
}

// deleteMe asks for confirmation before deleting the account. A failed
// delete keeps the session and asks again until the user confirms a
// successful attempt or declines.
func (a *App) deleteMe(ctx context.Context, _ []string) error {
	for {
		ok, err := Confirm(a.reader, "Delete your account? This cannot be undone.", a.out)
		if err != nil {
			return err
		}
		if !ok {
			a.println("Account deletion cancelled.")
			return nil
		}
		err = a.submit(ctx, a.account.DeleteAccount)
		if err == nil || services.IsBlocked(err) || errors.Is(err, context.Canceled) {
			return err
		}
	}
}
