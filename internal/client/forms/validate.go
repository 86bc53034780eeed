package forms

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/trustcart/internal/client/models"
)

// Field names, as shown next to inline errors.
const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldPasswordConfirm = "passwordConfirm"
	FieldPasswordCurrent = "passwordCurrent"
	FieldToken           = "token"
	FieldTitle           = "title"
	FieldDescription     = "description"
	FieldPrice           = "price"
	FieldBrand           = "brand"
	FieldCategory        = "category"
	FieldImageCover      = "imageCover"
	FieldImages          = "images"
	FieldRole            = "role"
	FieldRating          = "rating"
	FieldReview          = "review"
)

// MinPasswordLength applies to every password a user chooses. It counts
// characters, not bytes.
const MinPasswordLength = 8

// MaxProductImages is how many product images are kept; extras are dropped.
const MaxProductImages = 4

var (
	// authEmailRe is the check used on login, registration and password
	// recovery.
	authEmailRe = regexp.MustCompile(`(?i)^[A-Z0-9._%+-]+@[A-Z0-9.-]+\.[A-Z]{2,}$`)
	// profileEmailRe is the looser check of the profile form.
	profileEmailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

func checkAuthEmail(errs *FieldErrors, email string) {
	switch {
	case email == "":
		errs.add(FieldEmail, "Email is required")
	case !authEmailRe.MatchString(email):
		errs.add(FieldEmail, "Invalid email address")
	}
}

func checkNewPassword(errs *FieldErrors, field, password, requiredMsg string) {
	switch {
	case password == "":
		errs.add(field, requiredMsg)
	case utf8.RuneCountInString(password) < MinPasswordLength:
		errs.add(field, "Password must be at least 8 characters")
	}
}

func checkConfirm(errs *FieldErrors, password, confirm string) {
	if password != confirm {
		errs.add(FieldPasswordConfirm, "Passwords do not match")
	}
}

func required(errs *FieldErrors, field, value, msg string) {
	if strings.TrimSpace(value) == "" {
		errs.add(field, msg)
	}
}

type LoginDraft struct {
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

func ValidateLogin(d LoginDraft) (LoginInput, FieldErrors) {
	var errs FieldErrors
	email := strings.TrimSpace(d.Email)
	checkAuthEmail(&errs, email)
	checkNewPassword(&errs, FieldPassword, d.Password, "Password is required")
	return LoginInput{Email: email, Password: d.Password}, errs
}

type RegisterDraft struct {
	Name            string
	Email           string
	Password        string
	PasswordConfirm string
}

type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	PasswordConfirm string
}

func ValidateRegister(d RegisterDraft) (RegisterInput, FieldErrors) {
	var errs FieldErrors
	in := RegisterInput{
		Name:            strings.TrimSpace(d.Name),
		Email:           strings.TrimSpace(d.Email),
		Password:        d.Password,
		PasswordConfirm: d.PasswordConfirm,
	}
	required(&errs, FieldName, in.Name, "Name is required")
	checkAuthEmail(&errs, in.Email)
	checkNewPassword(&errs, FieldPassword, in.Password, "Password is required")
	checkConfirm(&errs, in.Password, in.PasswordConfirm)
	return in, errs
}

type ForgotPasswordDraft struct {
	Email string
}

func ValidateForgotPassword(d ForgotPasswordDraft) (string, FieldErrors) {
	var errs FieldErrors
	email := strings.TrimSpace(d.Email)
	checkAuthEmail(&errs, email)
	return email, errs
}

type ResetPasswordDraft struct {
	Token           string
	Password        string
	PasswordConfirm string
}

type ResetPasswordInput = ResetPasswordDraft

func ValidateResetPassword(d ResetPasswordDraft) (ResetPasswordInput, FieldErrors) {
	var errs FieldErrors
	d.Token = strings.TrimSpace(d.Token)
	required(&errs, FieldToken, d.Token, "Reset token is required")
	checkNewPassword(&errs, FieldPassword, d.Password, "Password is required")
	checkConfirm(&errs, d.Password, d.PasswordConfirm)
	return d, errs
}

// ProfileDraft is the update-profile form. Photo is an optional image
// source (a local path or s3:// URL).
type ProfileDraft struct {
	Name  string
	Email string
	Photo string
}

type ProfileInput = ProfileDraft

func ValidateProfile(d ProfileDraft) (ProfileInput, FieldErrors) {
	var errs FieldErrors
	in := ProfileInput{
		Name:  strings.TrimSpace(d.Name),
		Email: strings.TrimSpace(d.Email),
		Photo: strings.TrimSpace(d.Photo),
	}
	required(&errs, FieldName, in.Name, "Name is required")
	switch {
	case in.Email == "":
		errs.add(FieldEmail, "Email is required")
	case !profileEmailRe.MatchString(in.Email):
		errs.add(FieldEmail, "Invalid email format")
	}
	return in, errs
}

type ChangePasswordDraft struct {
	PasswordCurrent string
	Password        string
	PasswordConfirm string
}

type ChangePasswordInput = ChangePasswordDraft

func ValidateChangePassword(d ChangePasswordDraft) (ChangePasswordInput, FieldErrors) {
	var errs FieldErrors
	if d.PasswordCurrent == "" {
		errs.add(FieldPasswordCurrent, "Current password is required")
	}
	checkNewPassword(&errs, FieldPassword, d.Password, "New password is required")
	checkConfirm(&errs, d.Password, d.PasswordConfirm)
	return d, errs
}

// ProductDraft is the admin product form. Cover and Images are image
// sources (local paths or s3:// URLs).
type ProductDraft struct {
	Title       string
	Description string
	Price       string
	Brand       string
	Category    string
	Cover       string
	Images      []string
}

type ProductInput struct {
	Title       string
	Description string
	Price       float64
	Brand       string
	Category    string
	Cover       string
	Images      []string
}

// ValidateNewProduct requires every field including the images.
func ValidateNewProduct(d ProductDraft) (ProductInput, FieldErrors) {
	in, errs := validateProduct(d)
	required(&errs, FieldImageCover, in.Cover, "Cover image is required")
	if len(in.Images) == 0 {
		errs.add(FieldImages, "At least one product image is required")
	}
	return in, errs
}

// ValidateProductEdit leaves the images optional; the stored ones are
// kept when none are given.
func ValidateProductEdit(d ProductDraft) (ProductInput, FieldErrors) {
	return validateProduct(d)
}

func validateProduct(d ProductDraft) (ProductInput, FieldErrors) {
	var errs FieldErrors
	in := ProductInput{
		Title:       strings.TrimSpace(d.Title),
		Description: strings.TrimSpace(d.Description),
		Brand:       strings.TrimSpace(d.Brand),
		Category:    strings.TrimSpace(d.Category),
		Cover:       strings.TrimSpace(d.Cover),
	}
	for _, img := range d.Images {
		if img = strings.TrimSpace(img); img != "" {
			in.Images = append(in.Images, img)
		}
	}
	if len(in.Images) > MaxProductImages {
		in.Images = in.Images[:MaxProductImages]
	}

	required(&errs, FieldTitle, in.Title, "Title is required")
	required(&errs, FieldDescription, in.Description, "Description is required")

	price := strings.TrimSpace(d.Price)
	if price == "" {
		errs.add(FieldPrice, "Price is required")
	} else if p, err := strconv.ParseFloat(price, 64); err != nil || p < 0 || math.IsNaN(p) || math.IsInf(p, 0) {
		errs.add(FieldPrice, "Price must be a positive number")
	} else {
		in.Price = p
	}

	required(&errs, FieldBrand, in.Brand, "Brand is required")
	required(&errs, FieldCategory, in.Category, "Category is required")
	return in, errs
}

type UserDraft struct {
	Name            string
	Email           string
	Password        string
	PasswordConfirm string
	Role            string
}

type UserInput struct {
	Name            string
	Email           string
	Password        string
	PasswordConfirm string
	Role            models.Role
}

// ValidateNewUser requires a password for the account being created.
func ValidateNewUser(d UserDraft) (UserInput, FieldErrors) {
	in, errs := validateUser(d)
	checkNewPassword(&errs, FieldPassword, in.Password, "Password is required")
	checkConfirm(&errs, in.Password, in.PasswordConfirm)
	return in, errs
}

// ValidateUserEdit checks the password only when one is given.
func ValidateUserEdit(d UserDraft) (UserInput, FieldErrors) {
	in, errs := validateUser(d)
	if in.Password != "" || in.PasswordConfirm != "" {
		checkNewPassword(&errs, FieldPassword, in.Password, "Password is required")
		checkConfirm(&errs, in.Password, in.PasswordConfirm)
	}
	return in, errs
}

func validateUser(d UserDraft) (UserInput, FieldErrors) {
	var errs FieldErrors
	in := UserInput{
		Name:            strings.TrimSpace(d.Name),
		Email:           strings.TrimSpace(d.Email),
		Password:        d.Password,
		PasswordConfirm: d.PasswordConfirm,
		Role:            models.Role(strings.ToLower(strings.TrimSpace(d.Role))),
	}
	required(&errs, FieldName, in.Name, "Name is required")
	checkAuthEmail(&errs, in.Email)
	if in.Role == "" {
		in.Role = models.RoleUser
	}
	if !in.Role.Valid() {
		errs.add(FieldRole, "Role must be user or admin")
	}
	return in, errs
}

type ReviewDraft struct {
	Rating string
	Review string
}

type ReviewInput struct {
	Rating float64
	Review string
}

func ValidateReview(d ReviewDraft) (ReviewInput, FieldErrors) {
	var errs FieldErrors
	in := ReviewInput{Review: strings.TrimSpace(d.Review)}

	r, err := strconv.ParseFloat(strings.TrimSpace(d.Rating), 64)
	switch {
	case strings.TrimSpace(d.Rating) == "":
		errs.add(FieldRating, "Rating is required")
	case err != nil || math.IsNaN(r) || r < 1 || r > 5:
		errs.add(FieldRating, "Rating must be between 1 and 5")
	default:
		in.Rating = r
	}
	required(&errs, FieldReview, in.Review, "Review is required")
	return in, errs
}
