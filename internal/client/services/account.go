// Package services contains the application services behind the TrustCart
// shell. Each service validates a form draft, issues the single API call it
// stands for and reports the outcome as a notification.
// This file defines the account service: sign-in, registration, password
// recovery and profile management.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/trustcart/internal/client/client"
	"github.com/dmitrijs2005/trustcart/internal/client/forms"
	"github.com/dmitrijs2005/trustcart/internal/client/notify"
	"github.com/dmitrijs2005/trustcart/internal/client/session"
)

// Messages shown by the account flows.
var (
	loginMessages = forms.Messages{
		Success:  "Successfully logged in! Welcome back!",
		Fallback: "Login failed. Please try again.",
	}
	registerMessages = forms.Messages{
		Success:  "Registration successful! Please login.",
		Fallback: "Registration failed",
	}
	forgotMessages = forms.Messages{
		Success:  "Reset link sent! Please check your email.",
		Fallback: "Failed to send reset link",
	}
	resetMessages = forms.Messages{
		Success:  "Password reset successful! Please login with your new password.",
		Fallback: "Password reset failed",
	}
	profileMessages = forms.Messages{
		Success:  "Information updated successfully.",
		Fallback: "Failed to update information!",
	}
	passwordMessages = forms.Messages{
		Success:  "Password updated successfully! Please login again.",
		Fallback: "Failed to update password",
	}
	deleteAccountMessages = forms.Messages{
		Success:  "Your account has been deleted.",
		Fallback: "Failed to delete account",
	}
)

// ImageLoader resolves an image source into an upload part.
type ImageLoader interface {
	Load(ctx context.Context, source string) (client.Upload, error)
	LoadAll(ctx context.Context, sources []string) ([]client.Upload, error)
	LoadOptional(ctx context.Context, source string) (*client.Upload, error)
}

// AccountService defines the account operations of the shell.
//
// Contract:
//   - Every draft-taking method validates first; on field errors it makes
//     no call and returns forms.FieldErrors.
//   - On a failed call the error is returned and an error notification
//     carries the server message or the flow's fallback text.
//   - ChangePassword and DeleteAccount end the session on success.
type AccountService interface {
	Login(ctx context.Context, d forms.LoginDraft) error
	Register(ctx context.Context, d forms.RegisterDraft) error
	ForgotPassword(ctx context.Context, d forms.ForgotPasswordDraft) error
	ResetPassword(ctx context.Context, d forms.ResetPasswordDraft) error
	UpdateProfile(ctx context.Context, d forms.ProfileDraft) error
	ChangePassword(ctx context.Context, d forms.ChangePasswordDraft) error
	DeleteAccount(ctx context.Context) error
	Logout(ctx context.Context) error
}

type accountService struct {
	client   client.Client
	session  *session.Session
	images   ImageLoader
	notifier notify.Notifier
	// profileURL is sent on sign-up as the link to the new profile.
	profileURL string

	login    *forms.Form[forms.LoginDraft, forms.LoginInput]
	register *forms.Form[forms.RegisterDraft, forms.RegisterInput]
	forgot   *forms.Form[forms.ForgotPasswordDraft, string]
	reset    *forms.Form[forms.ResetPasswordDraft, forms.ResetPasswordInput]
	profile  *forms.Form[forms.ProfileDraft, forms.ProfileInput]
	password *forms.Form[forms.ChangePasswordDraft, forms.ChangePasswordInput]
}

// NewAccountService constructs an AccountService. profileURL is optional.
func NewAccountService(c client.Client, s *session.Session, images ImageLoader, n notify.Notifier, profileURL string) AccountService {
	a := &accountService{client: c, session: s, images: images, notifier: n, profileURL: profileURL}
	a.login = forms.NewForm(forms.ValidateLogin, s.Login, loginMessages, n)
	a.register = forms.NewForm(forms.ValidateRegister, a.signUp, registerMessages, n)
	a.forgot = forms.NewForm(forms.ValidateForgotPassword, c.ForgotPassword, forgotMessages, n)
	a.reset = forms.NewForm(forms.ValidateResetPassword, a.resetPassword, resetMessages, n)
	a.profile = forms.NewForm(forms.ValidateProfile, a.updateMe, profileMessages, n)
	a.password = forms.NewForm(forms.ValidateChangePassword, a.changePassword, passwordMessages, n)
	return a
}

func (a *accountService) Login(ctx context.Context, d forms.LoginDraft) error {
	return a.login.SubmitDraft(ctx, d)
}

func (a *accountService) Register(ctx context.Context, d forms.RegisterDraft) error {
	return a.register.SubmitDraft(ctx, d)
}

func (a *accountService) signUp(ctx context.Context, in forms.RegisterInput) error {
	return a.client.SignUp(ctx, client.SignUpRequest{
		Name:            in.Name,
		Email:           in.Email,
		Password:        in.Password,
		PasswordConfirm: in.PasswordConfirm,
		URL:             a.profileURL,
	})
}

func (a *accountService) ForgotPassword(ctx context.Context, d forms.ForgotPasswordDraft) error {
	return a.forgot.SubmitDraft(ctx, d)
}

func (a *accountService) ResetPassword(ctx context.Context, d forms.ResetPasswordDraft) error {
	return a.reset.SubmitDraft(ctx, d)
}

func (a *accountService) resetPassword(ctx context.Context, in forms.ResetPasswordInput) error {
	return a.client.ResetPassword(ctx, in.Token, client.ResetPasswordRequest{
		Password:        in.Password,
		PasswordConfirm: in.PasswordConfirm,
	})
}

func (a *accountService) UpdateProfile(ctx context.Context, d forms.ProfileDraft) error {
	if err := a.session.Require(); err != nil {
		return err
	}
	return a.profile.SubmitDraft(ctx, d)
}

func (a *accountService) updateMe(ctx context.Context, in forms.ProfileInput) error {
	photo, err := a.images.LoadOptional(ctx, in.Photo)
	if err != nil {
		return fmt.Errorf("photo: %w", err)
	}
	u, err := a.client.UpdateMe(ctx, client.UpdateMeRequest{Name: in.Name, Email: in.Email, Photo: photo})
	if err != nil {
		return err
	}
	a.session.SetUser(ctx, u)
	return nil
}

func (a *accountService) ChangePassword(ctx context.Context, d forms.ChangePasswordDraft) error {
	if err := a.session.Require(); err != nil {
		return err
	}
	return a.password.SubmitDraft(ctx, d)
}

func (a *accountService) changePassword(ctx context.Context, in forms.ChangePasswordInput) error {
	err := a.client.UpdateMyPassword(ctx, client.UpdatePasswordRequest{
		PasswordCurrent: in.PasswordCurrent,
		Password:        in.Password,
		PasswordConfirm: in.PasswordConfirm,
	})
	if err != nil {
		return err
	}
	// the issued token is no longer valid
	return a.session.Logout(ctx)
}

// DeleteAccount deletes the signed-in account. On failure the session is
// kept.
func (a *accountService) DeleteAccount(ctx context.Context) error {
	if err := a.session.Require(); err != nil {
		return err
	}
	if err := a.client.DeleteMe(ctx); err != nil {
		notify.Errorf(ctx, a.notifier, "%s", forms.FailureMessage(err, deleteAccountMessages.Fallback))
		return err
	}
	if err := a.session.AccountDeleted(ctx); err != nil {
		return err
	}
	notify.Successf(ctx, a.notifier, "%s", deleteAccountMessages.Success)
	return nil
}

func (a *accountService) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	notify.Infof(ctx, a.notifier, "Logged out")
	return nil
}

// IsBlocked reports whether err stopped a submission before any call was
// made: field errors or a missing session.
func IsBlocked(err error) bool {
	return forms.IsValidation(err) || errors.Is(err, session.ErrLoginRequired) || errors.Is(err, forms.ErrSubmitInFlight)
}
