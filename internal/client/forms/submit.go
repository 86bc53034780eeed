package forms

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrijs2005/trustcart/internal/client/client"
	"github.com/dmitrijs2005/trustcart/internal/client/notify"
)

// Messages are the notifications of one form.
type Messages struct {
	// Success is shown when the call succeeds.
	Success string
	// Fallback is shown on failure when the server sent no message.
	Fallback string
}

// FailureMessage is the text shown for a failed call: the server's message
// when it sent one, else fallback.
func FailureMessage(err error, fallback string) string {
	if msg, ok := client.ServerMessage(err); ok {
		return msg
	}
	return fallback
}

// Form ties a draft to its validator and its single remote call. At most
// one submission is outstanding at a time.
type Form[D, I any] struct {
	validate func(D) (I, FieldErrors)
	call     func(context.Context, I) error
	msgs     Messages
	notifier notify.Notifier

	mu       sync.Mutex
	draft    D
	errs     FieldErrors
	inFlight bool
}

// NewForm builds a form. call may be nil when every submission goes through
// SubmitDraftTo.
func NewForm[D, I any](
	validate func(D) (I, FieldErrors),
	call func(context.Context, I) error,
	msgs Messages,
	notifier notify.Notifier,
) *Form[D, I] {
	return &Form[D, I]{validate: validate, call: call, msgs: msgs, notifier: notifier}
}

// Draft returns the current draft.
func (f *Form[D, I]) Draft() D {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

func (f *Form[D, I]) SetDraft(d D) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = d
}

// Errors returns the field errors of the last validation.
func (f *Form[D, I]) Errors() FieldErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errs
}

// Submit validates the draft and, when it is valid, issues the call.
//
//   - another submission in flight: ErrSubmitInFlight, nothing else happens
//   - field errors: a warning notification, the FieldErrors are returned
//   - call failure: an error notification, the draft is kept
//   - success: a success notification, the draft is cleared
func (f *Form[D, I]) Submit(ctx context.Context) error {
	f.mu.Lock()
	return f.submitLocked(ctx, f.call)
}

// SubmitDraft replaces the draft with d and submits it. While another
// submission is in flight the draft is left as it is.
func (f *Form[D, I]) SubmitDraft(ctx context.Context, d D) error {
	return f.SubmitDraftTo(ctx, d, f.call)
}

// SubmitDraftTo is SubmitDraft with call issued instead of the form's own
// call. Edit forms use it to target the record being edited.
func (f *Form[D, I]) SubmitDraftTo(ctx context.Context, d D, call func(context.Context, I) error) error {
	f.mu.Lock()
	if f.inFlight {
		f.mu.Unlock()
		return ErrSubmitInFlight
	}
	f.draft = d
	return f.submitLocked(ctx, call)
}

// submitLocked runs one submission. f.mu must be held; it is released
// before call runs.
func (f *Form[D, I]) submitLocked(ctx context.Context, call func(context.Context, I) error) error {
	if f.inFlight {
		f.mu.Unlock()
		return ErrSubmitInFlight
	}
	in, errs := f.validate(f.draft)
	f.errs = errs
	if len(errs) > 0 {
		f.mu.Unlock()
		notify.Warnf(ctx, f.notifier, "%s", FixValidationMessage)
		return errs
	}
	f.inFlight = true
	f.mu.Unlock()

	err := call(ctx, in)

	f.mu.Lock()
	f.inFlight = false
	if err == nil {
		var zero D
		f.draft = zero
	}
	f.mu.Unlock()

	if err != nil {
		f.notifier.Notify(ctx, notify.Notification{Severity: notify.Error, Message: FailureMessage(err, f.msgs.Fallback)})
		return err
	}
	if f.msgs.Success != "" {
		f.notifier.Notify(ctx, notify.Notification{Severity: notify.Success, Message: f.msgs.Success})
	}
	return nil
}

// IsValidation reports whether err is a blocked submission.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}
