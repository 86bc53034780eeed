package services

import (
	"context"

	"github.com/dmitrijs2005/trustcart/internal/client/client"
	"github.com/dmitrijs2005/trustcart/internal/client/forms"
	"github.com/dmitrijs2005/trustcart/internal/client/notify"
	"github.com/dmitrijs2005/trustcart/internal/client/session"
)

var (
	addReviewMessages = forms.Messages{
		Success:  "Review added successfully!",
		Fallback: "Failed to add review.",
	}
	editReviewMessages = forms.Messages{
		Success:  "Review updated successfully!",
		Fallback: "Failed to update review.",
	}
	deleteReviewMessages = forms.Messages{
		Success:  "Review deleted successfully!",
		Fallback: "Failed to delete review.",
	}
)

// ReviewService manages the signed-in user's reviews of a product. Every
// method needs a session.
type ReviewService interface {
	Add(ctx context.Context, productID string, d forms.ReviewDraft) error
	Edit(ctx context.Context, productID, reviewID string, d forms.ReviewDraft) error
	Delete(ctx context.Context, productID, reviewID string) error
}

type reviewService struct {
	client   client.Client
	session  *session.Session
	notifier notify.Notifier

	add  *forms.Form[forms.ReviewDraft, forms.ReviewInput]
	edit *forms.Form[forms.ReviewDraft, forms.ReviewInput]
}

func NewReviewService(c client.Client, s *session.Session, n notify.Notifier) ReviewService {
	return &reviewService{
		client:   c,
		session:  s,
		notifier: n,
		add:      forms.NewForm[forms.ReviewDraft, forms.ReviewInput](forms.ValidateReview, nil, addReviewMessages, n),
		edit:     forms.NewForm[forms.ReviewDraft, forms.ReviewInput](forms.ValidateReview, nil, editReviewMessages, n),
	}
}

func (r *reviewService) Add(ctx context.Context, productID string, d forms.ReviewDraft) error {
	if err := r.session.Require(); err != nil {
		return err
	}
	return r.add.SubmitDraftTo(ctx, d, func(ctx context.Context, in forms.ReviewInput) error {
		_, err := r.client.CreateReview(ctx, productID, client.ReviewRequest{Rating: in.Rating, Review: in.Review})
		return err
	})
}

func (r *reviewService) Edit(ctx context.Context, productID, reviewID string, d forms.ReviewDraft) error {
	if err := r.session.Require(); err != nil {
		return err
	}
	return r.edit.SubmitDraftTo(ctx, d, func(ctx context.Context, in forms.ReviewInput) error {
		_, err := r.client.UpdateReview(ctx, productID, reviewID, client.ReviewRequest{Rating: in.Rating, Review: in.Review})
		return err
	})
}

func (r *reviewService) Delete(ctx context.Context, productID, reviewID string) error {
	if err := r.session.Require(); err != nil {
		return err
	}
	if err := r.client.DeleteReview(ctx, productID, reviewID); err != nil {
		notify.Errorf(ctx, r.notifier, "%s", forms.FailureMessage(err, deleteReviewMessages.Fallback))
		return err
	}
	notify.Successf(ctx, r.notifier, "%s", deleteReviewMessages.Success)
	return nil
}
