package client

import (
	"context"

	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/internal/checkout"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/models"
)

// CheckoutFlow drives the confirmation dialog for one listing. The dialog
// enforces the credit envelope before a request goes out and blocks a second
// confirm while one is in flight; the server re-checks everything anyway.
type CheckoutFlow struct {
	api     *Client
	listing *models.ListingView
	dialog  *checkout.Dialog
}

// NewCheckoutFlow builds the flow from the listing being bought and the
// buyer's current profile.
func NewCheckoutFlow(api *Client, listing *models.ListingView, profile *models.ProfileView) *CheckoutFlow {
	env := checkout.NewEnvelope(profile.Balance, &profile.CreditLimit)
	return &CheckoutFlow{
		api:     api,
		listing: listing,
		dialog:  checkout.NewDialog(env, listing.Price),
	}
}

func (f *CheckoutFlow) Dialog() *checkout.Dialog {
	return f.dialog
}

func (f *CheckoutFlow) Open() {
	f.dialog.Open()
}

func (f *CheckoutFlow) Dismiss() {
	f.dialog.Dismiss()
}

// Confirm submits the purchase. On failure the dialog re-opens with confirm
// enabled so the user can retry or dismiss; on success it closes.
func (f *CheckoutFlow) Confirm(ctx context.Context) (*models.CheckoutResult, error) {
	if err := f.dialog.Begin(); err != nil {
		return nil, err
	}

	var result models.CheckoutResult
	err := f.api.post(ctx, "/api/checkout/"+f.listing.ID, nil, &result)
	f.dialog.Finish(err == nil)
	if err != nil {
		return nil, err
	}
	return &result, nil
}
