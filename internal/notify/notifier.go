package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/events"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/internal/repository"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/models"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/utils"
	"github.com/sirupsen/logrus"
)

// Notifier turns checkout events into seller notifications. Inserts are keyed
// by transaction id, so a redelivered event never produces a second row.
type Notifier struct {
	notificationRepo *repository.NotificationRepository
	log              *logrus.Logger
}

func NewNotifier(notificationRepo *repository.NotificationRepository, log *logrus.Logger) *Notifier {
	return &Notifier{notificationRepo: notificationRepo, log: log}
}

// Handle implements events.Handler for the checkout stream.
func (n *Notifier) Handle(ctx context.Context, event events.Event) error {
	if event.Type != events.CheckoutCompleted {
		return nil
	}

	raw, err := json.Marshal(event.Data)
	if err != nil {
		return fmt.Errorf("failed to re-marshal event data: %w", err)
	}
	var payload events.CheckoutCompletedEvent
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("failed to decode checkout event: %w", err)
	}

	notification := &models.Notification{
		ID:            utils.GenerateID("ntf"),
		UserID:        payload.SellerID,
		Kind:          "sale",
		TransactionID: payload.TransactionID,
		ListingID:     payload.ListingID,
		Body:          fmt.Sprintf("Vendiste \"%s\" por %d IX", payload.ListingTitle, payload.Amount),
		Read:          false,
		CreatedAt:     time.Now().UTC(),
	}
	if err := n.notificationRepo.Insert(ctx, notification); err != nil {
		return err
	}

	n.log.WithFields(logrus.Fields{
		"transactionId": payload.TransactionID,
		"sellerId":      payload.SellerID,
	}).Info("seller notified")
	return nil
}
