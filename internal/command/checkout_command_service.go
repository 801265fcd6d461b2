package command

import (
	"context"
	"fmt"
	"time"

	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/cqrs"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/events"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/internal/checkout"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/internal/repository"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/models"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/utils"
	"github.com/sirupsen/logrus"
)

// CheckoutCommandService settles purchases. The credit envelope is checked
// before any write, the transfer itself is atomic in the repository, and the
// buyer↔seller conversation is linked so the caller can navigate to it.
type CheckoutCommandService struct {
	listingRepo *repository.ListingWriteRepository
	listingRead *repository.ListingReadRepository
	userRepo    *repository.UserRepository
	txRepo      *repository.TransactionRepository
	convRepo    *repository.ConversationRepository
	publisher   *events.Publisher
	log         *logrus.Logger
}

func NewCheckoutCommandService(
	listingRepo *repository.ListingWriteRepository,
	listingRead *repository.ListingReadRepository,
	userRepo *repository.UserRepository,
	txRepo *repository.TransactionRepository,
	convRepo *repository.ConversationRepository,
	publisher *events.Publisher,
	log *logrus.Logger,
) *CheckoutCommandService {
	return &CheckoutCommandService{
		listingRepo: listingRepo,
		listingRead: listingRead,
		userRepo:    userRepo,
		txRepo:      txRepo,
		convRepo:    convRepo,
		publisher:   publisher,
		log:         log,
	}
}

func (s *CheckoutCommandService) Checkout(cmd cqrs.CheckoutCommand) (*models.CheckoutResult, error) {
	ctx := context.Background()

	if !utils.ValidateListingID(cmd.ListingID) {
		return nil, fmt.Errorf("listing not found")
	}

	listing, err := s.listingRepo.GetByID(cmd.ListingID)
	if err != nil {
		return nil, fmt.Errorf("listing not found")
	}
	if listing.SellerID == cmd.BuyerID {
		return nil, fmt.Errorf("forbidden")
	}
	if listing.Status != models.ListingActive {
		return nil, fmt.Errorf("listing not available")
	}

	buyer, err := s.userRepo.GetByID(cmd.BuyerID)
	if err != nil {
		return nil, err
	}
	env := checkout.NewEnvelope(buyer.Balance, &buyer.CreditLimit)
	if err := env.Check(listing.Price); err != nil {
		return nil, fmt.Errorf("insufficient credit")
	}

	transaction := &models.Transaction{
		ID:        utils.GenerateID("tan"),
		ListingID: listing.ID,
		BuyerID:   cmd.BuyerID,
		SellerID:  listing.SellerID,
		Amount:    listing.Price,
		CreatedAt: time.Now().UTC(),
	}
	// The repository re-checks the credit floor inside the SQL transaction;
	// a concurrent purchase that drained the balance surfaces here.
	if err := s.txRepo.RecordTransfer(ctx, transaction); err != nil {
		return nil, err
	}

	s.userRepo.InvalidateProfile(ctx, cmd.BuyerID)
	s.userRepo.InvalidateProfile(ctx, listing.SellerID)

	conversation, err := s.convRepo.FindOrCreate(ctx, listing.ID, cmd.BuyerID, listing.SellerID)
	if err != nil {
		// The transfer already settled; a missing thread is not worth failing
		// the purchase over.
		s.log.WithError(err).WithField("listing", listing.ID).Error("failed to link conversation")
		conversation = &models.Conversation{}
	}

	if err := s.publisher.Publish(ctx, events.CheckoutEventsStream, events.CheckoutCompleted, events.CheckoutCompletedEvent{
		TransactionID:  transaction.ID,
		ListingID:      listing.ID,
		ListingTitle:   listing.Title,
		BuyerID:        cmd.BuyerID,
		SellerID:       listing.SellerID,
		Amount:         listing.Price,
		ConversationID: conversation.ID,
	}); err != nil {
		s.log.WithError(err).Error("failed to publish checkout.completed event")
	}

	return &models.CheckoutResult{
		Transaction:    transaction,
		ConversationID: conversation.ID,
	}, nil
}
