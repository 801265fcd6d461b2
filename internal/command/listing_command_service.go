package command

import (
	"context"
	"fmt"
	"time"

	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/cqrs"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/events"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/internal/catalog"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/internal/repository"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/internal/storage"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/models"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/utils"
	"github.com/sirupsen/logrus"
)

// ListingCommandService creates and mutates listings. Detail payloads are
// validated against the rubro's facet schema before anything is written.
type ListingCommandService struct {
	writeRepo *repository.ListingWriteRepository
	readRepo  *repository.ListingReadRepository
	media     *storage.MediaStore
	publisher *events.Publisher
	log       *logrus.Logger
}

func NewListingCommandService(
	writeRepo *repository.ListingWriteRepository,
	readRepo *repository.ListingReadRepository,
	media *storage.MediaStore,
	publisher *events.Publisher,
	log *logrus.Logger,
) *ListingCommandService {
	return &ListingCommandService{
		writeRepo: writeRepo,
		readRepo:  readRepo,
		media:     media,
		publisher: publisher,
		log:       log,
	}
}

func (s *ListingCommandService) CreateListing(cmd cqrs.CreateListingCommand) (*models.Listing, error) {
	if !cmd.Rubro.Valid() {
		return nil, fmt.Errorf("invalid rubro")
	}
	if cmd.Price < 0 {
		return nil, fmt.Errorf("invalid price")
	}
	if err := catalog.ValidateDetails(cmd.Rubro, cmd.Details); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	listing := &models.Listing{
		ID:          utils.GenerateID("lst"),
		SellerID:    cmd.SellerID,
		Title:       cmd.Title,
		Description: cmd.Description,
		Price:       cmd.Price,
		Rubro:       cmd.Rubro,
		Details:     cmd.Details,
		Features:    cmd.Features,
		Location:    cmd.Location,
		Coords:      cmd.Coords,
		Status:      models.ListingActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.writeRepo.Create(listing); err != nil {
		return nil, err
	}

	if err := s.publisher.Publish(context.Background(), events.ListingEventsStream, events.ListingCreated, events.ListingCreatedEvent{
		ListingID: listing.ID,
		SellerID:  listing.SellerID,
		Rubro:     string(listing.Rubro),
		Price:     listing.Price,
	}); err != nil {
		s.log.WithError(err).Error("failed to publish listing.created event")
	}
	return listing, nil
}

func (s *ListingCommandService) UpdateListing(cmd cqrs.UpdateListingCommand) (*models.Listing, error) {
	listing, err := s.writeRepo.GetByID(cmd.ListingID)
	if err != nil {
		return nil, err
	}
	if listing.SellerID != cmd.RequestingUserID {
		return nil, fmt.Errorf("forbidden")
	}
	if cmd.Price < 0 {
		return nil, fmt.Errorf("invalid price")
	}
	if err := catalog.ValidateDetails(listing.Rubro, cmd.Details); err != nil {
		return nil, err
	}
	if cmd.Status != "" && cmd.Status != models.ListingActive && cmd.Status != models.ListingPaused {
		return nil, fmt.Errorf("invalid status")
	}

	listing.Title = cmd.Title
	listing.Description = cmd.Description
	listing.Price = cmd.Price
	listing.Details = cmd.Details
	listing.Features = cmd.Features
	if cmd.Status != "" {
		listing.Status = cmd.Status
	}
	listing.UpdatedAt = time.Now().UTC()

	if err := s.writeRepo.Update(listing); err != nil {
		return nil, err
	}
	ctx := context.Background()
	s.readRepo.InvalidateView(ctx, listing.ID)

	if err := s.publisher.Publish(ctx, events.ListingEventsStream, events.ListingUpdated, events.ListingUpdatedEvent{
		ListingID: listing.ID,
		SellerID:  listing.SellerID,
	}); err != nil {
		s.log.WithError(err).Error("failed to publish listing.updated event")
	}
	return listing, nil
}

func (s *ListingCommandService) DeleteListing(cmd cqrs.DeleteListingCommand) error {
	listing, err := s.writeRepo.GetByID(cmd.ListingID)
	if err != nil {
		return err
	}
	if listing.SellerID != cmd.RequestingUserID {
		return fmt.Errorf("forbidden")
	}
	if err := s.writeRepo.Delete(cmd.ListingID); err != nil {
		return err
	}
	ctx := context.Background()
	s.readRepo.InvalidateView(ctx, cmd.ListingID)

	if err := s.publisher.Publish(ctx, events.ListingEventsStream, events.ListingDeleted, events.ListingDeletedEvent{
		ListingID: listing.ID,
		SellerID:  listing.SellerID,
	}); err != nil {
		s.log.WithError(err).Error("failed to publish listing.deleted event")
	}
	return nil
}

// AttachMedia uploads the object to MinIO and appends the resulting URL to
// the listing's media list.
func (s *ListingCommandService) AttachMedia(cmd cqrs.AttachMediaCommand) (*models.Media, error) {
	listing, err := s.writeRepo.GetByID(cmd.ListingID)
	if err != nil {
		return nil, err
	}
	if listing.SellerID != cmd.RequestingUserID {
		return nil, fmt.Errorf("forbidden")
	}

	kind := storage.KindFromContentType(cmd.ContentType)
	if kind == "" {
		return nil, fmt.Errorf("unsupported media type")
	}

	ctx := context.Background()
	url, err := s.media.Upload(ctx, cmd.ListingID, cmd.Filename, cmd.Body, cmd.Size, cmd.ContentType)
	if err != nil {
		return nil, err
	}

	media := models.Media{URL: url, Kind: kind}
	if err := s.writeRepo.AppendMedia(cmd.ListingID, media); err != nil {
		return nil, err
	}
	s.readRepo.InvalidateView(ctx, cmd.ListingID)
	return &media, nil
}
