package command

import (
	"context"
	"fmt"

	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/cqrs"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/events"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/internal/repository"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/models"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/utils"
	"github.com/sirupsen/logrus"
)

// FavoriteCommandService toggles the server-persisted favorites of an
// authenticated user. Anonymous favorites never reach this service; they live
// only in the client.
type FavoriteCommandService struct {
	favoriteRepo *repository.FavoriteRepository
	listingRepo  *repository.ListingWriteRepository
	publisher    *events.Publisher
	log          *logrus.Logger
}

func NewFavoriteCommandService(
	favoriteRepo *repository.FavoriteRepository,
	listingRepo *repository.ListingWriteRepository,
	publisher *events.Publisher,
	log *logrus.Logger,
) *FavoriteCommandService {
	return &FavoriteCommandService{
		favoriteRepo: favoriteRepo,
		listingRepo:  listingRepo,
		publisher:    publisher,
		log:          log,
	}
}

func (s *FavoriteCommandService) Toggle(cmd cqrs.ToggleFavoriteCommand) (*models.FavoriteToggle, error) {
	ctx := context.Background()

	if !utils.ValidateListingID(cmd.ListingID) {
		return nil, fmt.Errorf("listing not found")
	}
	if _, err := s.listingRepo.GetByID(cmd.ListingID); err != nil {
		return nil, err
	}

	favorite, err := s.favoriteRepo.Toggle(ctx, cmd.UserID, cmd.ListingID)
	if err != nil {
		return nil, err
	}

	eventType := events.FavoriteAdded
	if !favorite {
		eventType = events.FavoriteRemoved
	}
	if err := s.publisher.Publish(ctx, events.UserEventsStream, eventType, events.FavoriteToggledEvent{
		UserID:    cmd.UserID,
		ListingID: cmd.ListingID,
	}); err != nil {
		s.log.WithError(err).Error("failed to publish favorite event")
	}

	return &models.FavoriteToggle{ListingID: cmd.ListingID, Favorite: favorite}, nil
}
