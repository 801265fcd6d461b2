package query

import (
	"context"

	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/cqrs"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/internal/repository"
	"github.com/LauElToro/intercambius-el-club-de-confianza-sub000/models"
)

// UserQueryService serves the current user's profile, transaction history,
// favorites and notifications.
type UserQueryService struct {
	userRepo         *repository.UserRepository
	txRepo           *repository.TransactionRepository
	favoriteRepo     *repository.FavoriteRepository
	notificationRepo *repository.NotificationRepository
}

func NewUserQueryService(
	userRepo *repository.UserRepository,
	txRepo *repository.TransactionRepository,
	favoriteRepo *repository.FavoriteRepository,
	notificationRepo *repository.NotificationRepository,
) *UserQueryService {
	return &UserQueryService{
		userRepo:         userRepo,
		txRepo:           txRepo,
		favoriteRepo:     favoriteRepo,
		notificationRepo: notificationRepo,
	}
}

func (s *UserQueryService) GetProfile(q cqrs.GetProfileQuery) (*models.ProfileView, error) {
	return s.userRepo.GetProfileView(context.Background(), q.UserID)
}

func (s *UserQueryService) ListTransactions(q cqrs.ListTransactionsQuery) ([]models.TransactionView, error) {
	return s.txRepo.ListByUser(context.Background(), q.UserID)
}

func (s *UserQueryService) ListFavorites(q cqrs.ListFavoritesQuery) ([]models.ListingView, error) {
	return s.favoriteRepo.ListViews(context.Background(), q.UserID)
}

func (s *UserQueryService) IsFavorite(q cqrs.GetFavoriteQuery) (bool, error) {
	return s.favoriteRepo.IsFavorite(context.Background(), q.UserID, q.ListingID)
}

func (s *UserQueryService) ListNotifications(q cqrs.ListNotificationsQuery) ([]models.Notification, error) {
	return s.notificationRepo.ListByUser(context.Background(), q.UserID)
}
