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

// UserCommandService registers users and updates profiles. Balance and credit
// limit are never writable through here; only a settled checkout moves them.
type UserCommandService struct {
	userRepo  *repository.UserRepository
	publisher *events.Publisher
	log       *logrus.Logger
}

func NewUserCommandService(userRepo *repository.UserRepository, publisher *events.Publisher, log *logrus.Logger) *UserCommandService {
	return &UserCommandService{userRepo: userRepo, publisher: publisher, log: log}
}

func (s *UserCommandService) Register(cmd cqrs.RegisterCommand) (*models.User, error) {
	if _, err := s.userRepo.GetByEmail(cmd.Email); err == nil {
		return nil, fmt.Errorf("email already registered")
	}

	hash, err := utils.HashPassword(cmd.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           utils.GenerateID("usr"),
		Name:         cmd.Name,
		Email:        cmd.Email,
		PasswordHash: hash,
		Location:     cmd.Location,
		Balance:      0,
		CreditLimit:  checkout.DefaultCreditLimit,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	if err := s.publisher.Publish(context.Background(), events.UserEventsStream, events.UserRegistered, events.UserRegisteredEvent{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	}); err != nil {
		s.log.WithError(err).Error("failed to publish user.registered event")
	}
	return user, nil
}

func (s *UserCommandService) UpdateProfile(cmd cqrs.UpdateProfileCommand) (*models.ProfileView, error) {
	user, err := s.userRepo.GetByID(cmd.UserID)
	if err != nil {
		return nil, err
	}
	user.Name = cmd.Name
	user.Location = cmd.Location
	user.Coords = cmd.Coords
	user.UpdatedAt = time.Now().UTC()

	if err := s.userRepo.UpdateProfile(user); err != nil {
		return nil, err
	}
	ctx := context.Background()
	s.userRepo.InvalidateProfile(ctx, cmd.UserID)
	return s.userRepo.GetProfileView(ctx, cmd.UserID)
}
