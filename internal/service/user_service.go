package service

import (
	"context"

	"github.com/business-directory-api/internal/models"
	"github.com/business-directory-api/internal/repository"
	"github.com/rs/zerolog"
)

// userService is the concrete implementation of UserService
type userService struct {
	userRepo repository.UserRepository
	log      zerolog.Logger
}

// newUserService creates a new UserService
func newUserService(userRepo repository.UserRepository, log zerolog.Logger) *userService {
	return &userService{
		userRepo: userRepo,
		log:      log.With().Str("service", "user").Logger(),
	}
}

// Get retrieves a user by ID
func (s *userService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// List retrieves all users
func (s *userService) List(ctx context.Context) ([]*models.User, error) {
	return s.userRepo.GetAll(ctx)
}

// Delete removes a user; deleting the last active admin is refused by the
// repository under a transaction.
func (s *userService) Delete(ctx context.Context, id string) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id).Msg("User deleted")
	return nil
}
