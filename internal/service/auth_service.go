package service

import (
	"fmt"
	"time"

	"github.com/devly/devly/config"
	"github.com/devly/devly/internal/apperr"
	"github.com/devly/devly/internal/dto"
	"github.com/devly/devly/internal/middleware"
	"github.com/devly/devly/internal/repository"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// AuthService verifies credentials and issues the role-tagged bearer
// tokens the test subsystem consumes. Account management itself lives
// outside this service.
type AuthService interface {
	Login(req dto.LoginDTO) (*dto.LoginResponseDTO, error)
}

type authService struct {
	userRepo repository.UserRepository
	cfg      *config.Config
}

func NewAuthService(userRepo repository.UserRepository, cfg *config.Config) AuthService {
	return &authService{userRepo: userRepo, cfg: cfg}
}

func (s *authService) Login(req dto.LoginDTO) (*dto.LoginResponseDTO, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("Login: repository error")
		return nil, fmt.Errorf("error loading user: %w", err)
	}
	if user == nil {
		return nil, apperr.Forbidden("Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperr.Forbidden("Invalid email or password")
	}

	ttl := time.Duration(s.cfg.Auth.TokenTTLHours) * time.Hour
	token, err := middleware.SignToken(s.cfg.Auth.JWTSecret, user.ID, user.Role, ttl)
	if err != nil {
		log.Error().Err(err).Uint("userID", user.ID).Msg("Login: failed to sign token")
		return nil, fmt.Errorf("error issuing token: %w", err)
	}

	return &dto.LoginResponseDTO{
		Token: token,
		User:  dto.UserDTO{ID: user.ID, Name: user.Name, Role: user.Role},
	}, nil
}
