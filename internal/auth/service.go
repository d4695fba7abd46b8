package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dojolanza/cuotas/go-api-server/internal/shared/logger"
	"github.com/dojolanza/cuotas/go-api-server/internal/shared/token"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	db             *gorm.DB
	userRepository *UserRepository
	tokenManager   token.Manager
}

func NewAuthService(db *gorm.DB, userRepository *UserRepository, tokenManager token.Manager) *AuthService {
	return &AuthService{
		db:             db,
		userRepository: userRepository,
		tokenManager:   tokenManager,
	}
}

func (s *AuthService) Login(ctx context.Context, request *LoginRequest) (*LoginResponse, error) {
	log := logger.FromContext(ctx)

	user, err := s.userRepository.FindByUsername(ctx, s.db, request.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Security: don't reveal whether the username exists
			log.Warn("Inicio de sesión fallido - usuario desconocido", "username", request.Username)
			return nil, fmt.Errorf("login: %w", ErrInvalidCredentials)
		}
		log.Error("Inicio de sesión fallido - error inesperado", "error", err)
		return nil, fmt.Errorf("login: %w", err)
	}

	if !user.IsActive {
		log.Warn("Inicio de sesión fallido - usuario inactivo", "username", request.Username)
		return nil, fmt.Errorf("login: %w", ErrInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(request.Password)); err != nil {
		log.Warn("Inicio de sesión fallido - contraseña incorrecta", "username", request.Username)
		return nil, fmt.Errorf("login: %w", ErrInvalidCredentials)
	}

	userID := strconv.FormatUint(uint64(user.ID), 10)
	accessToken, err := s.tokenManager.GenerateAccessToken(userID, user.Username)
	if err != nil {
		log.Error("No se pudo generar el token de acceso", "error", err)
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	log.Info("Inicio de sesión exitoso", "username", request.Username)

	return &LoginResponse{
		Token: accessToken,
		User: UserResponse{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
	}, nil
}

func (s *AuthService) Profile(ctx context.Context, userID uint32) (*UserResponse, error) {
	user, err := s.userRepository.FindByID(ctx, s.db, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user id=%d: %w", userID, ErrUserNotFound)
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}

	return &UserResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}, nil
}
