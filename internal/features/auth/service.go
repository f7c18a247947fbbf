package auth

import (
	"context"
	"errors"
	"time"

	common_models "go-hiring/internal/common/models"
	"go-hiring/internal/features/audit"
	"go-hiring/internal/features/user"
	"go-hiring/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *common_models.User, error)
	Register(ctx context.Context, u *common_models.User, password string) error
}

type AuthServiceImpl struct {
	UserRepo     user.UserRepository
	AuditService audit.AuditService
}

func NewAuthService(userRepo user.UserRepository, auditService audit.AuditService) AuthService {
	return &AuthServiceImpl{
		UserRepo:     userRepo,
		AuditService: auditService,
	}
}

func (s *AuthServiceImpl) Login(ctx context.Context, username, password string) (string, *common_models.User, error) {
	u, err := s.UserRepo.FindByUsername(ctx, username)
	if err != nil {
		return "", nil, err
	}
	if u == nil || !u.Active {
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(u.ID, u.Email, u.Name, u.HoldingID, u.Roles)
	if err != nil {
		return "", nil, err
	}

	_ = s.AuditService.LogChange(ctx, common_models.AuditActionLogin, "users", u.ID.Hex(), nil)

	return token, u, nil
}

func (s *AuthServiceImpl) Register(ctx context.Context, u *common_models.User, password string) error {
	existing, err := s.UserRepo.FindByUsername(ctx, u.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		return errors.New("username already taken")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	u.Active = true
	u.CreatedAt = time.Now()
	u.UpdatedAt = time.Now()

	return s.UserRepo.Create(ctx, u)
}
