package service

import (
	"context"
	"errors"
	"time"

	"invoicing-backend/internal/apperr"
	"invoicing-backend/internal/cache"
	"invoicing-backend/internal/model"
	"invoicing-backend/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	accessTokenTTL = 24 * time.Hour
	userCacheTTL   = 5 * time.Minute
)

type SignupRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	Type      string `json:"type" binding:"required,oneof=admin user"`
	CompanyID string `json:"company_id"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Type      string `json:"type"`
	CompanyID string `json:"company_id"`
}

type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

type UserService interface {
	Signup(ctx context.Context, req SignupRequest) (*UserResponse, error)
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)
	GetMe(ctx context.Context, principal model.Principal) (*UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
	cache    *cache.Cache
	secret   []byte
}

func NewUserService(userRepo repository.UserRepository, c *cache.Cache, secret []byte) UserService {
	return &userService{userRepo: userRepo, cache: c, secret: secret}
}

func (s *userService) Signup(ctx context.Context, req SignupRequest) (*UserResponse, error) {
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, apperr.New(apperr.KindValidation, "User already exists with this email")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to check existing user", err)
	}

	var companyID uuid.UUID
	if req.CompanyID != "" {
		parsed, err := uuid.Parse(req.CompanyID)
		if err != nil {
			return nil, apperr.New(apperr.KindValidation, "Invalid company id")
		}
		companyID = parsed
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to hash password", err)
	}

	user := &model.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  string(hashed),
		Type:      req.Type,
		CompanyID: companyID,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to create user", err)
	}

	return mapUserToResponse(user), nil
}

func (s *userService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindUnauthorized, "Invalid email or password")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperr.New(apperr.KindUnauthorized, "Invalid email or password")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":        user.ID.String(),
		"company_id": user.CompanyID.String(),
		"type":       user.Type,
		"exp":        time.Now().Add(accessTokenTTL).Unix(),
		"iat":        time.Now().Unix(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "failed to sign token", err)
	}

	return &TokenResponse{
		AccessToken: signed,
		User:        *mapUserToResponse(user),
	}, nil
}

func (s *userService) GetMe(ctx context.Context, principal model.Principal) (*UserResponse, error) {
	user, err := cache.GetOrSet(ctx, s.cache, "user_"+principal.UserID.String(), userCacheTTL, func() (*model.User, error) {
		return s.userRepo.FindByID(ctx, principal.UserID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.New(apperr.KindNotFound, "User not found")
		}
		return nil, apperr.Wrap(apperr.KindInternal, "failed to load user", err)
	}
	return mapUserToResponse(user), nil
}

func mapUserToResponse(user *model.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		Type:      user.Type,
		CompanyID: user.CompanyID.String(),
	}
}
