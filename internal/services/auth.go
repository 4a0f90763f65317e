package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/travelfoodcms/travelfood-backend/internal/apperr"
	"github.com/travelfoodcms/travelfood-backend/internal/logger"
	"github.com/travelfoodcms/travelfood-backend/internal/repos"
	"github.com/travelfoodcms/travelfood-backend/internal/requestdata"
	"github.com/travelfoodcms/travelfood-backend/internal/types"
)

type JWTClaims struct {
	IsAdmin bool `json:"isAdmin"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type AuthService interface {
	Register(ctx context.Context, req *CreateUserRequest) (*types.User, error)
	Login(ctx context.Context, identifier, password string) (*TokenPair, error)
	Refresh(ctx context.Context) (*TokenPair, error)
	Logout(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userService   UserService
	userTokenRepo repos.UserTokenRepo
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userService UserService,
	userTokenRepo repos.UserTokenRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	return &authService{
		db:            db,
		log:           baseLog.With("service", "AuthService"),
		userService:   userService,
		userTokenRepo: userTokenRepo,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

// Register creates a regular (non-admin) account regardless of what the
// request claims.
func (as *authService) Register(ctx context.Context, req *CreateUserRequest) (*types.User, error) {
	req.IsAdmin = false
	return as.userService.Create(ctx, req)
}

func (as *authService) Login(ctx context.Context, identifier, password string) (*TokenPair, error) {
	user, err := as.userService.Authenticate(ctx, identifier, password)
	if err != nil {
		return nil, err
	}

	var pair *TokenPair
	txErr := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := as.userTokenRepo.GetByUserID(ctx, tx, user.UserID)
		if err != nil {
			return err
		}
		if existing != nil {
			if err := as.userTokenRepo.Delete(ctx, tx, existing.TokenID); err != nil {
				return err
			}
		}
		issued, err := as.issueTokens(ctx, tx, user)
		if err != nil {
			return err
		}
		pair = issued
		return nil
	})
	if txErr != nil {
		return nil, wrapStore("login", txErr)
	}
	return pair, nil
}

func (as *authService) Refresh(ctx context.Context) (*TokenPair, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.RefreshToken == "" {
		return nil, apperr.NewValidation(apperr.KindMissingField, "refresh token is required")
	}

	var pair *TokenPair
	txErr := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := as.userTokenRepo.GetByRefreshToken(ctx, tx, rd.RefreshToken)
		if err != nil {
			return err
		}
		if existing == nil {
			return apperr.ErrNotFound
		}
		if existing.ExpiresAt.Before(time.Now()) {
			if err := as.userTokenRepo.Delete(ctx, tx, existing.TokenID); err != nil {
				return err
			}
			return apperr.NewValidation(apperr.KindInvalidUser, "refresh token expired")
		}
		user, _, err := as.userService.GetByID(ctx, existing.UserID)
		if err != nil {
			return err
		}
		if err := as.userTokenRepo.Delete(ctx, tx, existing.TokenID); err != nil {
			return err
		}
		issued, err := as.issueTokens(ctx, tx, user)
		if err != nil {
			return err
		}
		pair = issued
		return nil
	})
	if txErr != nil {
		return nil, wrapStore("refresh", txErr)
	}
	return pair, nil
}

func (as *authService) Logout(ctx context.Context) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == 0 {
		return apperr.NewValidation(apperr.KindInvalidUser, "not authenticated")
	}
	err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return as.userTokenRepo.DeleteByUserID(ctx, tx, rd.UserID)
	})
	return wrapStore("logout", err)
}

func (as *authService) issueTokens(ctx context.Context, tx *gorm.DB, user *types.User) (*TokenPair, error) {
	accessToken, err := as.generateAccessToken(user)
	if err != nil {
		return nil, err
	}
	refreshToken := uuid.New().String()
	record := &types.UserToken{
		UserID:       user.UserID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(as.refreshTTL),
	}
	if err := as.userTokenRepo.Create(ctx, tx, record); err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (as *authService) generateAccessToken(user *types.User) (string, error) {
	claims := JWTClaims{
		IsAdmin: user.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.UserID), 10),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(as.jwtSecretKey))
}

// SetContextFromToken validates the access token and attaches the caller's
// identity to the request context.
func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return ctx, fmt.Errorf("failed to parse token: %w", err)
	}
	claims, ok := parsedToken.Claims.(*JWTClaims)
	if !ok || !parsedToken.Valid {
		return ctx, fmt.Errorf("invalid or expired token")
	}
	userID, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return ctx, fmt.Errorf("invalid user id in token: %w", err)
	}

	var refreshToken string
	record, err := as.userTokenRepo.GetByAccessToken(ctx, nil, tokenString)
	if err != nil {
		return ctx, err
	}
	if record != nil {
		refreshToken = record.RefreshToken
	}

	rd := &requestdata.RequestData{
		TokenString:  tokenString,
		RefreshToken: refreshToken,
		UserID:       uint(userID),
		IsAdmin:      claims.IsAdmin,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}
