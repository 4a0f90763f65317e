package services

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/travelfoodcms/travelfood-backend/internal/apperr"
	"github.com/travelfoodcms/travelfood-backend/internal/logger"
	"github.com/travelfoodcms/travelfood-backend/internal/repos"
	"github.com/travelfoodcms/travelfood-backend/internal/types"
)

type CreateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"isAdmin"`
}

type UpdateUserRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"isAdmin"`
}

type UserService interface {
	Create(ctx context.Context, req *CreateUserRequest) (*types.User, error)
	Update(ctx context.Context, userID uint, req *UpdateUserRequest) error
	Delete(ctx context.Context, userID uint) error
	GetByID(ctx context.Context, userID uint) (*types.User, []*types.Order, error)
	List(ctx context.Context) ([]*types.User, error)
	ListOrders(ctx context.Context, userID uint) ([]*types.Order, error)
	Authenticate(ctx context.Context, identifier, password string) (*types.User, error)
}

type userService struct {
	db        *gorm.DB
	log       *logger.Logger
	userRepo  repos.UserRepo
	orderRepo repos.OrderRepo
	cascade   CascadeService
}

func NewUserService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userRepo repos.UserRepo,
	orderRepo repos.OrderRepo,
	cascade CascadeService,
) UserService {
	return &userService{
		db:        db,
		log:       baseLog.With("service", "UserService"),
		userRepo:  userRepo,
		orderRepo: orderRepo,
		cascade:   cascade,
	}
}

func hashPassword(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

func (us *userService) checkUniqueness(ctx context.Context, tx *gorm.DB, username, email string, excludeUserID uint) error {
	usernameTaken, err := us.userRepo.UsernameTaken(ctx, tx, username, excludeUserID)
	if err != nil {
		return err
	}
	if usernameTaken {
		return apperr.NewValidation(apperr.KindDuplicateUsername, "Username already exists")
	}
	emailTaken, err := us.userRepo.EmailTaken(ctx, tx, email, excludeUserID)
	if err != nil {
		return err
	}
	if emailTaken {
		return apperr.NewValidation(apperr.KindDuplicateEmail, "Email already exists")
	}
	return nil
}

func (us *userService) Create(ctx context.Context, req *CreateUserRequest) (*types.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if username == "" || email == "" || req.Password == "" {
		return nil, apperr.NewValidation(apperr.KindMissingField, "username, email and password are required")
	}

	var user *types.User
	err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := us.checkUniqueness(ctx, tx, username, email, 0); err != nil {
			return err
		}
		digest, err := hashPassword(req.Password)
		if err != nil {
			return err
		}
		user = &types.User{
			Username:     username,
			Email:        email,
			PasswordHash: digest,
			IsAdmin:      req.IsAdmin,
		}
		return us.userRepo.Create(ctx, tx, user)
	})
	if err != nil {
		return nil, wrapStore("create user", err)
	}
	return user, nil
}

func (us *userService) Update(ctx context.Context, userID uint, req *UpdateUserRequest) error {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if username == "" || email == "" {
		return apperr.NewValidation(apperr.KindMissingField, "username and email are required")
	}

	err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := us.userRepo.GetByID(ctx, tx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return apperr.ErrNotFound
		}
		if err := us.checkUniqueness(ctx, tx, username, email, userID); err != nil {
			return err
		}
		user.Username = username
		user.Email = email
		user.IsAdmin = req.IsAdmin
		if req.Password != "" {
			digest, err := hashPassword(req.Password)
			if err != nil {
				return err
			}
			user.PasswordHash = digest
		}
		return us.userRepo.Update(ctx, tx, user)
	})
	return wrapStore("update user", err)
}

// Delete removes the user, their orders, and those orders' items in one
// transaction.
func (us *userService) Delete(ctx context.Context, userID uint) error {
	err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := us.userRepo.Exists(ctx, tx, userID)
		if err != nil {
			return err
		}
		if !exists {
			return apperr.ErrNotFound
		}
		return us.cascade.DeleteUser(ctx, tx, userID)
	})
	return wrapStore("delete user", err)
}

func (us *userService) GetByID(ctx context.Context, userID uint) (*types.User, []*types.Order, error) {
	user, err := us.userRepo.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, nil, wrapStore("get user", err)
	}
	if user == nil {
		return nil, nil, apperr.ErrNotFound
	}
	orders, err := us.orderRepo.ListByUserID(ctx, nil, userID)
	if err != nil {
		return nil, nil, wrapStore("get user", err)
	}
	return user, orders, nil
}

func (us *userService) List(ctx context.Context) ([]*types.User, error) {
	users, err := us.userRepo.List(ctx, nil)
	if err != nil {
		return nil, wrapStore("list users", err)
	}
	return users, nil
}

func (us *userService) ListOrders(ctx context.Context, userID uint) ([]*types.Order, error) {
	exists, err := us.userRepo.Exists(ctx, nil, userID)
	if err != nil {
		return nil, wrapStore("list user orders", err)
	}
	if !exists {
		return nil, apperr.ErrNotFound
	}
	orders, err := us.orderRepo.ListByUserID(ctx, nil, userID)
	if err != nil {
		return nil, wrapStore("list user orders", err)
	}
	return orders, nil
}

// Authenticate accepts a username or an email as identifier and verifies the
// password against the stored digest.
func (us *userService) Authenticate(ctx context.Context, identifier, password string) (*types.User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return nil, apperr.NewValidation(apperr.KindMissingField, "identifier and password are required")
	}
	user, err := us.userRepo.GetByUsername(ctx, nil, identifier)
	if err != nil {
		return nil, wrapStore("authenticate user", err)
	}
	if user == nil {
		user, err = us.userRepo.GetByEmail(ctx, nil, strings.ToLower(identifier))
		if err != nil {
			return nil, wrapStore("authenticate user", err)
		}
	}
	if user == nil {
		return nil, apperr.ErrNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.NewValidation(apperr.KindInvalidUser, "invalid credentials")
	}
	return user, nil
}
