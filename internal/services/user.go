package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/bookcase-labs/library-catalog/internal/logger"
	"github.com/bookcase-labs/library-catalog/internal/models"
	"github.com/bookcase-labs/library-catalog/internal/repositories"
	"github.com/bookcase-labs/library-catalog/internal/validation"
)

// UserLister defines listing of user accounts.
type UserLister interface {
	List(ctx context.Context) ([]models.UserDB, error)
}

// UserAccountWriter defines profile-level write operations.
type UserAccountWriter interface {
	Update(ctx context.Context, userID uuid.UUID, username, email, role string) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// UserService handles account administration.
type UserService struct {
	reader UserReader
	lister UserLister
	writer UserAccountWriter
}

// NewUserService creates a new UserService instance.
func NewUserService(reader UserReader, lister UserLister, writer UserAccountWriter) *UserService {
	return &UserService{reader: reader, lister: lister, writer: writer}
}

// Resolve returns the live role for an authenticated user ID. Used by
// the auth middleware so a token outlives neither the account nor its
// role assignment. A missing account surfaces as ErrUserNotFound; any
// other failure passes through unchanged.
func (svc *UserService) Resolve(ctx context.Context, userID uuid.UUID) (string, error) {
	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	return user.Role, nil
}

// List returns every user account.
func (svc *UserService) List(ctx context.Context) ([]models.UserDB, error) {
	users, err := svc.lister.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list users", "err", err)
		return nil, err
	}
	return users, nil
}

// Get returns a single user by id.
func (svc *UserService) Get(ctx context.Context, userID uuid.UUID) (*models.UserDB, error) {
	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}
	return user, nil
}

// Update changes a user's profile fields. The password is never
// updated here, only through the reset flow.
func (svc *UserService) Update(ctx context.Context, userID uuid.UUID, in validation.UserUpdateInput) (*models.UserDB, error) {
	in, vErrs := validation.ValidateUserUpdate(in)
	if vErrs != nil {
		return nil, vErrs
	}

	if err := svc.writer.Update(ctx, userID, in.Username, in.Email, in.Role); err != nil {
		if errors.Is(err, repositories.ErrUniqueViolation) {
			return nil, ErrEmailAlreadyExists
		}
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		logger.Log.Errorw("failed to update user", "err", err)
		return nil, err
	}

	return svc.Get(ctx, userID)
}

// Delete removes a user account. Catalog records the user owned stay
// behind with a dangling owner reference.
func (svc *UserService) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := svc.writer.Delete(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		logger.Log.Errorw("failed to delete user", "err", err)
		return err
	}
	return nil
}
