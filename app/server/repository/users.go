package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"user-directory/app/server/errs"
	"user-directory/app/server/models"
	"user-directory/app/server/validation"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

// Users is the user store. Lookups return (nil, nil) when the user does not exist.
type Users interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	// FindByIdentifier looks a user up by email when email is set, by username otherwise. The result carries the
	// password hash.
	FindByIdentifier(ctx context.Context, email, username string) (*models.User, error)
	List(ctx context.Context, limit, offset int) ([]models.User, error)
	Count(ctx context.Context) (int64, error)
	UpdatePartial(ctx context.Context, id uuid.UUID, fields validation.UserFields) (*models.User, error)
	DeleteByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type GormUsers struct {
	db  *gorm.DB
	now func() time.Time
}

var _ Users = (*GormUsers)(nil)

func NewGormUsers(db *gorm.DB) *GormUsers {
	return &GormUsers{db: db, now: time.Now}
}

func (r *GormUsers) Create(ctx context.Context, user *models.User) error {
	user.Username = strings.ToLower(strings.TrimSpace(user.Username))
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.Name = strings.TrimSpace(user.Name)

	if err := user.Validate(); err != nil {
		return fieldErrors(err)
	}

	user.ID = uuid.New()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = r.now()
	}

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if cerr := conflictError(err); cerr != nil {
			return cerr
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *GormUsers) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Select(models.PublicColumns).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user %s: %w", id, err)
	}
	return &user, nil
}

func (r *GormUsers) FindByIdentifier(ctx context.Context, email, username string) (*models.User, error) {
	query := r.db.WithContext(ctx)
	if email != "" {
		query = query.Where("email = ?", strings.ToLower(email))
	} else {
		query = query.Where("username = ?", strings.ToLower(username))
	}

	var user models.User
	if err := query.First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by identifier: %w", err)
	}
	return &user, nil
}

// List orders by creation time, newest first; equal timestamps fall back to id so pages stay stable.
func (r *GormUsers) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	users := []models.User{}
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select(models.PublicColumns).
		Order("created_at DESC").
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (r *GormUsers) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}

func (r *GormUsers) UpdatePartial(ctx context.Context, id uuid.UUID, fields validation.UserFields) (*models.User, error) {
	updates := map[string]interface{}{}
	if fields.Name != nil {
		updates["name"] = strings.TrimSpace(*fields.Name)
	}
	if fields.Email != nil {
		updates["email"] = strings.ToLower(strings.TrimSpace(*fields.Email))
	}
	if len(updates) == 0 {
		return r.FindByID(ctx, id)
	}

	var updated *models.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.User{}).Where("id = ?", id).Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		var user models.User
		if err := tx.Select(models.PublicColumns).First(&user, "id = ?", id).Error; err != nil {
			return err
		}
		updated = &user
		return nil
	})
	if err != nil {
		if cerr := conflictError(err); cerr != nil {
			return nil, cerr
		}
		return nil, fmt.Errorf("failed to update user %s: %w", id, err)
	}
	return updated, nil
}

func (r *GormUsers) DeleteByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var deleted *models.User
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Select(models.PublicColumns).First(&user, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		res := tx.Delete(&models.User{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			deleted = &user
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to delete user %s: %w", id, err)
	}
	return deleted, nil
}

// fieldErrors joins all field messages into a single validation error.
func fieldErrors(err error) error {
	var msgs []string
	for _, e := range multierr.Errors(err) {
		msgs = append(msgs, e.Error())
	}
	return errs.Validation(strings.Join(msgs, "; "))
}
