// Package repository implements the data access layer for the application.
package repository

import (
	"context"
	"errors"
	"strings"

	"clubhub/internal/cache"
	"clubhub/internal/models"
	"clubhub/internal/observability"

	"gorm.io/gorm"
)

// MemberRepository defines persistence operations for club members.
type MemberRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	UpdateRole(ctx context.Context, id, role string) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]models.User, error)
}

type memberRepository struct {
	db  *gorm.DB
	log *observability.RepoLogger
}

// NewMemberRepository returns a new MemberRepository implementation.
func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db, log: observability.NewRepoLogger("users")}
}

func (r *memberRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	defer observability.TrackQuery("select", "users")()

	var user models.User
	key := cache.UserKey(id)

	err := cache.Aside(ctx, key, &user, cache.UserTTL, func() error {
		if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Member", id)
			}
			return models.NewInternalError(err)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail returns (nil, nil) when no member has the email.
func (r *memberRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	defer observability.TrackQuery("select", "users")()

	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, models.NewInternalError(err)
	}
	return &user, nil
}

func (r *memberRepository) Create(ctx context.Context, user *models.User) error {
	defer observability.TrackQuery("insert", "users")()

	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.NewValidationError("Member already exists")
		}
		r.log.LogError(ctx, err, "create")
		return models.NewInternalError(err)
	}
	r.log.LogCreate(ctx, map[string]interface{}{"id": user.ID})
	cache.Invalidate(ctx, cache.MembersListKey())
	return nil
}

func (r *memberRepository) Update(ctx context.Context, user *models.User) error {
	defer observability.TrackQuery("update", "users")()

	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		r.log.LogError(ctx, err, "update")
		return models.NewInternalError(err)
	}
	r.log.LogUpdate(ctx, map[string]interface{}{"id": user.ID})
	cache.InvalidateUser(ctx, user.ID)
	return nil
}

func (r *memberRepository) UpdateRole(ctx context.Context, id, role string) error {
	defer observability.TrackQuery("update", "users")()

	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("role", role)
	if result.Error != nil {
		r.log.LogError(ctx, result.Error, "update")
		return models.NewInternalError(result.Error)
	}
	if result.RowsAffected == 0 {
		return models.NewNotFoundError("Member", id)
	}
	r.log.LogUpdate(ctx, map[string]interface{}{"id": id, "role": role})
	cache.InvalidateUser(ctx, id)
	return nil
}

func (r *memberRepository) Delete(ctx context.Context, id string) error {
	defer observability.TrackQuery("delete", "users")()

	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.User{}).Error; err != nil {
		r.log.LogError(ctx, err, "delete")
		return models.NewInternalError(err)
	}
	r.log.LogDelete(ctx, map[string]interface{}{"id": id})
	cache.InvalidateUser(ctx, id)
	return nil
}

func (r *memberRepository) List(ctx context.Context) ([]models.User, error) {
	defer observability.TrackQuery("select", "users")()

	var users []models.User
	err := cache.Aside(ctx, cache.MembersListKey(), &users, cache.ListTTL, func() error {
		if err := r.db.WithContext(ctx).Order("name asc").Find(&users).Error; err != nil {
			return models.NewInternalError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique failed")
}
