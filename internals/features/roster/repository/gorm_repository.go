package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"belajarku_backend/internals/features/roster/model"
)

type gormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

func (r *gormUserRepository) List(ctx context.Context, role, q string, limit, offset int) ([]model.UserModel, int64, error) {
	tx := r.db.WithContext(ctx).Model(&model.UserModel{})
	if role != "" {
		tx = tx.Where("role = ?", role)
	}
	if q = strings.TrimSpace(q); q != "" {
		like := "%" + q + "%"
		tx = tx.Where("full_name ILIKE ? OR email ILIKE ?", like, like)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.UserModel
	if err := tx.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func (r *gormUserRepository) ListIDs(ctx context.Context, role string) ([]string, error) {
	var ids []string
	tx := r.db.WithContext(ctx).Model(&model.UserModel{})
	if role != "" {
		tx = tx.Where("role = ?", role)
	}
	if err := tx.Pluck("id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *gormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.UserModel, error) {
	var u model.UserModel
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *gormUserRepository) FindByIDs(ctx context.Context, ids []string) ([]model.UserModel, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []model.UserModel
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *gormUserRepository) FindByEmail(ctx context.Context, email string) (*model.UserModel, error) {
	var u model.UserModel
	if err := r.db.WithContext(ctx).First(&u, "lower(email) = lower(?)", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *gormUserRepository) Create(ctx context.Context, u *model.UserModel) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "duplicate key") {
			return ErrEmailExists
		}
		return err
	}
	return nil
}

func (r *gormUserRepository) Update(ctx context.Context, u *model.UserModel) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *gormUserRepository) Delete(ctx context.Context, id uuid.UUID, role string) (int64, error) {
	tx := r.db.WithContext(ctx)
	if role != "" {
		tx = tx.Where("role = ?", role)
	}
	res := tx.Delete(&model.UserModel{}, "id = ?", id)
	return res.RowsAffected, res.Error
}
