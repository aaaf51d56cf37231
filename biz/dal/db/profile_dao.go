package db

import (
	"context"
	"errors"

	"github.com/yi-nology/envprofile/biz/dal/model"
	"gorm.io/gorm"
)

// profileColumns are written on update, including zero values.
var profileColumns = []string{
	"description", "sort_order", "is_active", "production",
	"api_server_url", "auth_domain", "auth_audience", "auth_client_id", "auth_callback_url",
}

// ProfileDAO wraps basic CRUD operations for stored profiles.
type ProfileDAO struct{}

func NewProfileDAO() *ProfileDAO { return &ProfileDAO{} }

// Create persists a new profile.
func (dao *ProfileDAO) Create(ctx context.Context, db *gorm.DB, entity *model.Profile) error {
	if entity == nil {
		return errors.New("profile must not be nil")
	}
	if entity.ProfileKey == "" {
		return errors.New("profile_key is required")
	}
	return db.WithContext(ctx).Create(entity).Error
}

// Update overwrites every field of the profile identified by profile_key.
func (dao *ProfileDAO) Update(ctx context.Context, db *gorm.DB, entity *model.Profile) error {
	if entity == nil {
		return errors.New("profile must not be nil")
	}
	return db.WithContext(ctx).
		Model(&model.Profile{}).
		Where("profile_key = ?", entity.ProfileKey).
		Select(profileColumns).
		Updates(entity).
		Error
}

// Delete performs a soft delete by profile_key.
func (dao *ProfileDAO) Delete(ctx context.Context, db *gorm.DB, profileKey string) error {
	return db.WithContext(ctx).
		Where("profile_key = ?", profileKey).
		Delete(&model.Profile{}).Error
}

// GetByKey fetches a single profile by profile_key.
func (dao *ProfileDAO) GetByKey(ctx context.Context, db *gorm.DB, profileKey string) (*model.Profile, error) {
	var entity model.Profile
	if err := db.WithContext(ctx).
		Where("profile_key = ?", profileKey).
		First(&entity).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

// List returns all profiles with optional active filter.
func (dao *ProfileDAO) List(ctx context.Context, db *gorm.DB, isActive *bool) ([]model.Profile, error) {
	tx := db.WithContext(ctx)
	if isActive != nil {
		tx = tx.Where("is_active = ?", *isActive)
	}

	var entities []model.Profile
	if err := tx.Order("sort_order ASC, profile_key ASC").Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// ExistsByKey checks if a profile with the given key exists.
func (dao *ProfileDAO) ExistsByKey(ctx context.Context, db *gorm.DB, profileKey string) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).
		Model(&model.Profile{}).
		Where("profile_key = ?", profileKey).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// PublicationDAO records profile publications.
type PublicationDAO struct{}

func NewPublicationDAO() *PublicationDAO { return &PublicationDAO{} }

func (dao *PublicationDAO) Create(ctx context.Context, db *gorm.DB, entity *model.Publication) error {
	if entity == nil {
		return errors.New("publication must not be nil")
	}
	return db.WithContext(ctx).Create(entity).Error
}

// ListByProfile returns the publications of a profile, newest first.
func (dao *PublicationDAO) ListByProfile(ctx context.Context, db *gorm.DB, profileKey string, limit int) ([]model.Publication, error) {
	tx := db.WithContext(ctx).Where("profile_key = ?", profileKey).Order("id DESC")
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	var entities []model.Publication
	if err := tx.Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// DeleteByProfile removes every publication record of a profile.
func (dao *PublicationDAO) DeleteByProfile(ctx context.Context, db *gorm.DB, profileKey string) error {
	return db.WithContext(ctx).
		Where("profile_key = ?", profileKey).
		Delete(&model.Publication{}).Error
}
