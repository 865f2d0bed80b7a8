// Package tags provides database operations for deck tags.
//
// # Usage
//
//	repo := tags.NewRepository(db)
//	tag, err := repo.GetOrCreateTag(tx, "Archetype")
package tags

import (
	"errors"

	"gorm.io/gorm"

	"github.com/mrlokans/advisor/internal/entities"
)

// Repository handles all tag database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new tags repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetOrCreateTag retrieves a tag by name (case-insensitive) or creates it.
// tx may be nil, in which case the repository's connection is used.
func (r *Repository) GetOrCreateTag(tx *gorm.DB, name string) (*entities.Tag, error) {
	if tx == nil {
		tx = r.db
	}

	var tag entities.Tag
	err := tx.Where("LOWER(name) = LOWER(?)", name).First(&tag).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		tag = entities.Tag{Name: name}
		if err := tx.Create(&tag).Error; err != nil {
			return nil, err
		}
		return &tag, nil
	}
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// GetTagByName retrieves a tag by exact name.
func (r *Repository) GetTagByName(name string) (*entities.Tag, error) {
	var tag entities.Tag
	if err := r.db.Where("name = ?", name).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// ListTags returns all tags ordered by name.
func (r *Repository) ListTags() ([]entities.Tag, error) {
	var tags []entities.Tag
	err := r.db.Order("name ASC").Find(&tags).Error
	return tags, err
}

// CountDecks returns how many decks carry the tag.
func (r *Repository) CountDecks(tagID uint) (int64, error) {
	var count int64
	err := r.db.Table("deck_tags").Where("tag_id = ?", tagID).Count(&count).Error
	return count, err
}
