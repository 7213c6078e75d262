package services

import (
	"errors"

	"github.com/paperlark/paperlark/pkg/internal/models"
	"gorm.io/gorm"
)

func ListCategory(tx *gorm.DB) ([]models.Category, error) {
	var categories []models.Category
	err := tx.Order("name ASC").Find(&categories).Error
	return categories, err
}

func ListTag(tx *gorm.DB) ([]models.Tag, error) {
	var tags []models.Tag
	err := tx.Order("name ASC").Find(&tags).Error
	return tags, err
}

// GetCategoryOrCreate resolves a category by its unique name, creating it on
// first reference. Two callers racing on the same name both end up with the
// single existing row.
func GetCategoryOrCreate(tx *gorm.DB, name string) (models.Category, error) {
	var category models.Category
	if err := tx.Where(models.Category{Name: name}).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			category = models.Category{Name: name}
			if err := tx.Create(&category).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					err = tx.Where(models.Category{Name: name}).First(&category).Error
				}
				return category, err
			}
			return category, nil
		}
		return category, err
	}
	return category, nil
}

// GetTagOrCreate is the upsert-by-name counterpart for tags.
func GetTagOrCreate(tx *gorm.DB, name string) (models.Tag, error) {
	var tag models.Tag
	if err := tx.Where(models.Tag{Name: name}).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			tag = models.Tag{Name: name}
			if err := tx.Create(&tag).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					err = tx.Where(models.Tag{Name: name}).First(&tag).Error
				}
				return tag, err
			}
			return tag, nil
		}
		return tag, err
	}
	return tag, nil
}

// EnsureTags maps a list of tag names onto persistent tag rows.
func EnsureTags(tx *gorm.DB, names []string) ([]models.Tag, error) {
	var tags []models.Tag
	for _, name := range names {
		tag, err := GetTagOrCreate(tx, name)
		if err != nil {
			return tags, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}
