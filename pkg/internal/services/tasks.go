package services

import (
	"github.com/paperlark/paperlark/pkg/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func PreloadTaskGeneral(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("User", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "name", "email")
		}).
		Preload("Category").
		Preload("Tags")
}

func GetTask(tx *gorm.DB, id uint) (models.Task, error) {
	var item models.Task
	if err := PreloadTaskGeneral(tx).
		Where("id = ?", id).
		First(&item).Error; err != nil {
		return item, err
	}
	return item, nil
}

func CountTask(tx *gorm.DB) (int64, error) {
	var count int64
	if err := tx.Model(&models.Task{}).Count(&count).Error; err != nil {
		return count, err
	}
	return count, nil
}

func ListTask(tx *gorm.DB, take int, offset int, order string) ([]models.Task, error) {
	if take > 100 {
		take = 100
	}

	var items []models.Task
	if err := PreloadTaskGeneral(tx).
		Limit(take).Offset(offset).
		Order(order).
		Find(&items).Error; err != nil {
		return items, err
	}
	return items, nil
}

func NewTask(tx *gorm.DB, item models.Task, category string, tags []string) (models.Task, error) {
	if len(category) > 0 {
		cat, err := GetCategoryOrCreate(tx, category)
		if err != nil {
			return item, err
		}
		item.CategoryID = &cat.ID
	}

	linked, err := EnsureTags(tx, tags)
	if err != nil {
		return item, err
	}
	item.Tags = linked

	if err := tx.Create(&item).Error; err != nil {
		return item, err
	}

	return GetTask(tx, item.ID)
}

type TaskChanges struct {
	Title       *string
	Description *string
	Completed   *bool
	DueDate     *datatypes.Date
	Priority    *int
	Category    *string
	Tags        []string
}

// EditTask applies a partial update. Supplying tags replaces the whole link
// set rather than appending to it.
func EditTask(tx *gorm.DB, item models.Task, changes TaskChanges) (models.Task, error) {
	if changes.Title != nil {
		item.Title = *changes.Title
	}
	if changes.Description != nil {
		item.Description = *changes.Description
	}
	if changes.Completed != nil {
		item.Completed = *changes.Completed
	}
	if changes.DueDate != nil {
		item.DueDate = changes.DueDate
	}
	if changes.Priority != nil {
		item.Priority = *changes.Priority
	}
	if changes.Category != nil {
		cat, err := GetCategoryOrCreate(tx, *changes.Category)
		if err != nil {
			return item, err
		}
		item.CategoryID = &cat.ID
	}

	if err := tx.Omit("Tags", "User", "Category").Save(&item).Error; err != nil {
		return item, err
	}

	if changes.Tags != nil {
		linked, err := EnsureTags(tx, changes.Tags)
		if err != nil {
			return item, err
		}
		if err := tx.Model(&item).Association("Tags").Replace(&linked); err != nil {
			return item, err
		}
	}

	return GetTask(tx, item.ID)
}

func DeleteTask(tx *gorm.DB, item models.Task) error {
	return tx.Delete(&item).Error
}
