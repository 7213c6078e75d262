package services

import (
	"github.com/paperlark/paperlark/pkg/internal/models"
	"gorm.io/gorm"
)

func PreloadCommentGeneral(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Author", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "name", "email")
		}).
		Preload("Post", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "title")
		})
}

func GetComment(tx *gorm.DB, id uint) (models.Comment, error) {
	var item models.Comment
	if err := PreloadCommentGeneral(tx).
		Where("id = ?", id).
		First(&item).Error; err != nil {
		return item, err
	}
	return item, nil
}

func CountComment(tx *gorm.DB) (int64, error) {
	var count int64
	if err := tx.Model(&models.Comment{}).Count(&count).Error; err != nil {
		return count, err
	}
	return count, nil
}

func ListComment(tx *gorm.DB, take int, offset int, order string) ([]models.Comment, error) {
	if take > 100 {
		take = 100
	}

	var items []models.Comment
	if err := PreloadCommentGeneral(tx).
		Limit(take).Offset(offset).
		Order(order).
		Find(&items).Error; err != nil {
		return items, err
	}
	return items, nil
}

// NewComment attaches a comment to an existing post on behalf of the
// verified caller.
func NewComment(tx *gorm.DB, item models.Comment) (models.Comment, error) {
	if err := tx.Create(&item).Error; err != nil {
		return item, err
	}

	FlushCachedPost(item.PostID)
	return GetComment(tx, item.ID)
}

func EditComment(tx *gorm.DB, item models.Comment, content string) (models.Comment, error) {
	item.Content = content
	if err := tx.Omit("Author", "Post").Save(&item).Error; err != nil {
		return item, err
	}

	FlushCachedPost(item.PostID)
	return GetComment(tx, item.ID)
}

func DeleteComment(tx *gorm.DB, item models.Comment) error {
	if err := tx.Delete(&item).Error; err != nil {
		return err
	}
	FlushCachedPost(item.PostID)
	return nil
}
