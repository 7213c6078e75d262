package services

import (
	"context"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/eko/gocache/lib/v4/store"
	localCache "github.com/paperlark/paperlark/pkg/internal/cache"
	"github.com/paperlark/paperlark/pkg/internal/models"
	"gorm.io/gorm"
)

func PreloadPostGeneral(tx *gorm.DB) *gorm.DB {
	return tx.
		Preload("Author", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "name", "email")
		}).
		Preload("Category").
		Preload("Tags").
		Preload("Comments", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("created_at DESC")
		}).
		Preload("Comments.Author", func(tx *gorm.DB) *gorm.DB {
			return tx.Select("id", "name")
		})
}

func postCacheKey(id uint) string {
	return fmt.Sprintf("post#%d", id)
}

// GetPost loads a single post with all of its relations attached. Hot reads
// are answered from the local cache; every mutation of the post or its
// comments flushes the entry.
func GetPost(tx *gorm.DB, id uint) (models.Post, error) {
	if localCache.S != nil {
		marshal := marshaler.New(cache.New[any](localCache.S))
		if hit, err := marshal.Get(context.Background(), postCacheKey(id), new(models.Post)); err == nil {
			if post, ok := hit.(*models.Post); ok {
				return *post, nil
			}
		}
	}

	var item models.Post
	if err := PreloadPostGeneral(tx).
		Where("id = ?", id).
		First(&item).Error; err != nil {
		return item, err
	}

	if localCache.S != nil {
		marshal := marshaler.New(cache.New[any](localCache.S))
		_ = marshal.Set(
			context.Background(),
			postCacheKey(id),
			item,
			store.WithExpiration(10*time.Minute),
			store.WithTags([]string{postCacheKey(id)}),
		)
	}

	return item, nil
}

// FlushCachedPost drops the cached copy of a post, if any.
func FlushCachedPost(id uint) {
	if localCache.S == nil {
		return
	}
	marshal := marshaler.New(cache.New[any](localCache.S))
	_ = marshal.Invalidate(context.Background(), store.WithInvalidateTags([]string{postCacheKey(id)}))
}

func CountPost(tx *gorm.DB) (int64, error) {
	var count int64
	if err := tx.Model(&models.Post{}).Count(&count).Error; err != nil {
		return count, err
	}
	return count, nil
}

func ListPost(tx *gorm.DB, take int, offset int, order string) ([]models.Post, error) {
	if take > 100 {
		take = 100
	}

	var items []models.Post
	if err := PreloadPostGeneral(tx).
		Limit(take).Offset(offset).
		Order(order).
		Find(&items).Error; err != nil {
		return items, err
	}
	return items, nil
}

// NewPost persists a post owned by the verified caller. Referenced category
// and tag names are created on demand and linked.
func NewPost(tx *gorm.DB, item models.Post, category string, tags []string) (models.Post, error) {
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
	item.Language = DetectLanguage(item.Content)

	if err := tx.Create(&item).Error; err != nil {
		return item, err
	}

	return GetPost(tx, item.ID)
}

type PostChanges struct {
	Title     *string
	Content   *string
	Published *bool
	Category  *string
	Tags      []string
}

// EditPost applies a partial update. Supplying tags replaces the whole link
// set rather than appending to it.
func EditPost(tx *gorm.DB, item models.Post, changes PostChanges) (models.Post, error) {
	if changes.Title != nil {
		item.Title = *changes.Title
	}
	if changes.Content != nil {
		item.Content = *changes.Content
		item.Language = DetectLanguage(item.Content)
	}
	if changes.Published != nil {
		item.Published = *changes.Published
	}
	if changes.Category != nil {
		cat, err := GetCategoryOrCreate(tx, *changes.Category)
		if err != nil {
			return item, err
		}
		item.CategoryID = &cat.ID
	}

	if err := tx.Omit("Tags", "Comments", "Author", "Category").Save(&item).Error; err != nil {
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

	FlushCachedPost(item.ID)
	return GetPost(tx, item.ID)
}

func DeletePost(tx *gorm.DB, item models.Post) error {
	if err := tx.Delete(&item).Error; err != nil {
		return err
	}
	FlushCachedPost(item.ID)
	return nil
}

// CheckPostExists is used before attaching comments to a post.
func CheckPostExists(tx *gorm.DB, id uint) (models.Post, error) {
	var item models.Post
	err := tx.Select("id", "title").Where("id = ?", id).First(&item).Error
	return item, err
}
