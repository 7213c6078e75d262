package queries

import (
	"gorm.io/gorm"
)

// Filters are tagged values describing what a list endpoint may narrow by.
// Each knows how to apply itself to a transaction; nothing client-supplied
// is ever spliced into the query outside these methods.

type PostFilter struct {
	Search    string
	Category  string
	Tags      []string
	Published *bool
	AuthorID  *uint
}

func (f PostFilter) Apply(tx *gorm.DB) *gorm.DB {
	if len(f.Search) > 0 {
		probe := "%" + f.Search + "%"
		tx = tx.Where("title ILIKE ? OR content ILIKE ?", probe, probe)
	}
	if len(f.Category) > 0 {
		tx = tx.Joins("JOIN categories ON categories.id = posts.category_id").
			Where("categories.name = ?", f.Category)
	}
	if len(f.Tags) > 0 {
		tx = tx.Joins("JOIN post_tags ON posts.id = post_tags.post_id").
			Joins("JOIN tags ON tags.id = post_tags.tag_id").
			Where("tags.name IN ?", f.Tags).
			Group("posts.id").
			Having("COUNT(DISTINCT tags.id) = ?", len(f.Tags))
	}
	if f.Published != nil {
		tx = tx.Where("published = ?", *f.Published)
	}
	if f.AuthorID != nil {
		tx = tx.Where("author_id = ?", *f.AuthorID)
	}
	return tx
}

type TaskFilter struct {
	Search    string
	Category  string
	Tags      []string
	Completed *bool
	UserID    *uint
}

func (f TaskFilter) Apply(tx *gorm.DB) *gorm.DB {
	if len(f.Search) > 0 {
		probe := "%" + f.Search + "%"
		tx = tx.Where("title ILIKE ? OR description ILIKE ?", probe, probe)
	}
	if len(f.Category) > 0 {
		tx = tx.Joins("JOIN categories ON categories.id = tasks.category_id").
			Where("categories.name = ?", f.Category)
	}
	if len(f.Tags) > 0 {
		tx = tx.Joins("JOIN task_tags ON tasks.id = task_tags.task_id").
			Joins("JOIN tags ON tags.id = task_tags.tag_id").
			Where("tags.name IN ?", f.Tags).
			Group("tasks.id").
			Having("COUNT(DISTINCT tags.id) = ?", len(f.Tags))
	}
	if f.Completed != nil {
		tx = tx.Where("completed = ?", *f.Completed)
	}
	if f.UserID != nil {
		tx = tx.Where("user_id = ?", *f.UserID)
	}
	return tx
}

type CommentFilter struct {
	PostID   *uint
	AuthorID *uint
}

func (f CommentFilter) Apply(tx *gorm.DB) *gorm.DB {
	if f.PostID != nil {
		tx = tx.Where("post_id = ?", *f.PostID)
	}
	if f.AuthorID != nil {
		tx = tx.Where("author_id = ?", *f.AuthorID)
	}
	return tx
}

type UserFilter struct {
	Search string
}

func (f UserFilter) Apply(tx *gorm.DB) *gorm.DB {
	if len(f.Search) > 0 {
		probe := "%" + f.Search + "%"
		tx = tx.Where("name ILIKE ? OR email ILIKE ?", probe, probe)
	}
	return tx
}
