package models

import "gorm.io/datatypes"

type Task struct {
	BaseModel

	Title       string          `json:"title"`
	Description string          `json:"description"`
	Completed   bool            `json:"completed"`
	DueDate     *datatypes.Date `json:"due_date"`
	Priority    int             `json:"priority" gorm:"default:1"`

	UserID uint  `json:"user_id"`
	User   *User `json:"user,omitempty"`

	CategoryID *uint     `json:"category_id"`
	Category   *Category `json:"category,omitempty"`

	Tags []Tag `json:"tags" gorm:"many2many:task_tags"`
}
