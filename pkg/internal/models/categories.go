package models

// Category and Tag are referenced by name from post and task payloads and
// created on demand, so their names carry a unique index.

type Category struct {
	BaseModel

	Name  string `json:"name" gorm:"uniqueIndex"`
	Posts []Post `json:"posts,omitempty"`
	Tasks []Task `json:"tasks,omitempty"`
}

type Tag struct {
	BaseModel

	Name  string `json:"name" gorm:"uniqueIndex"`
	Posts []Post `json:"posts,omitempty" gorm:"many2many:post_tags"`
	Tasks []Task `json:"tasks,omitempty" gorm:"many2many:task_tags"`
}
