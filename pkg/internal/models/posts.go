package models

type Post struct {
	BaseModel

	Title     string `json:"title"`
	Content   string `json:"content"`
	Published bool   `json:"published"`
	Language  string `json:"language"`

	AuthorID uint  `json:"author_id"`
	Author   *User `json:"author,omitempty"`

	CategoryID *uint     `json:"category_id"`
	Category   *Category `json:"category,omitempty"`

	Tags     []Tag     `json:"tags" gorm:"many2many:post_tags"`
	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:PostID"`
}
