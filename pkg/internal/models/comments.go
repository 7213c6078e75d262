package models

type Comment struct {
	BaseModel

	Content string `json:"content"`

	AuthorID uint  `json:"author_id"`
	Author   *User `json:"author,omitempty"`

	PostID uint  `json:"post_id"`
	Post   *Post `json:"post,omitempty"`
}
