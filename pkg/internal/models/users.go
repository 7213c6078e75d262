package models

type User struct {
	BaseModel

	Email string `json:"email" gorm:"uniqueIndex" validate:"required,email"`
	Name  string `json:"name"`

	// Password holds the bcrypt digest. It is write-only from the API's
	// perspective and must never appear in a response body.
	Password string `json:"-"`

	Posts    []Post    `json:"posts,omitempty" gorm:"foreignKey:AuthorID"`
	Tasks    []Task    `json:"tasks,omitempty" gorm:"foreignKey:UserID"`
	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:AuthorID"`
}
