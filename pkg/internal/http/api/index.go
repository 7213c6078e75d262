package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/paperlark/paperlark/pkg/internal/http/sec"
	"github.com/paperlark/paperlark/pkg/internal/security"
	"gorm.io/gorm"
)

// API carries the explicit dependencies every handler needs: the store
// handle, the auth gate and the token policy. Nothing here is process-global.
type API struct {
	DB     *gorm.DB
	Gate   *sec.Gate
	Tokens *security.TokenPolicy
}

func NewAPI(db *gorm.DB, gate *sec.Gate, tokens *security.TokenPolicy) *API {
	return &API{DB: db, Gate: gate, Tokens: tokens}
}

func (v *API) MapAPIs(app *fiber.App, baseURL string) {
	api := app.Group(baseURL)
	{
		auth := api.Group("/auth")
		{
			auth.Post("/register", v.doRegister)
			auth.Post("/login", v.doLogin)
			auth.Post("/logout", v.Gate.Required, v.doLogout)
		}

		users := api.Group("/users")
		{
			users.Get("/", v.Gate.Optional, v.listUser)
			users.Get("/:userId", v.Gate.Optional, v.getUser)
			users.Put("/:userId", v.Gate.Required, v.editUser)
			users.Delete("/:userId", v.Gate.Required, v.deleteUser)
		}

		posts := api.Group("/posts")
		{
			posts.Get("/", v.Gate.Optional, v.listPost)
			posts.Get("/:postId", v.Gate.Optional, v.getPost)
			posts.Post("/", v.Gate.Required, v.createPost)
			posts.Put("/:postId", v.Gate.Required, v.editPost)
			posts.Delete("/:postId", v.Gate.Required, v.deletePost)
		}

		tasks := api.Group("/tasks")
		{
			tasks.Get("/", v.Gate.Optional, v.listTask)
			tasks.Get("/:taskId", v.Gate.Optional, v.getTask)
			tasks.Post("/", v.Gate.Required, v.createTask)
			tasks.Put("/:taskId", v.Gate.Required, v.editTask)
			tasks.Delete("/:taskId", v.Gate.Required, v.deleteTask)
		}

		comments := api.Group("/comments")
		{
			comments.Get("/", v.Gate.Optional, v.listComment)
			comments.Get("/:commentId", v.Gate.Optional, v.getComment)
			comments.Post("/", v.Gate.Required, v.createComment)
			comments.Put("/:commentId", v.Gate.Required, v.editComment)
			comments.Delete("/:commentId", v.Gate.Required, v.deleteComment)
		}

		api.Get("/categories", v.listCategory)
		api.Get("/tags", v.listTag)
	}
}
