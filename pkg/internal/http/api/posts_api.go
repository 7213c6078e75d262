package api

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/paperlark/paperlark/pkg/internal/http/exts"
	"github.com/paperlark/paperlark/pkg/internal/http/sec"
	"github.com/paperlark/paperlark/pkg/internal/models"
	"github.com/paperlark/paperlark/pkg/internal/services"
	"github.com/paperlark/paperlark/pkg/internal/services/queries"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

var postSortKeys = map[string]string{
	"id":        "posts.id",
	"title":     "posts.title",
	"authorId":  "posts.author_id",
	"createdAt": "posts.created_at",
}

func universalPostFilter(c *fiber.Ctx) queries.PostFilter {
	filter := queries.PostFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
	}
	if tags := c.Query("tags"); len(tags) > 0 {
		filter.Tags = strings.Split(tags, ",")
	}
	if len(c.Query("published")) > 0 {
		filter.Published = lo.ToPtr(c.QueryBool("published"))
	}
	if author := c.QueryInt("authorId", 0); author > 0 {
		filter.AuthorID = lo.ToPtr(uint(author))
	}
	return filter
}

func (v *API) listPost(c *fiber.Ctx) error {
	page, limit, offset := exts.PageArgs(c)
	sort := queries.ParseSort(c.Query("sortBy"), c.Query("sortOrder", "desc"), postSortKeys, "posts.id")

	tx := universalPostFilter(c).Apply(v.DB.Model(&models.Post{}))

	count, err := services.CountPost(tx)
	if err != nil {
		return err
	}

	items, err := services.ListPost(tx, limit, offset, sort.Clause())
	if err != nil {
		return err
	}

	return exts.Paged(c, items, exts.NewPagination(page, limit, count))
}

func (v *API) getPost(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("postId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid post id")
	}

	item, err := services.GetPost(v.DB, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Post not found")
		}
		return err
	}

	return exts.Ok(c, item)
}

func (v *API) createPost(c *fiber.Ctx) error {
	identity, err := sec.EnsureAuthenticated(c)
	if err != nil {
		return err
	}

	var data struct {
		Title     string   `json:"title" validate:"required,min=1"`
		Content   string   `json:"content" validate:"required,min=1"`
		Published bool     `json:"published"`
		Category  string   `json:"category"`
		Tags      []string `json:"tags"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	// The owner always comes from the verified identity; an author id in the
	// request body is never honored.
	item := models.Post{
		Title:     data.Title,
		Content:   data.Content,
		Published: data.Published,
		AuthorID:  identity.ID,
	}

	item, err = services.NewPost(v.DB, item, data.Category, data.Tags)
	if err != nil {
		return err
	}

	return exts.Created(c, item)
}

func (v *API) editPost(c *fiber.Ctx) error {
	identity, err := sec.EnsureAuthenticated(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Params("postId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid post id")
	}

	var data struct {
		Title     *string  `json:"title" validate:"omitempty,min=1"`
		Content   *string  `json:"content" validate:"omitempty,min=1"`
		Published *bool    `json:"published"`
		Category  *string  `json:"category"`
		Tags      []string `json:"tags"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	var item models.Post
	if err := v.DB.Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Post not found")
		}
		return err
	}

	if item.AuthorID != identity.ID {
		return fiber.NewError(fiber.StatusForbidden, "Forbidden")
	}

	item, err = services.EditPost(v.DB, item, services.PostChanges{
		Title:     data.Title,
		Content:   data.Content,
		Published: data.Published,
		Category:  data.Category,
		Tags:      data.Tags,
	})
	if err != nil {
		return err
	}

	return exts.Ok(c, item)
}

func (v *API) deletePost(c *fiber.Ctx) error {
	identity, err := sec.EnsureAuthenticated(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Params("postId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid post id")
	}

	var item models.Post
	if err := v.DB.Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Post not found")
		}
		return err
	}

	if item.AuthorID != identity.ID {
		return fiber.NewError(fiber.StatusForbidden, "Forbidden")
	}

	if err := services.DeletePost(v.DB, item); err != nil {
		return err
	}

	return exts.Message(c, "Post deleted")
}
