package api

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/paperlark/paperlark/pkg/internal/http/exts"
	"github.com/paperlark/paperlark/pkg/internal/http/sec"
	"github.com/paperlark/paperlark/pkg/internal/models"
	"github.com/paperlark/paperlark/pkg/internal/services"
	"github.com/paperlark/paperlark/pkg/internal/services/queries"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

var commentSortKeys = map[string]string{
	"id":        "id",
	"content":   "content",
	"createdAt": "created_at",
}

func (v *API) listComment(c *fiber.Ctx) error {
	page, limit, offset := exts.PageArgs(c)
	sort := queries.ParseSort(c.Query("sortBy"), c.Query("sortOrder", "desc"), commentSortKeys, "created_at")

	var filter queries.CommentFilter
	if post := c.QueryInt("postId", 0); post > 0 {
		filter.PostID = lo.ToPtr(uint(post))
	}
	if author := c.QueryInt("authorId", 0); author > 0 {
		filter.AuthorID = lo.ToPtr(uint(author))
	}

	tx := filter.Apply(v.DB.Model(&models.Comment{}))

	count, err := services.CountComment(tx)
	if err != nil {
		return err
	}

	items, err := services.ListComment(tx, limit, offset, sort.Clause())
	if err != nil {
		return err
	}

	return exts.Paged(c, items, exts.NewPagination(page, limit, count))
}

func (v *API) getComment(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("commentId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid comment id")
	}

	item, err := services.GetComment(v.DB, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Comment not found")
		}
		return err
	}

	return exts.Ok(c, item)
}

func (v *API) createComment(c *fiber.Ctx) error {
	identity, err := sec.EnsureAuthenticated(c)
	if err != nil {
		return err
	}

	var data struct {
		Content string `json:"content" validate:"required,min=1"`
		PostID  uint   `json:"postId" validate:"required"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	if _, err := services.CheckPostExists(v.DB, data.PostID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Post not found")
		}
		return err
	}

	item := models.Comment{
		Content:  data.Content,
		PostID:   data.PostID,
		AuthorID: identity.ID,
	}

	item, err = services.NewComment(v.DB, item)
	if err != nil {
		return err
	}

	return exts.Created(c, item)
}

func (v *API) editComment(c *fiber.Ctx) error {
	identity, err := sec.EnsureAuthenticated(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Params("commentId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid comment id")
	}

	var data struct {
		Content string `json:"content" validate:"required,min=1"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	var item models.Comment
	if err := v.DB.Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Comment not found")
		}
		return err
	}

	if item.AuthorID != identity.ID {
		return fiber.NewError(fiber.StatusForbidden, "Forbidden")
	}

	item, err = services.EditComment(v.DB, item, data.Content)
	if err != nil {
		return err
	}

	return exts.Ok(c, item)
}

func (v *API) deleteComment(c *fiber.Ctx) error {
	identity, err := sec.EnsureAuthenticated(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Params("commentId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid comment id")
	}

	var item models.Comment
	if err := v.DB.Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Comment not found")
		}
		return err
	}

	if item.AuthorID != identity.ID {
		return fiber.NewError(fiber.StatusForbidden, "Forbidden")
	}

	if err := services.DeleteComment(v.DB, item); err != nil {
		return err
	}

	return exts.Message(c, "Comment deleted")
}
