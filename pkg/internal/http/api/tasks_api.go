package api

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/paperlark/paperlark/pkg/internal/http/exts"
	"github.com/paperlark/paperlark/pkg/internal/http/sec"
	"github.com/paperlark/paperlark/pkg/internal/models"
	"github.com/paperlark/paperlark/pkg/internal/services"
	"github.com/paperlark/paperlark/pkg/internal/services/queries"
	"github.com/samber/lo"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var taskSortKeys = map[string]string{
	"id":        "tasks.id",
	"title":     "tasks.title",
	"dueDate":   "tasks.due_date",
	"priority":  "tasks.priority",
	"createdAt": "tasks.created_at",
}

func parseDueDate(raw *string) (*datatypes.Date, error) {
	if raw == nil || len(*raw) == 0 {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", *raw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid due date, expected YYYY-MM-DD")
	}
	return lo.ToPtr(datatypes.Date(parsed)), nil
}

func (v *API) listTask(c *fiber.Ctx) error {
	page, limit, offset := exts.PageArgs(c)
	sort := queries.ParseSort(c.Query("sortBy"), c.Query("sortOrder", "desc"), taskSortKeys, "tasks.id")

	filter := queries.TaskFilter{
		Search:   c.Query("search"),
		Category: c.Query("category"),
	}
	if tags := c.Query("tags"); len(tags) > 0 {
		filter.Tags = strings.Split(tags, ",")
	}
	if len(c.Query("completed")) > 0 {
		filter.Completed = lo.ToPtr(c.QueryBool("completed"))
	}
	if user := c.QueryInt("userId", 0); user > 0 {
		filter.UserID = lo.ToPtr(uint(user))
	}

	tx := filter.Apply(v.DB.Model(&models.Task{}))

	count, err := services.CountTask(tx)
	if err != nil {
		return err
	}

	items, err := services.ListTask(tx, limit, offset, sort.Clause())
	if err != nil {
		return err
	}

	return exts.Paged(c, items, exts.NewPagination(page, limit, count))
}

func (v *API) getTask(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("taskId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid task id")
	}

	item, err := services.GetTask(v.DB, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Task not found")
		}
		return err
	}

	return exts.Ok(c, item)
}

func (v *API) createTask(c *fiber.Ctx) error {
	identity, err := sec.EnsureAuthenticated(c)
	if err != nil {
		return err
	}

	var data struct {
		Title       string   `json:"title" validate:"required,min=1"`
		Description string   `json:"description"`
		Completed   bool     `json:"completed"`
		DueDate     *string  `json:"due_date"`
		Priority    *int     `json:"priority" validate:"omitempty,min=1"`
		Category    string   `json:"category"`
		Tags        []string `json:"tags"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	dueDate, err := parseDueDate(data.DueDate)
	if err != nil {
		return err
	}

	item := models.Task{
		Title:       data.Title,
		Description: data.Description,
		Completed:   data.Completed,
		DueDate:     dueDate,
		Priority:    lo.FromPtrOr(data.Priority, 1),
		UserID:      identity.ID,
	}

	item, err = services.NewTask(v.DB, item, data.Category, data.Tags)
	if err != nil {
		return err
	}

	return exts.Created(c, item)
}

func (v *API) editTask(c *fiber.Ctx) error {
	identity, err := sec.EnsureAuthenticated(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Params("taskId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid task id")
	}

	var data struct {
		Title       *string  `json:"title" validate:"omitempty,min=1"`
		Description *string  `json:"description"`
		Completed   *bool    `json:"completed"`
		DueDate     *string  `json:"due_date"`
		Priority    *int     `json:"priority" validate:"omitempty,min=1"`
		Category    *string  `json:"category"`
		Tags        []string `json:"tags"`
	}

	if err := exts.BindAndValidate(c, &data); err != nil {
		return err
	}

	dueDate, err := parseDueDate(data.DueDate)
	if err != nil {
		return err
	}

	var item models.Task
	if err := v.DB.Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Task not found")
		}
		return err
	}

	if item.UserID != identity.ID {
		return fiber.NewError(fiber.StatusForbidden, "Forbidden")
	}

	item, err = services.EditTask(v.DB, item, services.TaskChanges{
		Title:       data.Title,
		Description: data.Description,
		Completed:   data.Completed,
		DueDate:     dueDate,
		Priority:    data.Priority,
		Category:    data.Category,
		Tags:        data.Tags,
	})
	if err != nil {
		return err
	}

	return exts.Ok(c, item)
}

func (v *API) deleteTask(c *fiber.Ctx) error {
	identity, err := sec.EnsureAuthenticated(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Params("taskId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid task id")
	}

	var item models.Task
	if err := v.DB.Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Task not found")
		}
		return err
	}

	if item.UserID != identity.ID {
		return fiber.NewError(fiber.StatusForbidden, "Forbidden")
	}

	if err := services.DeleteTask(v.DB, item); err != nil {
		return err
	}

	return exts.Message(c, "Task deleted")
}
