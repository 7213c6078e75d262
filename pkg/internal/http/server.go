package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	jsoniter "github.com/json-iterator/go"
	"github.com/paperlark/paperlark/pkg/internal/http/api"
	"github.com/paperlark/paperlark/pkg/internal/http/exts"
	"github.com/paperlark/paperlark/pkg/internal/http/sec"
	"github.com/paperlark/paperlark/pkg/internal/security"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

type App struct {
	app *fiber.App
}

func NewServer(db *gorm.DB, tokens *security.TokenPolicy) *App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		EnableIPValidation:    true,
		ServerHeader:          "Paperlark",
		AppName:               "Paperlark v1.0",
		JSONEncoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Marshal,
		JSONDecoder:           jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal,
		ErrorHandler:          mapError,
	})

	app.Use(recover.New())

	gate := sec.NewGate(tokens)
	api.NewAPI(db, gate, tokens).MapAPIs(app, "/api")

	return &App{app}
}

// mapError renders every failure into the response envelope. Unexpected
// errors are logged with their cause and answered with a generic message so
// store internals never reach a client.
func mapError(c *fiber.Ctx, err error) error {
	var invalid *exts.ValidationError
	if errors.As(err, &invalid) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Validation failed",
			"details": invalid.Details,
		})
	}

	var failure *fiber.Error
	if errors.As(err, &failure) {
		return c.Status(failure.Code).JSON(fiber.Map{
			"success": false,
			"error":   failure.Message,
		})
	}

	log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("An error occurred when processing request...")

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"error":   "Internal server error",
	})
}

func (v *App) Listen() {
	if err := v.app.Listen(viper.GetString("bind")); err != nil &&
		!strings.Contains(err.Error(), "closed") {
		log.Fatal().Err(err).Msg("An error occurred when starting server...")
	}
}

func (v *App) Shutdown() error {
	return v.app.Shutdown()
}
