package database

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// NewGorm opens the relational store and returns an explicit handle. The
// handle is injected everywhere it is needed; there is no package-level
// connection.
func NewGorm() (*gorm.DB, error) {
	dialector := postgres.Open(viper.GetString("database.dsn"))

	source, err := gorm.Open(dialector, &gorm.Config{
		NamingStrategy: schema.NamingStrategy{
			TablePrefix: viper.GetString("database.prefix"),
		},
		// Surfaces unique and foreign key violations as typed gorm errors
		// so handlers can match them structurally.
		TranslateError: true,
		Logger:         logger.New(&log.Logger, logger.Config{SlowThreshold: time.Second, LogLevel: logger.Silent}),
	})
	if err != nil {
		return nil, err
	}

	return source, nil
}
