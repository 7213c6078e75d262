package services

import (
	"time"

	"github.com/paperlark/paperlark/pkg/internal/database"
	"github.com/paperlark/paperlark/pkg/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// DoAutoDatabaseCleanup hard-deletes rows that were soft-deleted more than
// thirty days ago and drops tags no post or task references anymore. Wired
// to an hourly cron trigger at boot.
func DoAutoDatabaseCleanup(source *gorm.DB) {
	deadline := time.Now().AddDate(0, 0, -30)
	log.Debug().Time("deadline", deadline).Msg("Now starting database cleanup...")

	var count int64
	for _, model := range database.AutoMaintainRange {
		tx := source.Unscoped().
			Where("deleted_at IS NOT NULL AND deleted_at <= ?", deadline).
			Delete(model)
		if tx.Error != nil {
			log.Error().Err(tx.Error).Msg("An error occurred when running auto maintain...")
		}
		count += tx.RowsAffected
	}

	orphans := source.
		Where("id NOT IN (SELECT tag_id FROM post_tags)").
		Where("id NOT IN (SELECT tag_id FROM task_tags)").
		Delete(&models.Tag{})
	if orphans.Error != nil {
		log.Error().Err(orphans.Error).Msg("An error occurred when pruning orphan tags...")
	}
	count += orphans.RowsAffected

	log.Debug().Int64("affected", count).Msg("Database cleanup finished.")
}
