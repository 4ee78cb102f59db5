package database

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/yukikurage/knowledge-share-api/internal/logging"
)

type index struct {
	table   string
	name    string
	columns string
}

// lookupIndexes backs the author, review queue and audit history queries.
var lookupIndexes = []index{
	{"knowledge_items", "idx_knowledge_items_author_id", "author_id"},
	{"knowledge_items", "idx_knowledge_items_status", "status"},
	{"validation_records", "idx_validation_records_item_id", "item_id"},
}

// AddIndexes creates the lookup indexes that are not declared on the models
func AddIndexes(db *gorm.DB) error {
	migrator := db.Migrator()

	for _, idx := range lookupIndexes {
		if migrator.HasIndex(idx.table, idx.name) {
			logging.Debug().Str("index", idx.name).Msg("index already exists, skipping")
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}

		logging.Info().Str("index", idx.name).Str("table", idx.table).Str("columns", idx.columns).Msg("created index")
	}

	return nil
}
