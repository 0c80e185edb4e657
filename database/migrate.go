package database

import (
	"fmt"

	"pitchdesk-backend/models"

	"gorm.io/gorm"
)

// Migrate applies idempotent schema migrations:
// - AutoMigrate (tables/columns/index tags)
// - Money column types (NUMERIC(12,2))
// - Helpful indexes
// - Basic CHECK constraints
func Migrate() error {
	return DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.AutoMigrate(
			&models.User{},
			&models.Client{},
			&models.Proposal{},
			&models.Contract{},
			&models.Invoice{},
			&models.LineItem{},
			&models.Comment{},
			&models.ShareLink{},
			&models.IdempotencyKey{},
		); err != nil {
			return fmt.Errorf("automigrate failed: %w", err)
		}

		// Enforce money columns as NUMERIC(12,2) (idempotent ALTERs).
		alters := []string{
			`ALTER TABLE invoices   ALTER COLUMN subtotal   TYPE numeric(12,2)`,
			`ALTER TABLE invoices   ALTER COLUMN tax_amount TYPE numeric(12,2)`,
			`ALTER TABLE invoices   ALTER COLUMN total      TYPE numeric(12,2)`,
			`ALTER TABLE line_items ALTER COLUMN unit_price TYPE numeric(12,2)`,
			`ALTER TABLE line_items ALTER COLUMN amount     TYPE numeric(12,2)`,
		}
		for _, stmt := range alters {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("money type migration failed on: %s - %w", stmt, err)
			}
		}

		indexes := []string{
			`CREATE INDEX IF NOT EXISTS idx_comments_proposal ON comments (proposal_id)`,
			`CREATE INDEX IF NOT EXISTS idx_comments_contract ON comments (contract_id)`,
			`CREATE INDEX IF NOT EXISTS idx_share_links_target ON share_links (type, target_id)`,
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_idempotency_keys_key ON idempotency_keys (key)`,
			// Drafts carry an empty token until first send.
			`CREATE UNIQUE INDEX IF NOT EXISTS idx_contracts_access_token ON contracts (access_token) WHERE access_token <> ''`,
		}
		for _, stmt := range indexes {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("index migration failed on: %s - %w", stmt, err)
			}
		}

		checks := []string{
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'line_items'::regclass
					  AND conname  = 'chk_line_items_quantity_nonneg'
				) THEN
					ALTER TABLE line_items
					ADD CONSTRAINT chk_line_items_quantity_nonneg
					CHECK (quantity >= 0);
				END IF;
			END $$;`,
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'line_items'::regclass
					  AND conname  = 'chk_line_items_unit_price_nonneg'
				) THEN
					ALTER TABLE line_items
					ADD CONSTRAINT chk_line_items_unit_price_nonneg
					CHECK (unit_price >= 0);
				END IF;
			END $$;`,
			`DO $$
			BEGIN
				IF NOT EXISTS (
					SELECT 1 FROM pg_constraint
					WHERE conrelid = 'proposals'::regclass
					  AND conname  = 'chk_proposals_view_count_nonneg'
				) THEN
					ALTER TABLE proposals
					ADD CONSTRAINT chk_proposals_view_count_nonneg
					CHECK (view_count >= 0);
				END IF;
			END $$;`,
		}
		for _, stmt := range checks {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("check constraint migration failed: %w", err)
			}
		}

		return nil
	})
}
