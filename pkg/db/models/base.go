package models

import "github.com/google/uuid"

// Identifiers are char(36) in the gorm tags so AutoMigrate works on sqlite and
// mysql; the Postgres migrations declare native uuid columns.

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// All lists every persisted model in dependency order for AutoMigrate.
func All() []any {
	return []any{
		&User{},
		&Category{},
		&Supplier{},
		&Book{},
		&Inventory{},
		&CartLine{},
		&Order{},
	}
}
