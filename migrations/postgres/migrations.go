package migrations

import (
	"embed"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

//go:embed *.sql
var sqlFS embed.FS

// FS exposes the embedded SQL for runners other than bun.
var FS = sqlFS

// Migrations holds the schema for identity.Store.
var Migrations = migrate.NewMigrations()

func init() {
	if err := Migrations.Discover(sqlFS); err != nil {
		panic("migrations: discover embedded sql: " + err.Error())
	}
}

// NewMigrator returns a migrator that tracks its state apart from other
// bun migrations sharing the database.
func NewMigrator(db *bun.DB) *migrate.Migrator {
	return migrate.NewMigrator(db, Migrations,
		migrate.WithTableName("sreg_migrations"),
		migrate.WithLocksTableName("sreg_migration_locks"),
	)
}
