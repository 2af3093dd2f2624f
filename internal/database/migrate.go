package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"

	"github.com/lingocraft/lingocraft/schemas"
)

type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// Migrate applies the embedded schema migrations in the given direction.
// Running it when the schema is already current is not an error.
// The connection it borrows from db is returned to the pool before it returns.
func Migrate(ctx context.Context, db *sqlx.DB, direction Direction) error {
	if direction != DirectionUp && direction != DirectionDown {
		return fmt.Errorf("unknown migration direction %q", direction)
	}

	source, err := iofs.New(schemas.Migrations, "migrations")
	if err != nil {
		return fmt.Errorf("iofs.New() > %w", err)
	}
	conn, err := db.Conn(ctx)
	if err != nil {
		_ = source.Close()
		return fmt.Errorf("db.Conn() > %w", err)
	}
	driver, err := migratemysql.WithConnection(ctx, conn, &migratemysql.Config{})
	if err != nil {
		_ = source.Close()
		_ = conn.Close()
		return fmt.Errorf("migratemysql.WithConnection() > %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "mysql", driver)
	if err != nil {
		_ = source.Close()
		_ = driver.Close()
		return fmt.Errorf("migrate.NewWithInstance() > %w", err)
	}
	defer func() {
		if sourceErr, driverErr := m.Close(); sourceErr != nil || driverErr != nil {
			slog.Default().Warn("failed to close migrator",
				"source_error", sourceErr,
				"driver_error", driverErr,
			)
		}
	}()

	if direction == DirectionUp {
		err = m.Up()
	} else {
		err = m.Down()
	}
	if errors.Is(err, migrate.ErrNoChange) {
		slog.Default().Info("schema is up to date", "direction", direction)
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate %s > %w", direction, err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("m.Version() > %w", err)
	}
	slog.Default().Info("schema migrated", "direction", direction, "version", version, "dirty", dirty)
	return nil
}
