package pgx

import (
	"errors"

	"github.com/golang-migrate/migrate/v4"

	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"

	"github.com/skyatlas/missionq/pkg/logger"
)

// RunMigrations applies all pending schema migrations from the given
// directory against the database at databaseURL.
func RunMigrations(migrationsPath, databaseURL string) error {
	m, err := migrate.New("file://"+migrationsPath, databaseURL)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logger.Debug("[Store] Schema already up to date")
			return nil
		}
		return err
	}

	logger.Info("[Store] Schema migrations applied")
	return nil
}
