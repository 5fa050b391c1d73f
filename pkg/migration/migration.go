package migration

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/muhammadchandra19/orderbook-observer/pkg/logger"
	"github.com/muhammadchandra19/orderbook-observer/pkg/questdb"
)

const (
	ensureTableSQL = `CREATE TABLE IF NOT EXISTS schema_migrations (
		id SYMBOL,
		name STRING,
		applied_at TIMESTAMP
	) TIMESTAMP(applied_at) PARTITION BY MONTH`
	appliedSQL = "SELECT id FROM schema_migrations ORDER BY applied_at"
	recordSQL  = "INSERT INTO schema_migrations (id, name, applied_at) VALUES ($1, $2, $3)"
	removeSQL  = "DELETE FROM schema_migrations WHERE id = $1"
)

// Migration represents a database migration
type Migration struct {
	ID        string
	Name      string
	Timestamp time.Time
	UpSQL     string
	DownSQL   string
}

// Runner handles migration execution
type Runner struct {
	client       questdb.QuestDBClient
	logger       logger.Interface
	migrationDir string
	now          func() time.Time
}

// NewRunner creates a new migration runner
func NewRunner(client questdb.QuestDBClient, log logger.Interface, migrationDir string) *Runner {
	return &Runner{
		client:       client,
		logger:       log,
		migrationDir: migrationDir,
		now:          time.Now,
	}
}

// EnsureMigrationTable creates the schema_migrations table if it doesn't exist
func (r *Runner) EnsureMigrationTable(ctx context.Context) error {
	return r.client.Exec(ctx, ensureTableSQL)
}

// GetAppliedMigrations returns a map of applied migration IDs
func (r *Runner) GetAppliedMigrations(ctx context.Context) (map[string]bool, error) {
	applied := make(map[string]bool)

	rows, err := r.client.Query(ctx, appliedSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		applied[id] = true
	}

	return applied, rows.Err()
}

// LoadMigrations loads all migration files from the migration directory
func (r *Runner) LoadMigrations() ([]Migration, error) {
	upFiles, err := filepath.Glob(filepath.Join(r.migrationDir, "*.up.sql"))
	if err != nil {
		return nil, err
	}

	sort.Strings(upFiles)

	migrations := make([]Migration, 0, len(upFiles))
	for _, upFile := range upFiles {
		migration, err := parseMigrationFiles(upFile)
		if err != nil {
			return nil, fmt.Errorf("failed to parse migration %s: %w", upFile, err)
		}
		migrations = append(migrations, migration)
	}

	return migrations, nil
}

// parseMigrationFiles reads an .up.sql file and its optional .down.sql sibling.
// File names follow YYYYMMDDHHMMSS_name; other prefixes get the zero epoch.
func parseMigrationFiles(upFilePath string) (Migration, error) {
	upContent, err := os.ReadFile(upFilePath)
	if err != nil {
		return Migration{}, err
	}

	id := strings.TrimSuffix(filepath.Base(upFilePath), ".up.sql")
	downFilePath := strings.TrimSuffix(upFilePath, ".up.sql") + ".down.sql"

	name := id
	parts := strings.SplitN(id, "_", 2)
	if len(parts) > 1 {
		name = parts[1]
	}

	timestamp, err := time.Parse("20060102150405", parts[0])
	if err != nil {
		timestamp = time.Unix(0, 0)
	}

	var downSQL string
	if downContent, err := os.ReadFile(downFilePath); err == nil {
		downSQL = strings.TrimSpace(string(downContent))
	}

	return Migration{
		ID:        id,
		Name:      name,
		Timestamp: timestamp,
		UpSQL:     strings.TrimSpace(string(upContent)),
		DownSQL:   downSQL,
	}, nil
}

// MigrateUp applies pending migrations. steps <= 0 applies all of them.
func (r *Runner) MigrateUp(ctx context.Context, steps int) (int, error) {
	if err := r.EnsureMigrationTable(ctx); err != nil {
		return 0, fmt.Errorf("failed to ensure migration table: %w", err)
	}

	migrations, err := r.LoadMigrations()
	if err != nil {
		return 0, err
	}

	applied, err := r.GetAppliedMigrations(ctx)
	if err != nil {
		return 0, err
	}

	var toApply []Migration
	for _, migration := range migrations {
		if !applied[migration.ID] {
			toApply = append(toApply, migration)
		}
	}

	if steps > 0 && len(toApply) > steps {
		toApply = toApply[:steps]
	}

	count := 0
	for _, migration := range toApply {
		if migration.UpSQL == "" {
			r.logger.Warn("migration has no up statements", logger.NewField("migration", migration.ID))
			continue
		}

		if err := r.execAll(ctx, migration.UpSQL); err != nil {
			return count, fmt.Errorf("failed to apply migration %s: %w", migration.ID, err)
		}

		if err := r.client.Exec(ctx, recordSQL, migration.ID, migration.Name, r.now().UTC()); err != nil {
			return count, fmt.Errorf("failed to record migration %s: %w", migration.ID, err)
		}

		r.logger.Info("applied migration", logger.NewField("migration", migration.ID))
		count++
	}

	return count, nil
}

// MigrateDown reverts the latest applied migrations
func (r *Runner) MigrateDown(ctx context.Context, steps int) (int, error) {
	if steps <= 0 {
		return 0, fmt.Errorf("steps must be greater than 0 for down migrations")
	}

	migrations, err := r.LoadMigrations()
	if err != nil {
		return 0, err
	}

	applied, err := r.GetAppliedMigrations(ctx)
	if err != nil {
		return 0, err
	}

	var toRevert []Migration
	for i := len(migrations) - 1; i >= 0 && len(toRevert) < steps; i-- {
		if applied[migrations[i].ID] {
			toRevert = append(toRevert, migrations[i])
		}
	}

	count := 0
	for _, migration := range toRevert {
		if migration.DownSQL == "" {
			return count, fmt.Errorf("no DOWN SQL found for migration %s - cannot revert", migration.ID)
		}

		if err := r.execAll(ctx, migration.DownSQL); err != nil {
			return count, fmt.Errorf("failed to revert migration %s: %w", migration.ID, err)
		}

		if err := r.client.Exec(ctx, removeSQL, migration.ID); err != nil {
			return count, fmt.Errorf("failed to remove migration record %s: %w", migration.ID, err)
		}

		r.logger.Info("reverted migration", logger.NewField("migration", migration.ID))
		count++
	}

	return count, nil
}

func (r *Runner) execAll(ctx context.Context, sql string) error {
	for _, stmt := range questdb.SplitStatements(sql) {
		if err := r.client.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
