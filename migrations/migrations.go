package migrations

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"sort"
	"strings"
)

//go:embed sql/*.sql
var migrationFiles embed.FS

const (
	migrationsDir = "sql"

	// trackingTable records which match history schema versions are applied
	trackingTable = "jellyfish_schema_migrations"
)

// Migration is one versioned schema change for the match history store
type Migration struct {
	Version int
	Name    string
	SQL     string
}

func (m Migration) String() string {
	return fmt.Sprintf("%03d_%s", m.Version, m.Name)
}

// RunMigrations brings the match history schema up to date
func RunMigrations(db *sql.DB) error {
	if err := createTrackingTable(db); err != nil {
		return fmt.Errorf("failed to create %s: %v", trackingTable, err)
	}

	applied, err := getAppliedMigrations(db)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %v", err)
	}

	migrations, err := readMigrationFiles(migrationFiles, migrationsDir)
	if err != nil {
		return fmt.Errorf("failed to read migration files: %v", err)
	}

	todo, err := pendingMigrations(migrations, applied)
	if err != nil {
		return err
	}

	if len(todo) == 0 {
		log.Printf("Match history schema is current at version %d", latestVersion(migrations))
		return nil
	}

	for _, migration := range todo {
		log.Printf("Applying match history migration %s", migration)
		if err := applyMigration(db, migration); err != nil {
			return fmt.Errorf("failed to apply migration %s: %v", migration, err)
		}
	}

	log.Printf("Applied %d match history migration(s), schema now at version %d", len(todo), latestVersion(migrations))
	return nil
}

func createTrackingTable(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS ` + trackingTable + ` (
			version INTEGER PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			applied_at TIMESTAMP NOT NULL DEFAULT NOW()
		)`)
	return err
}

// getAppliedMigrations maps each applied version to the name it was applied under
func getAppliedMigrations(db *sql.DB) (map[int]string, error) {
	rows, err := db.Query(`SELECT version, name FROM ` + trackingTable)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := make(map[int]string)
	for rows.Next() {
		var version int
		var name string
		if err := rows.Scan(&version, &name); err != nil {
			return nil, err
		}
		applied[version] = name
	}

	return applied, rows.Err()
}

// pendingMigrations returns the migrations not yet applied, in version order.
// A version applied under a different name means the embedded files were
// renumbered, and is reported instead of silently skipped.
func pendingMigrations(migrations []Migration, applied map[int]string) ([]Migration, error) {
	var todo []Migration
	for _, migration := range migrations {
		name, ok := applied[migration.Version]
		if !ok {
			todo = append(todo, migration)
			continue
		}
		if name != migration.Name {
			return nil, fmt.Errorf("migration %03d was applied as %q but is now %q", migration.Version, name, migration.Name)
		}
	}
	return todo, nil
}

func latestVersion(migrations []Migration) int {
	if len(migrations) == 0 {
		return 0
	}
	return migrations[len(migrations)-1].Version
}

// readMigrationFiles reads NNN_name.sql files from dir within fsys, sorted by version
func readMigrationFiles(fsys fs.FS, dir string) ([]Migration, error) {
	files, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("migrations directory not found: %v", err)
	}

	var migrations []Migration
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		var version int
		var name string
		if _, err := fmt.Sscanf(file.Name(), "%d_%s", &version, &name); err != nil {
			log.Printf("Warning: Skipping file with invalid format: %s", file.Name())
			continue
		}

		content, err := fs.ReadFile(fsys, dir+"/"+file.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read migration file %s: %v", file.Name(), err)
		}

		migrations = append(migrations, Migration{
			Version: version,
			Name:    strings.TrimSuffix(name, ".sql"),
			SQL:     string(content),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

// applyMigration runs one migration and records it in the same transaction
func applyMigration(db *sql.DB, migration Migration) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(migration.SQL); err != nil {
		return err
	}

	if _, err := tx.Exec(
		`INSERT INTO `+trackingTable+` (version, name, applied_at) VALUES ($1, $2, NOW())`,
		migration.Version, migration.Name,
	); err != nil {
		return err
	}

	return tx.Commit()
}
