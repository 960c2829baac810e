package database

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/golang-migrate/migrate/v4"
	migratedb "github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pkg/errors"
)

type MigrationLogger struct {
	ectologger.Logger
}

func (l MigrationLogger) Verbose() bool {
	return true
}

func (l MigrationLogger) Printf(format string, v ...any) {
	l.Infof(strings.TrimSuffix(format, "\n"), v...)
}

type MigrationService struct {
	config *MigrationConfig
	logger ectologger.Logger
}

type MigrationConfig struct {
	// MigrationFolderPath overrides the embedded migrations when it points at an existing folder.
	MigrationFolderPath string
	// Embedded holds one sub-directory of migrations per driver ("pg", "sqlite").
	Embedded     fs.FS
	Version      uint
	Force        int
	AutoRollback bool // If enabled, will attempt to rollback the database to the previous version if an error occurs
}

func NewMigrationService(logger ectologger.Logger, config *MigrationConfig) *MigrationService {
	return &MigrationService{
		config: config,
		logger: logger,
	}
}

func (ms *MigrationService) resolveMigrationFolder() string {
	migrationFolder := ms.config.MigrationFolderPath
	if migrationFolder == "" {
		return ""
	}
	if _, err := os.Stat(migrationFolder); err == nil {
		return migrationFolder
	}
	workingDirectory, _ := os.Getwd()
	return filepath.Join(workingDirectory, migrationFolder)
}

// embeddedDir is the sub-directory of the embedded FS holding the driver's migrations.
func embeddedDir(driverName string) (string, error) {
	switch driverName {
	case DriverPostgres:
		return "pg", nil
	case DriverSQLite:
		return "sqlite", nil
	default:
		return "", fmt.Errorf("no migrations for driver %q", driverName)
	}
}

// Migrate applies the schema migrations to db.
func (ms *MigrationService) Migrate(db DB) error {
	driver, err := ms.databaseDriver(db)
	if err != nil {
		return err
	}

	m, err := ms.newMigrate(db.DriverName(), driver)
	if err != nil {
		ms.logger.WithError(err).Error("Failed to create migrate instance")
		return err
	}

	m.Log = MigrationLogger{Logger: ms.logger}

	return ms.runMigration(m)
}

func (ms *MigrationService) databaseDriver(db DB) (migratedb.Driver, error) {
	switch db.DriverName() {
	case DriverPostgres:
		return postgres.WithInstance(db.SQL(), &postgres.Config{})
	case DriverSQLite:
		return sqlite.WithInstance(db.SQL(), &sqlite.Config{})
	default:
		return nil, fmt.Errorf("unsupported migration driver %q", db.DriverName())
	}
}

func (ms *MigrationService) newMigrate(databaseName string, driver migratedb.Driver) (*migrate.Migrate, error) {
	if folder := ms.resolveMigrationFolder(); folder != "" {
		if _, err := os.Stat(folder); err != nil {
			return nil, errors.Wrap(err, fmt.Sprintf("migration folder %s does not exist", folder))
		}
		return migrate.NewWithDatabaseInstance("file://"+folder, databaseName, driver)
	}

	if ms.config.Embedded == nil {
		return nil, fmt.Errorf("no migration source configured")
	}
	dir, err := embeddedDir(databaseName)
	if err != nil {
		return nil, err
	}
	source, err := iofs.New(ms.config.Embedded, dir)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open embedded migrations")
	}
	return migrate.NewWithInstance("iofs", source, databaseName, driver)
}

func (ms *MigrationService) runMigration(m *migrate.Migrate) error {
	if ms.config.Force != 0 {
		err := m.Force(ms.config.Force)
		if err != nil {
			ms.logger.WithError(err).Errorf("Failed to force database to version %d", ms.config.Force)
			return err
		}
	}

	version, _, versionErr := m.Version()
	if versionErr != nil && versionErr != migrate.ErrNilVersion {
		ms.logger.WithError(versionErr).Error("Failed to get current migration version")
	}

	done := make(chan bool)
	go ms.logProgress(done)

	startTime := time.Now()

	var migrationErr error
	if ms.config.Version != 0 {
		migrationErr = m.Migrate(ms.config.Version)
	} else {
		migrationErr = m.Up()
	}

	done <- true

	ms.logger.Infof("Database migrations completed in %v", time.Since(startTime))

	return ms.handleMigrationError(m, migrationErr, version)
}

func (ms *MigrationService) logProgress(done chan bool) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	dots := 0
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			dots = (dots + 1) % 4
			ms.logger.Debugf("Executing database migrations%s", strings.Repeat(".", dots))
		}
	}
}

func (ms *MigrationService) handleMigrationError(m *migrate.Migrate, err error, previousVersion uint) error {
	if err == nil {
		ms.logger.Info("Successfully applied migrations")
		return nil
	}

	if err == migrate.ErrNoChange {
		ms.logger.Info("No new migrations to apply")
		return nil
	}

	// usually a rollback of the binary to an older release
	if strings.Contains(err.Error(), "no migration found for version") {
		folder := ms.resolveMigrationFolder()
		if folder == "" {
			return err
		}
		latest, latestErr := getLatestVersion(folder)
		if latestErr != nil {
			ms.logger.WithError(latestErr).Error("Failed to get latest migration version")
			return err
		}
		ms.logger.Warnf("No migration found for version %d. Forcing database to version %d", previousVersion, latest)
		if forceErr := m.Force(latest); forceErr != nil {
			ms.logger.WithError(forceErr).Errorf("Failed to force database to version %d", latest)
			return forceErr
		}
		return nil
	}

	ms.logger.WithError(err).Errorf("Migration failed with error: %v", err)

	version, dirty, versionErr := m.Version()
	if versionErr != nil && versionErr != migrate.ErrNilVersion {
		ms.logger.WithError(versionErr).Error("Failed to get current migration version")
		return err
	}

	if ms.config.AutoRollback && dirty {
		if previousVersion == 0 && version > 0 {
			previousVersion = version - 1
		}
		ms.logger.Warnf("Database is dirty at version %d. Reverting to version %d", version, previousVersion)
		if forceErr := m.Force(int(previousVersion)); forceErr != nil {
			ms.logger.WithError(forceErr).Errorf("Failed to force database to version %d", previousVersion)
			return forceErr
		}
	}

	// still fail so the service does not start on a half-applied schema
	return errors.Wrapf(err, "failed to apply migrations (dirty=%t, version=%d)", dirty, version)
}

func getLatestVersion(folderPath string) (int, error) {
	files, err := os.ReadDir(folderPath)
	if err != nil {
		return 0, err
	}

	var versions []int
	re := regexp.MustCompile(`^(\d+)_.*\.up\.sql$`)

	for _, file := range files {
		if file.IsDir() {
			continue
		}
		matches := re.FindStringSubmatch(file.Name())
		if len(matches) > 1 {
			version, err := strconv.Atoi(matches[1])
			if err != nil {
				return 0, err
			}
			versions = append(versions, version)
		}
	}

	if len(versions) == 0 {
		return 0, fmt.Errorf("no migration files found")
	}

	sort.Ints(versions)
	return versions[len(versions)-1], nil
}
