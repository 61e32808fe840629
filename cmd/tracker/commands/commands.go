package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/spf13/cobra"

	"github.com/JayDev810/working-project-list/internal/adapters/cloudstore"
	"github.com/JayDev810/working-project-list/internal/adapters/localstore"
	"github.com/JayDev810/working-project-list/internal/application/reports"
	"github.com/JayDev810/working-project-list/internal/application/services"
	"github.com/JayDev810/working-project-list/internal/infrastructure/config"
	"github.com/JayDev810/working-project-list/internal/infrastructure/database"
	"github.com/JayDev810/working-project-list/internal/infrastructure/logger"
	"github.com/JayDev810/working-project-list/internal/infrastructure/server"
	"github.com/JayDev810/working-project-list/internal/ports"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the work tracker API server",
		Run: func(cmd *cobra.Command, args []string) {
			runServer()
		},
	}
}

// NewSchemaCommand creates the schema command with subcommands
func NewSchemaCommand() *cobra.Command {
	schemaCmd := &cobra.Command{
		Use:   "schema",
		Short: "Cloud store schema commands",
		Long:  "Manage the work_records table schema (up, down, version)",
	}

	schemaCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Create the work_records table and notification trigger",
		Run: func(cmd *cobra.Command, args []string) {
			runSchemaMigration("up")
		},
	})

	schemaCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Drop the work_records table",
		Run: func(cmd *cobra.Command, args []string) {
			runSchemaMigration("down")
		},
	})

	schemaCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print current schema version",
		Run: func(cmd *cobra.Command, args []string) {
			showSchemaVersion()
		},
	})

	return schemaCmd
}

// NewImportCommand creates the local-to-cloud migration command
func NewImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import",
		Short: "Copy locally stored records into the cloud store",
		Long:  "One-shot upload of the local JSON slot into the work_records table. Additive and safe to re-run; local data stays in place.",
		Run: func(cmd *cobra.Command, args []string) {
			runImport()
		},
	}
}

// NewExportCommand creates the CSV export command
func NewExportCommand() *cobra.Command {
	var month string
	var developers []string

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Export work records as CSV",
		Run: func(cmd *cobra.Command, args []string) {
			runExport(month, developers)
		},
	}

	exportCmd.Flags().StringVar(&month, "month", "", "Restrict to one month (YYYY-MM)")
	exportCmd.Flags().StringSliceVar(&developers, "developer", nil, "Restrict to the given developers")

	return exportCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print tracker version",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				log.Fatalf("Failed to load configuration: %v", err)
			}
			fmt.Printf("%s %s\n", cfg.App.Name, cfg.App.Version)
		},
	}
}

func runServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	db := openDatabase(cfg, appLogger)
	if db != nil {
		defer db.Close()
	}

	srv, err := server.New(cfg, db, appLogger)
	if err != nil {
		appLogger.Fatalw("Failed to initialize server", "error", err)
	}

	appLogger.Infow("Starting work tracker API server",
		"port", cfg.Server.Port,
		"backend", cfg.Storage.Backend,
		"environment", cfg.App.Environment,
	)

	if err := srv.Start(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
		appLogger.Fatalw("Server failed to start", "error", err)
	}
}

// openDatabase opens the cloud connection when configured. Missing
// credentials are a legitimate state, not a startup failure: the cloud
// store then answers every call with its not-configured error.
func openDatabase(cfg *config.Config, appLogger *logger.Logger) *database.DB {
	if !cfg.Database.IsConfigured() {
		appLogger.Warn("Database not configured; cloud store disabled")
		return nil
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		appLogger.Fatalw("Failed to connect to database", "error", err)
	}
	return db
}

func runSchemaMigration(direction string) {
	m := newMigrator()

	var err error
	switch direction {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	}

	if err != nil && err != migrate.ErrNoChange {
		log.Fatalf("Schema migration failed: %v", err)
	}

	if err == migrate.ErrNoChange {
		fmt.Println("Schema already up to date")
	} else {
		fmt.Printf("Schema migration %s completed successfully\n", direction)
	}
}

func showSchemaVersion() {
	m := newMigrator()

	version, dirty, err := m.Version()
	if err != nil {
		log.Fatalf("Failed to get schema version: %v", err)
	}

	fmt.Printf("Current schema version: %d\n", version)
	fmt.Printf("Dirty: %t\n", dirty)
}

func newMigrator() *migrate.Migrate {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if !cfg.Database.IsConfigured() {
		log.Fatal("Database is not configured; set DB_HOST and DB_NAME first")
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	driver, err := postgres.WithInstance(db.DB.DB, &postgres.Config{})
	if err != nil {
		log.Fatalf("Failed to create migration driver: %v", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		log.Fatalf("Failed to create migration instance: %v", err)
	}

	return m
}

func runImport() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	db := openDatabase(cfg, appLogger)
	if db == nil {
		log.Fatal("Database is not configured; nothing to migrate into")
	}
	defer db.Close()

	local := localstore.New(cfg.Storage.Path, appLogger)
	cloud := cloudstore.New(db, appLogger)
	migration := services.NewMigrationService(local, cloud, appLogger)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	count, err := migration.Migrate(ctx)
	if err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	fmt.Printf("Migrated %d local records to the cloud store\n", count)
}

func runExport(month string, developers []string) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	var store ports.RecordStore = localstore.New(cfg.Storage.Path, appLogger)
	if cfg.Storage.Backend == "cloud" {
		db := openDatabase(cfg, appLogger)
		if db == nil {
			log.Fatal("Database is not configured")
		}
		defer db.Close()
		store = cloudstore.New(db, appLogger)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	records, err := store.List(ctx)
	if err != nil {
		log.Fatalf("Failed to load records: %v", err)
	}

	filtered := reports.AdminView(records, ports.RecordFilter{Month: month, Developers: developers})

	filename := reports.ExportFilename(time.Now())
	f, err := os.Create(filename)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", filename, err)
	}
	defer f.Close()

	if err := reports.WriteCSV(f, filtered); err != nil {
		log.Fatalf("Failed to write CSV: %v", err)
	}

	fmt.Printf("Exported %d records to %s\n", len(filtered), filename)
}
