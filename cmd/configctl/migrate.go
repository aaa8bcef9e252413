package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"encrypted-config-value/config"
	"encrypted-config-value/internal/infra"
	"encrypted-config-value/internal/repository"
	"encrypted-config-value/internal/usecase"
	"encrypted-config-value/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage database migrations",
	Long:  "Manage the stored_keys schema used by the database key source",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svc, err := newMigrationService(ctx)
		if err != nil {
			return err
		}

		appliedCount, err := svc.ApplyMigrations(ctx)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		if appliedCount == 0 {
			success("No pending migrations.")
		} else {
			success("Applied %d migration(s) successfully.", appliedCount)
		}
		return nil
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migration status",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svc, err := newMigrationService(ctx)
		if err != nil {
			return err
		}

		migrations, err := svc.GetMigrationStatus(ctx)
		if err != nil {
			return fmt.Errorf("failed to get migration status: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "VERSION\tNAME\tSTATUS\tAPPLIED AT")
		fmt.Fprintln(w, "-------\t----\t------\t----------")
		for _, migration := range migrations {
			appliedAt := "-"
			if migration.AppliedAt != nil {
				appliedAt = migration.AppliedAt.Format("2006-01-02 15:04:05")
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", migration.Version, migration.Name, migration.Status, appliedAt)
		}
		if err := w.Flush(); err != nil {
			return fmt.Errorf("failed to flush output: %w", err)
		}
		return nil
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateStatusCmd)
}

// newMigrationService はDATABASE_URLのデータベースに対するMigrationServiceを生成する。
// DATABASE_URL のプレースホルダはファイルなどの鍵ストアで復号する。
func newMigrationService(ctx context.Context) (*usecase.MigrationService, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.HasPlaceholders() {
		if err := decryptSettings(ctx); err != nil {
			return nil, err
		}
	}

	db, err := infra.NewDB(cfg.DatabaseURL, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return migrationService(db), nil
}

func migrationService(db *gorm.DB) *usecase.MigrationService {
	return usecase.NewMigrationService(repository.NewMigrationRepository(db), db, migrations.FS)
}

func decryptSettings(ctx context.Context) error {
	if cfg.KeySource == config.KeySourceDatabase {
		return fmt.Errorf("encrypted settings cannot be decrypted with KEY_SOURCE=database")
	}
	keys, closeFn, err := openKeyService(ctx)
	defer closeFn()
	if err != nil {
		return err
	}
	sub, err := usecase.NewSubstitutionService(keys).Substitutor(ctx)
	if err != nil {
		return fmt.Errorf("failed to load key for encrypted settings: %w", err)
	}
	return cfg.Decrypt(ctx, sub)
}
