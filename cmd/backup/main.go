package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"learnmate/internal/config"
	"learnmate/internal/logger"
	"learnmate/internal/repository"
	"learnmate/internal/service"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "backup",
		Short: "LearnMate store backup tool",
		Long: `Export and import every stored LearnMate key as JSON.

The store is selected with STORE_BACKEND (sql, redis or memory).
For sql, DATABASE_TYPE picks sqlite, postgres or mysql; DB_PATH or
DATABASE_URL locate the database. For redis, REDIS_ADDR and REDIS_PREFIX.`,
		SilenceUsage: true,
	}
	root.AddCommand(newExportCmd(), newImportCmd())
	return root
}

func newExportCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the store to a JSON file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output == "" {
				output = fmt.Sprintf("backup_%s.json", time.Now().Format("20060102_150405"))
			}
			if dir := filepath.Dir(output); dir != "." && dir != "" {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("failed to create output directory: %w", err)
				}
			}

			return withBackupService(cmd.Context(), func(ctx context.Context, backups *service.BackupService, log *logger.Logger) error {
				log.Info("exporting store", "output", output)
				backup, err := backups.ExportFile(ctx, output)
				if err != nil {
					return err
				}

				info, err := os.Stat(output)
				if err != nil {
					return err
				}
				log.Info("export complete", "entries", len(backup.Entries), "size_kb", info.Size()/1024)
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file path (default: backup_YYYYMMDD_HHMMSS.json)")
	return cmd
}

func newImportCmd() *cobra.Command {
	var (
		input   string
		replace bool
		yes     bool
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a JSON backup into the store",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := os.Stat(input); err != nil {
				return fmt.Errorf("input file: %w", err)
			}
			if replace && !yes && !confirm(cmd, "WARNING: This will delete all existing data. Type 'yes' to confirm: ") {
				fmt.Fprintln(cmd.OutOrStdout(), "Import cancelled")
				return nil
			}

			return withBackupService(cmd.Context(), func(ctx context.Context, backups *service.BackupService, log *logger.Logger) error {
				log.Info("importing store", "input", input, "replace", replace)
				backup, err := backups.ImportFile(ctx, input, replace)
				if err != nil {
					return err
				}
				log.Info("import complete", "entries", len(backup.Entries))
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&input, "input", "i", "", "input file path")
	cmd.Flags().BoolVar(&replace, "replace", false, "remove every existing key before importing (destructive)")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprint(cmd.OutOrStdout(), prompt)
	answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	return strings.TrimSpace(answer) == "yes"
}

func withBackupService(ctx context.Context, fn func(context.Context, *service.BackupService, *logger.Logger) error) error {
	cfg := config.Load()

	log, err := logger.New(cfg.Env)
	if err != nil {
		return err
	}
	defer log.Sync()

	store, err := repository.OpenStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	if _, err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return fn(ctx, service.NewBackupService(store.KV, store.Backend, log), log)
}
