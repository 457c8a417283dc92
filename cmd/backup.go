package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Export and import data as JSON",
}

var backupExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write all data as JSON (stdout if no file given)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBackupExport,
}

var backupImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace all data with a JSON backup",
	Args:  cobra.ExactArgs(1),
	RunE:  runBackupImport,
}

func init() {
	backupCmd.AddCommand(backupExportCmd)
	backupCmd.AddCommand(backupImportCmd)
	rootCmd.AddCommand(backupCmd)
}

func runBackupExport(_ *cobra.Command, args []string) error {
	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	out := os.Stdout
	if len(args) == 1 {
		f, err := os.OpenFile(args[0], os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
		if err != nil {
			return fmt.Errorf("creating backup file: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	if err := s.Export(out); err != nil {
		return err
	}
	if len(args) == 1 && !flagQuiet {
		fmt.Printf("  Exported to %s\n", args[0])
	}
	return nil
}

func runBackupImport(_ *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening backup file: %w", err)
	}
	defer func() { _ = f.Close() }()

	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := s.Import(f); err != nil {
		return err
	}
	fmt.Println("  Import complete. Existing data was replaced.")
	return nil
}
