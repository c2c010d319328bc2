package cli

import (
	"fmt"

	"laptop-ledger/internal/database"
	"laptop-ledger/internal/store"

	"github.com/spf13/cobra"
)

// ─── copy ───────────────────────────────────────────────────────────────────

func newCopyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy every collection into another store",
		Long: `Copy every collection from the store selected by --driver/--data-dir/--dsn
into the one selected by --to-driver/--to-dir/--to-dsn. Use it to move the
JSON data directory into SQLite or MySQL. Collections absent from the
source are left alone in the destination.`,
		Args: cobra.NoArgs,
		RunE: runCopy,
	}
	cmd.Flags().String("to-driver", "", "Destination store driver")
	cmd.Flags().String("to-dir", "", "Destination data directory (file driver)")
	cmd.Flags().String("to-dsn", "", "Destination DSN (sqlite and mysql drivers)")
	_ = cmd.MarkFlagRequired("to-driver")
	return cmd
}

func runCopy(cmd *cobra.Command, args []string) error {
	toDriver, _ := cmd.Flags().GetString("to-driver")
	toDir, _ := cmd.Flags().GetString("to-dir")
	toDSN, _ := cmd.Flags().GetString("to-dsn")

	src, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := database.OpenStore(toDriver, toDir, toDSN)
	if err != nil {
		return fmt.Errorf("open destination: %w", err)
	}
	defer dst.Close()

	n, err := store.Copy(cmd.Context(), dst, src)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✅ Copied %d collections\n", n)
	return nil
}
