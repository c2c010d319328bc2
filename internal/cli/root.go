// Package cli implements shopctl, the maintenance tool that works directly
// on the data store while the server is stopped.
package cli

import (
	"context"
	"fmt"
	"os"

	"laptop-ledger/internal/config"
	"laptop-ledger/internal/database"
	"laptop-ledger/internal/store"

	"github.com/spf13/cobra"
)

// Execute runs shopctl with the process arguments.
func Execute() {
	if err := NewRootCmd(config.Load()).ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree. Store flags default to the values
// the server would use.
func NewRootCmd(cfg *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:          "shopctl",
		Short:        "Maintain the laptop shop data store",
		SilenceUsage: true,
	}
	root.PersistentFlags().String("driver", cfg.StoreDriver, "Store driver: file, sqlite or mysql")
	root.PersistentFlags().String("data-dir", cfg.DataDir, "Data directory for the file driver")
	root.PersistentFlags().String("dsn", cfg.DBDSN, "DSN for the sqlite and mysql drivers")

	root.AddCommand(newUserCmd())
	root.AddCommand(newHashPasswordCmd())
	root.AddCommand(newCopyCmd())
	return root
}

// openStore opens the store selected by the persistent flags.
func openStore(cmd *cobra.Command) (store.Store, error) {
	driver, _ := cmd.Flags().GetString("driver")
	dir, _ := cmd.Flags().GetString("data-dir")
	dsn, _ := cmd.Flags().GetString("dsn")
	s, err := database.OpenStore(driver, dir, dsn)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return s, nil
}
