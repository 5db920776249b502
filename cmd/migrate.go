package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateSeed bool

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Long:  "Applies the schema migration to the configured store. With --seed, the built-in translation content is also loaded so it can be edited through the content API.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.Migrate(ctx); err != nil {
			return err
		}
		zap.L().Info("schema migrated", zap.String("driver", cfg.Store.Driver))

		if migrateSeed {
			cat, err := loadCatalog()
			if err != nil {
				return err
			}
			for _, e := range cat.Content {
				if err := st.UpsertContent(ctx, e); err != nil {
					return err
				}
			}
			zap.L().Info("seed content loaded", zap.Int("entries", len(cat.Content)))
		}

		fmt.Println("migration complete")
		return nil
	},
}

func init() {
	migrateCmd.Flags().BoolVar(&migrateSeed, "seed", false, "load built-in translation content into the store")
	rootCmd.AddCommand(migrateCmd)
}
