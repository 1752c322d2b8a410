package main

import (
	"fmt"

	"ordermgr/internal/config"
	"ordermgr/internal/infra/db"

	"github.com/spf13/cobra"
)

// ordermgr migrate（テーブル作成のみ。何度実行してもよい）
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the clients, products and orders tables if missing",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		gdb, err := db.Open(cfg.DB)
		if err != nil {
			return err
		}
		defer db.Close(gdb)

		if err := db.Migrate(gdb); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date.")
		return nil
	},
}
