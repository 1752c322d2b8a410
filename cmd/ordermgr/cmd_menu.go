package main

import (
	"os"

	"ordermgr/internal/cli"

	"github.com/spf13/cobra"
)

// ordermgr menu
var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Run the interactive menu",
	RunE:  runMenu,
}

func runMenu(cmd *cobra.Command, args []string) error {
	a, err := bootApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	m := cli.NewMenu(a.Clients, a.Products, a.Orders, os.Stdin, cmd.OutOrStdout())
	return m.Run(cmd.Context())
}
