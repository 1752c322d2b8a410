package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"ordermgr/internal/app"
	"ordermgr/internal/config"

	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "ordermgr",
	Short:         "Manage clients, products and orders",
	Long:          "ordermgr keeps clients, products and orders in a relational store and archives executed orders.",
	SilenceUsage:  true,
	SilenceErrors: true,
	// サブコマンドなしなら対話メニュー
	RunE: runMenu,
}

func init() {
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(clientCmd)
	rootCmd.AddCommand(productCmd)
	rootCmd.AddCommand(orderCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(serveCmd)
}

// bootApp は設定を読んで部品を組み立てる。呼び出し側でCloseする
func bootApp(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return app.New(ctx, cfg)
}
