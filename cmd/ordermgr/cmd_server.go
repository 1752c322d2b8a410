package main

import (
	"ordermgr/internal/handler"
	"ordermgr/internal/server"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ordermgr serve
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := bootApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		e := server.New(a.Log, a.Registry, server.Handlers{
			Clients:  handler.NewClientHandler(a.Clients),
			Products: handler.NewProductHandler(a.Products),
			Orders:   handler.NewOrderHandler(a.Orders),
		})

		a.Log.Info("http server starting", zap.String("addr", a.Config.HTTP.Addr))
		return server.Start(cmd.Context(), e, a.Config.HTTP.Addr)
	},
}
