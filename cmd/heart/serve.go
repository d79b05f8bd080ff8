package main

import (
	"fmt"
	"log/slog"

	"github.com/Veraticus/healthy-heart/internal/web"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the vitals form and JSON API",
		Long: `Start the web server. Browsers get the sign-in page and the vitals
form; scripts can use the JSON API under /api/v1 with a bearer token.

server.jwt_secret (or HEART_SERVER_JWT_SECRET) must be set.`,
		RunE: runServe,
	}

	cmd.Flags().StringP("address", "a", "", "listen address (default :8080)")
	cmd.Flags().Bool("debug", false, "run gin in debug mode")
	cmd.Flags().Bool("tls", false, "serve HTTPS with a self-signed localhost certificate")
	_ = viper.BindPFlag("server.tls", cmd.Flags().Lookup("tls"))
	_ = viper.BindPFlag("server.address", cmd.Flags().Lookup("address"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	if debug, _ := cmd.Flags().GetBool("debug"); !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	a, err := initApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.cfg.ValidateServer(); err != nil {
		return err
	}

	server, err := web.NewServer(a.engine, a.cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	slog.Info("Serving healthy-heart", "address", a.cfg.Server.Address, "database", a.store.Path())
	return server.Run(cmd.Context())
}
