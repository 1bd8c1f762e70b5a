package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/VadimTolstov/rococo-sub000/internal/audit"
	"github.com/VadimTolstov/rococo-sub000/internal/authserver"
	"github.com/VadimTolstov/rococo-sub000/internal/clients"
	"github.com/VadimTolstov/rococo-sub000/internal/codes"
	"github.com/VadimTolstov/rococo-sub000/internal/config"
	"github.com/VadimTolstov/rococo-sub000/internal/keys"
	"github.com/VadimTolstov/rococo-sub000/internal/tasks"
	"github.com/VadimTolstov/rococo-sub000/internal/users"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the authorization server",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}

		log.Info().Msg("Opening user database...")
		userStore, err := users.Open(cfg.Users.Database)
		if err != nil {
			return fmt.Errorf("opening user database: %w", err)
		}
		defer userStore.Close()

		log.Info().Str("type", cfg.CodeStore.Type).Msg("Initializing code store...")
		codeStore, err := codes.FromConfig(cmd.Context(), cfg.CodeStore.Type, cfg.CodeStore.Config)
		if err != nil {
			return fmt.Errorf("initializing code store: %w", err)
		}

		log.Info().Msg("Generating signing key pair...")
		keyProvider, err := keys.New()
		if err != nil {
			return fmt.Errorf("generating signing keys: %w", err)
		}

		auditor, err := audit.New(cfg.Audit.Enabled, cfg.Audit.Type, cfg.Audit.Path)
		if err != nil {
			return fmt.Errorf("initializing auditor: %w", err)
		}
		defer auditor.Close()

		taskManager := tasks.NewManager()
		defer taskManager.Stop()

		srv, err := authserver.NewServer(
			authserver.Options{
				Issuer:      cfg.Issuer,
				Audience:    cfg.Audience,
				CodeTTL:     cfg.Codes.TTL,
				SessionTTL:  cfg.Session.TTL,
				PendingTTL:  cfg.Session.PendingTTL,
				TemplateDir: cfg.Login.TemplateDir,
			},
			clients.NewRegistry(cfg.Clients),
			userStore,
			codeStore,
			keyProvider,
			auditor,
			taskManager,
		)
		if err != nil {
			return fmt.Errorf("building server: %w", err)
		}
		defer srv.Close()

		srv.RegisterTasks()

		if cfg.Admin.Enabled {
			adminToken, err := srv.TokenIssuer().IssueAdmin(cfg.Admin.TokenTTL)
			if err != nil {
				return fmt.Errorf("issuing admin token: %w", err)
			}
			log.Info().
				Dur("ttl", cfg.Admin.TokenTTL).
				Msgf("Admin API token: %s", adminToken)
		}

		server := &http.Server{
			Addr:    addr,
			Handler: srv.Routes(),
		}

		go func() {
			log.Info().Str("issuer", cfg.Issuer).Msgf("Starting server on %s...", addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal().Err(err).Msg("Server crashed")
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info().Msg("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}

		log.Info().Msg("Server exited")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", ":8080", "address to listen on")
}
