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

	"github.com/VadimTolstov/rococo-sub000/internal/config"
	"github.com/VadimTolstov/rococo-sub000/internal/gateway"
)

var gatewayCmd = &cobra.Command{
	Use:   "gateway",
	Short: "Run the API gateway in front of the catalog services",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		audience, _ := cmd.Flags().GetString("audience")

		cfg, err := config.LoadGateway(cfgFile)
		if err != nil {
			return fmt.Errorf("loading gateway config: %w", err)
		}

		log.Info().Str("issuer", cfg.Issuer).Msg("Discovering issuer...")
		verifier, err := gateway.NewOIDCVerifier(cmd.Context(), cfg.Issuer, audience)
		if err != nil {
			return fmt.Errorf("bootstrapping token verifier: %w", err)
		}

		handler, err := gateway.NewServer(verifier, cfg.Routes).Routes()
		if err != nil {
			return fmt.Errorf("building gateway routes: %w", err)
		}

		server := &http.Server{
			Addr:    addr,
			Handler: handler,
		}

		go func() {
			log.Info().Int("routes", len(cfg.Routes)).Msgf("Starting gateway on %s...", addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatal().Err(err).Msg("Gateway crashed")
			}
		}()

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info().Msg("Shutting down gateway...")

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			return fmt.Errorf("gateway forced to shutdown: %w", err)
		}

		log.Info().Msg("Gateway exited")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(gatewayCmd)

	gatewayCmd.Flags().String("addr", ":8090", "address to listen on")
	gatewayCmd.Flags().String("audience", "rococo-gateway", "audience expected in access tokens")
}
