package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AobaIwaki123/simradar/internal/config"
	ghclient "github.com/AobaIwaki123/simradar/internal/github"
	"github.com/AobaIwaki123/simradar/internal/storage"
	"github.com/AobaIwaki123/simradar/internal/webhook"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newServeCommand() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the GitHub webhook server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context(), configPath)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "configs/config.yaml", "Configuration file path")
	return cmd
}

func serve(ctx context.Context, configPath string) error {
	// Load .env if present (local dev convenience)
	_ = godotenv.Load()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	secret := os.Getenv("GITHUB_WEBHOOK_SECRET")
	if secret == "" {
		return errors.New("GITHUB_WEBHOOK_SECRET is not set")
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	gh, err := ghclient.NewClient(ctx, os.Getenv("GITHUB_PAT"))
	if err != nil {
		return err
	}
	bq, err := storage.NewBQClient(ctx, cfg)
	if err != nil {
		return err
	}
	defer bq.Close()

	handler := webhook.NewHandler(cfg, bq, gh, secret)

	mux := http.NewServeMux()
	mux.HandleFunc(cfg.Server.Path, handler.HandleWebhook)
	mux.HandleFunc("/compare", webhook.HandleCompare)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("INFO: simradar listening on %s%s", srv.Addr, cfg.Server.Path)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Printf("INFO: shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
