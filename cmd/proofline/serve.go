package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/openzx/proofline"
	"github.com/openzx/proofline/internal/logging"
	"github.com/openzx/proofline/internal/presentation/tui"
	httpAdapter "github.com/openzx/proofline/pkg/adapters/http"
	"github.com/openzx/proofline/pkg/observability"

	"log/slog"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the proof HTTP server",
	Long:  `Starts the proofline engine in server mode, exposing proofs and rewrite operations over a JSON API with Prometheus metrics.`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetString("port")

		logger := logging.New(slog.LevelInfo)
		registry := prometheus.NewRegistry()
		metrics := observability.NewMetrics(registry)

		eng, err := newEngine(cmd,
			proofline.WithLogger(logger),
			proofline.WithMetrics(metrics),
		)
		if err != nil {
			fmt.Printf("Error initializing proofline: %v\n", err)
			os.Exit(1)
		}

		handler := httpAdapter.NewHandler(eng.Manager(),
			httpAdapter.WithLogger(logger),
			httpAdapter.WithCatalog(eng.Catalog()),
			httpAdapter.WithMetrics(registry),
		)

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: handler,
		}

		tui.PrintBanner(proofline.Version)

		serverErrors := make(chan error, 1)
		go func() {
			fmt.Printf("Starting proofline server on %s\n", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("proofline server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
}
