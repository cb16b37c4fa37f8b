// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dalzilio-labs/qmddsift/internal/httpapi"
	"github.com/dalzilio-labs/qmddsift/internal/qmddsvc"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the job API over HTTP",
	Long: `Start an HTTP server exposing:

  POST /v1/jobs            submit a circuit, run it to completion
  GET  /v1/jobs/:id        fetch a job's result
  GET  /v1/jobs/:id/dot    fetch a job's diagram in Graphviz dot format`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "HTTP listen address")
}

func runServe(c *cobra.Command, args []string) error {
	svc := qmddsvc.New(*cfg)
	server := httpapi.New(svc, log, httpapi.Options{Debug: verbose})

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info().Msg("qmddsift: shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Warn().Err(err).Msg("qmddsift: shutdown error")
		}
	}()

	return server.Listen(serveAddr)
}
