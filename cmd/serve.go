package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/santo-labs/santoscore/internal/mail"
	"github.com/santo-labs/santoscore/internal/score"
	"github.com/santo-labs/santoscore/internal/search"
	"github.com/santo-labs/santoscore/internal/server"
	"github.com/santo-labs/santoscore/pkg/xai"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the contractor search web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("search"); err != nil {
			return err
		}

		client := xai.NewClient(cfg.XAI.Key, xai.WithBaseURL(cfg.XAI.BaseURL))
		scorer := score.NewScorer(client, cfg.XAI.ScoringModel)
		persona := search.LoadPersona(cfg.Search.PersonaPath)
		searcher := search.New(client, scorer, persona, cfg.XAI.SearchModel)

		// Quote mail is optional; the endpoint degrades when unconfigured.
		var mailer server.QuoteSender
		if cfg.Validate("mail") == nil {
			mailer = mail.NewMailer(cfg.SMTP)
		}

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		return server.New(searcher, mailer).Run(ctx, port)
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
