package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/codecritic/codecritic/internal/config"
	"github.com/codecritic/codecritic/internal/gitlab"
	"github.com/codecritic/codecritic/internal/server"
	"github.com/codecritic/codecritic/internal/store"
)

var flagAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the codecritic HTTP server",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runServe(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&flagAddr, "addr", "", "Listen address (overrides config)")
}

func runServe() error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagAddr != "" {
		cfg.Server.Addr = flagAddr
	}

	engine, err := buildEngine(cfg, log)
	if err != nil {
		return err
	}

	st, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.Migrate(context.Background()); err != nil {
		return err
	}

	var gl *gitlab.Client
	if cfg.GitLab.Token != "" {
		gl, err = gitlab.NewClient(cfg.GitLab.BaseURL, cfg.GitLab.Token, log)
		if err != nil {
			return err
		}
	} else {
		log.Info("no GITLAB_TOKEN set, merge-request posting disabled")
	}

	srv := server.New(engine, st, gl, log)
	if err := srv.ListenAndServe(cfg.Server.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
