package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	httpin "backoffice/internal/adapters/in/http"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the background jobs",
		RunE: func(c *cobra.Command, _ []string) error {
			return a.serve(c.Context())
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	root, release, err := a.wire(ctx)
	if err != nil {
		return err
	}
	defer release()

	e := httpin.NewEcho(a.logger, a.config.Log.Level == "debug")
	if err = root.CreateHTTPServer().Register(ctx, e); err != nil {
		return err
	}

	jobManager := root.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := fmt.Sprintf("0.0.0.0:%s", a.config.HTTP.Port)
		a.logger.InfoContext(ctx, "listening", "addr", addr)
		if startErr := e.Start(addr); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
			return startErr
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
