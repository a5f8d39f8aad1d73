package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"folio/internal/clock"
	"folio/internal/config"
	"folio/internal/domain/behavior"
	"folio/internal/domain/notification"
	"folio/internal/eventloop"
	"folio/internal/infra/submit"
	"folio/internal/infra/surface/browser"

	"github.com/spf13/cobra"
)

const drainTimeout = 5 * time.Second

func newRunCmd(a *app) *cobra.Command {
	var url string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Serve the portfolio and drive its behaviors in a browser",
		Long:  `run starts the preview server, opens the page in Chrome (launched, or reached through browser.control_url) and runs the page behaviors on the event loop until interrupted.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv, errc := startServer(ctx, a.cfg)
			defer shutdownServer(srv)

			if url == "" {
				url = fmt.Sprintf("http://localhost:%d/", a.cfg.Server.Port)
			}
			runErr := make(chan error, 1)
			go func() { runErr <- runPage(ctx, a.cfg, url) }()

			select {
			case err := <-errc:
				return err
			case err := <-runErr:
				return err
			}
		},
	}
	cmd.Flags().StringVar(&url, "url", "", "Page to drive (default: the preview server)")
	return cmd
}

// runPage attaches the behaviors to url and runs them until ctx ends.
func runPage(ctx context.Context, cfg *config.Config, url string) error {
	// The browser outlives ctx so shutdown can still unhook the page.
	bctx, closeBrowser := context.WithCancel(context.Background())
	defer closeBrowser()

	surface, err := browser.Open(bctx, cfg.Browser, url)
	if err != nil {
		return err
	}
	defer surface.Close()

	loop := eventloop.New(0)
	clk := loop.Clock(clock.Real())

	manager, err := notification.NewManager(surface, clk, notification.Config{
		DisplayFor: cfg.Timing.NotificationDisplay(),
		FadeFor:    cfg.Timing.NotificationFade(),
		Container:  "body",
	})
	if err != nil {
		return err
	}

	submitter := submit.NewSimulated(cfg.Submit.Latency(), cfg.Submit.FailureRate, nil)

	loopCtx, stopLoop := context.WithCancel(context.Background())
	defer stopLoop()
	go loop.Run(loopCtx)

	var page *behavior.Page
	attached := make(chan error, 1)
	loop.Post(func() {
		p, err := behavior.Attach(ctx, behavior.Deps{
			Surface:   surface,
			Clock:     clk,
			Notifier:  manager,
			Submitter: submitter,
			Post:      loop.Post,
			Options: behavior.Options{
				ScrollThrottle:        cfg.Timing.ScrollThrottle(),
				InputDebounce:         cfg.Timing.InputDebounce(),
				HeaderScrollThreshold: cfg.Timing.HeaderScrollThreshold,
				BackToTopThreshold:    cfg.Timing.BackToTopThreshold,
				LazyMargin:            cfg.Timing.LazyMarginPx,
			},
		})
		page = p
		attached <- err
	})
	if err := <-attached; err != nil {
		return fmt.Errorf("attaching behaviors: %w", err)
	}

	pollCtx, stopPoll := context.WithCancel(ctx)
	defer stopPoll()
	go surface.Poll(pollCtx, cfg.Browser.PollInterval(), loop.Post)

	slog.Info("page running", "url", url)
	<-ctx.Done()
	stopPoll()

	finished := make(chan struct{})
	if loop.Post(func() {
		page.Detach()
		manager.RemoveAll()
		close(finished)
	}) {
		select {
		case <-finished:
		case <-time.After(drainTimeout):
			slog.Warn("page detach timed out")
		}
	}
	stopLoop()
	<-loop.Done()

	slog.Info("page stopped")
	return nil
}
