package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BrandonKowalski/navigator/internal/scenario"
	"github.com/BrandonKowalski/navigator/pkg/navigator"
	"github.com/BrandonKowalski/navigator/pkg/navigator/backstack"
	"github.com/BrandonKowalski/navigator/pkg/navigator/remote"
	"github.com/BrandonKowalski/navigator/pkg/pokedex"
	"github.com/BrandonKowalski/navigator/pkg/pokedex/model"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:     "serve [scenario-file]",
	Aliases: []string{"s"},
	Short:   "Serve the back stack to websocket clients",
	Long: `Start an in-memory navigation host and expose it over HTTP.

Endpoints:
  /ws       websocket: back-stack snapshots out, navigation requests in
  /stack    current back stack as JSON
  /healthz  liveness

When a scenario file is given it is played once the server is listening.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("addr", "", "listen address (default 127.0.0.1:8787)")
	serveCmd.Flags().StringSlice("allow-origin", nil, "cross-origin patterns allowed to connect")
	serveCmd.Flags().Int("send-buffer", 0, "snapshots queued per client before it is dropped (default 16)")
	serveCmd.Flags().Duration("write-timeout", 0, "deadline for a single websocket write (default 5s)")
}

type stackResponse struct {
	Stack   []string        `json:"stack"`
	Pending int             `json:"pending"`
	Stats   navigator.Stats `json:"stats"`
}

func stackHandler(nav *pokedex.Navigator, ctrl *backstack.Controller[pokedex.Screen], logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		err := json.NewEncoder(w).Encode(stackResponse{
			Stack:   ctrl.Snapshot().Paths(),
			Pending: nav.Pending(),
			Stats:   nav.Stats(),
		})
		if err != nil {
			logger.Debug("write stack response", "error", err)
		}
	}
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := navigator.GetLogger()
	nav := pokedex.NewNavigator()
	ctrl := pokedex.NewController().WithLogger(logger)

	bridge := remote.NewServer(navigator.Provide(nav), pokedex.ParseScreen,
		remote.WithLogger(logger),
		remote.WithSendBuffer(cfg.Server.SendBuffer),
		remote.WithWriteTimeout(cfg.Server.WriteTimeout),
		remote.WithOriginPatterns(cfg.Server.AllowedOrigins...),
	)
	ctrl.OnTransition(bridge.Publish)
	bridge.Publish(ctrl.Snapshot())

	hostErr := make(chan error, 1)
	go func() { hostErr <- nav.HandleCommands(ctx, ctrl) }()

	mux := http.NewServeMux()
	mux.Handle("/ws", bridge)
	mux.Handle("GET /stack", stackHandler(nav, ctrl, logger))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	ln, err := net.Listen("tcp", cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", cfg.Server.Addr, err)
	}
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	serveErr := make(chan error, 1)
	go func() { serveErr <- srv.Serve(ln) }()
	logger.Info("navsim listening", "addr", ln.Addr().String())
	fmt.Fprintf(cmd.OutOrStdout(), "listening on ws://%s/ws\n", ln.Addr())

	if len(args) == 1 {
		go playOnServer(ctx, cmd, args[0], nav, ctrl)
	}

	select {
	case <-ctx.Done():
	case err = <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownGrace)
	defer cancel()

	if berr := bridge.Shutdown(shutdownCtx); berr != nil {
		logger.Warn("websocket shutdown", "error", berr)
	}
	if serr := srv.Shutdown(shutdownCtx); serr != nil {
		logger.Warn("http shutdown", "error", serr)
	}
	nav.Close()
	stop()

	if herr := <-hostErr; herr != nil && !errors.Is(herr, navigator.ErrClosed) && !errors.Is(herr, context.Canceled) {
		err = errors.Join(err, herr)
	}
	logger.Info("navsim stopped", "stats", nav.Stats())
	return err
}

func playOnServer(ctx context.Context, cmd *cobra.Command, path string, nav *pokedex.Navigator, ctrl *backstack.Controller[pokedex.Screen]) {
	logger := navigator.GetLogger()

	sc, err := scenario.Load(path)
	if err != nil {
		logger.Error("load scenario", "path", path, "error", err)
		return
	}

	catalog := pokedex.StarterCatalog()
	report, err := scenario.NewRunner(nav, ctrl, catalog, logger).Run(ctx, sc)
	if err != nil {
		logger.Error("play scenario", "scenario", sc.Name, "error", err)
	}
	if report != nil {
		printReport(cmd.OutOrStdout(), model.NewFormatter(cfg.Scenario.Language), catalog, report)
	}
}
