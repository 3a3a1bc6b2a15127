// Package main provides the CLI entrypoint for quizboard.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/quizboard/internal/config"
	"github.com/verte-zerg/quizboard/internal/errors"
	"github.com/verte-zerg/quizboard/internal/history"
	"github.com/verte-zerg/quizboard/internal/model"
	"github.com/verte-zerg/quizboard/internal/play"
	"github.com/verte-zerg/quizboard/internal/report"
	"github.com/verte-zerg/quizboard/internal/store"
)

var (
	rootConfigPath string
	rootDBPath     string
	rootStorage    string
	rootLogLevel   string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "quizboard",
		Short:         "Host trivia board games from the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runListCmd,
	}

	rootCmd.PersistentFlags().StringVar(&rootConfigPath, "config", config.DefaultConfigPath(), "config file")
	rootCmd.PersistentFlags().StringVar(&rootDBPath, "db", "", "SQLite database path")
	rootCmd.PersistentFlags().StringVar(&rootStorage, "storage", "", "storage backend (sqlite or redis)")
	rootCmd.PersistentFlags().StringVar(&rootLogLevel, "log-level", "", "log level (debug, info, warn, error)")

	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newNewCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newPlayCmd())
	rootCmd.AddCommand(newAnswerCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newTeamCmd())
	rootCmd.AddCommand(newAdjustCmd())
	rootCmd.AddCommand(newUndoCmd())
	rootCmd.AddCommand(newRedoCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newFinalCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newDeleteCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newValidateCmd())
	rootCmd.AddCommand(newThemesCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

type gameStore interface {
	play.Store
	io.Closer
}

// app bundles what every game command needs.
type app struct {
	settings config.Settings
	log      *slog.Logger
	store    gameStore
	ctl      *play.Controller
}

func openApp(cmd *cobra.Command) (*app, error) {
	settings, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}
	log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: settings.LogLevel}))

	var st gameStore
	switch settings.Backend {
	case config.BackendRedis:
		st, err = store.DialRedis(cmd.Context(), settings.RedisAddr,
			store.WithPrefix(settings.RedisPrefix), store.WithLogger(log))
	default:
		st, err = store.Open(settings.DBPath, store.WithLogger(log))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", settings.Backend, err)
	}
	log.Debug("store opened", "backend", settings.Backend)

	game := settings.Game
	return &app{
		settings: settings,
		log:      log,
		store:    st,
		ctl: play.NewController(play.Config{
			Store:    st,
			History:  history.New(settings.HistoryCapacity),
			Logger:   log,
			Settings: &game,
		}),
	}, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn("failed to close store", "err", err)
	}
}

func loadSettings(cmd *cobra.Command) (config.Settings, error) {
	return config.Load(rootConfigPath, func(env *config.EnvConfig) {
		applyStringFlag(cmd, "db", &env.DBPath, rootDBPath)
		applyStringFlag(cmd, "storage", &env.Storage, rootStorage)
		applyStringFlag(cmd, "log-level", &env.LogLevel, rootLogLevel)
	})
}

// applyStringFlag lets an explicitly set flag win over the environment.
func applyStringFlag(cmd *cobra.Command, name string, target *string, value string) {
	if !cmd.Flags().Changed(name) {
		return
	}
	*target = value
}

// loadGame finds a game by full id or by a unique id prefix.
func (a *app) loadGame(ctx context.Context, ref string) (*model.Session, error) {
	s, err := a.ctl.Load(ctx, ref)
	if err == nil || !errors.IsCode(err, errors.CodeNotFound) {
		return s, err
	}
	all, lerr := a.ctl.List(ctx)
	if lerr != nil {
		return nil, lerr
	}
	var match *model.Session
	for _, g := range all {
		if !strings.HasPrefix(g.ID, ref) {
			continue
		}
		if match != nil {
			return nil, errors.New(errors.CodeValidation, errors.WithMessagef("game id prefix %q is ambiguous", ref))
		}
		match = g
	}
	if match == nil {
		return nil, err
	}
	return match, nil
}

// withGame opens the app, loads the game named by args[0] and runs fn.
func withGame(cmd *cobra.Command, args []string, fn func(ctx context.Context, a *app, s *model.Session) error) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()
	ctx := cmd.Context()
	s, err := a.loadGame(ctx, args[0])
	if err != nil {
		return err
	}
	return fn(ctx, a, s)
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List games, most recently played first",
		Args:  cobra.NoArgs,
		RunE:  runListCmd,
	}
}

func runListCmd(cmd *cobra.Command, _ []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()
	games, err := a.ctl.List(cmd.Context())
	if err != nil {
		return err
	}
	return report.GameList(cmd.OutOrStdout(), games)
}

func printWarnings(w io.Writer, warnings []string) {
	for _, warning := range warnings {
		if _, err := fmt.Fprintf(w, "warning: %s\n", warning); err != nil {
			// Best-effort warning output.
			_ = err
		}
	}
}
