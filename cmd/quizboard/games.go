package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/quizboard/internal/board"
	"github.com/verte-zerg/quizboard/internal/history"
	"github.com/verte-zerg/quizboard/internal/model"
	"github.com/verte-zerg/quizboard/internal/report"
	"github.com/verte-zerg/quizboard/internal/tui"
)

var (
	newTeams []string

	showBoard    bool
	showAnswers  bool
	showTimeline bool

	exportFormat string
	exportOut    string
)

func newNewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new <board-file>",
		Short: "Start a game from a board file",
		Args:  cobra.ExactArgs(1),
		RunE:  runNewCmd,
	}
	cmd.Flags().StringArrayVar(&newTeams, "team", nil, "team name (repeatable)")
	return cmd
}

func runNewCmd(cmd *cobra.Command, args []string) error {
	res, err := board.LoadFile(args[0])
	if err != nil {
		return err
	}
	printWarnings(cmd.ErrOrStderr(), res.Warnings)

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()
	s, err := a.ctl.Create(cmd.Context(), res.Config, newTeams...)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), "Created game %s\n\n", s.ID); err != nil {
		return err
	}
	return report.Scoreboard(cmd.OutOrStdout(), s, false)
}

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <game-id>",
		Short: "Show the scoreboard of a game",
		Args:  cobra.ExactArgs(1),
		RunE:  runShowCmd,
	}
	cmd.Flags().BoolVar(&showBoard, "board", false, "also print the board grid")
	cmd.Flags().BoolVar(&showAnswers, "answers", false, "mark the wager question on the board")
	cmd.Flags().BoolVar(&showTimeline, "timeline", false, "also plot scores over time")
	return cmd
}

func runShowCmd(cmd *cobra.Command, args []string) error {
	return withGame(cmd, args, func(_ context.Context, _ *app, s *model.Session) error {
		out := cmd.OutOrStdout()
		if err := report.Scoreboard(out, s, false); err != nil {
			return err
		}
		if showBoard {
			if _, err := fmt.Fprintln(out); err != nil {
				return err
			}
			if err := report.Board(out, s, showAnswers); err != nil {
				return err
			}
		}
		if showTimeline {
			if _, err := fmt.Fprintln(out); err != nil {
				return err
			}
			return report.Timeline(out, report.ScoreSeries(s), 0, 0, false)
		}
		return nil
	})
}

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play <game-id>",
		Short: "Host a game on the interactive board",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlayCmd,
	}
}

func runPlayCmd(cmd *cobra.Command, args []string) error {
	return withGame(cmd, args, func(_ context.Context, a *app, s *model.Session) error {
		program := tea.NewProgram(tui.NewModel(a.ctl, s), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run board TUI: %w", err)
		}
		return report.Scoreboard(cmd.OutOrStdout(), s, false)
	})
}

func newUndoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "undo <game-id>",
		Short: "Undo the last action",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGame(cmd, args, func(ctx context.Context, a *app, s *model.Session) error {
				ok, err := a.ctl.Undo(ctx, s)
				if err != nil {
					return err
				}
				if !ok {
					return printf(cmd, "Nothing to undo.\n")
				}
				return printf(cmd, "Undid: %s\n", history.Describe(s.History[s.HistoryIndex+1].Action))
			})
		},
	}
}

func newRedoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "redo <game-id>",
		Short: "Redo the last undone action",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGame(cmd, args, func(ctx context.Context, a *app, s *model.Session) error {
				ok, err := a.ctl.Redo(ctx, s)
				if err != nil {
					return err
				}
				if !ok {
					return printf(cmd, "Nothing to redo.\n")
				}
				return printf(cmd, "Redid: %s\n", history.Describe(s.History[s.HistoryIndex].Action))
			})
		},
	}
}

func newHistoryCmd() *cobra.Command {
	var clearHistory bool
	cmd := &cobra.Command{
		Use:   "history <game-id>",
		Short: "Show the action history of a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGame(cmd, args, func(ctx context.Context, a *app, s *model.Session) error {
				if clearHistory {
					if err := a.ctl.ClearHistory(ctx, s); err != nil {
						return err
					}
				}
				return report.History(cmd.OutOrStdout(), history.Summary(s))
			})
		},
	}
	cmd.Flags().BoolVar(&clearHistory, "clear", false, "forget the history; scores are kept")
	return cmd
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <game-id>",
		Short: "Write the board of a game to a file or stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  runExportCmd,
	}
	cmd.Flags().StringVar(&exportFormat, "format", "", "json, yaml or toml (default: from --out, else json)")
	cmd.Flags().StringVar(&exportOut, "out", "", "output file (default: stdout)")
	return cmd
}

func runExportCmd(cmd *cobra.Command, args []string) error {
	format, err := resolveFormat(exportFormat, exportOut)
	if err != nil {
		return err
	}
	return withGame(cmd, args, func(_ context.Context, _ *app, s *model.Session) error {
		data, err := board.Export(s.Config, format)
		if err != nil {
			return err
		}
		if exportOut == "" {
			_, err := cmd.OutOrStdout().Write(data)
			return err
		}
		return writeFileAtomic(exportOut, data)
	})
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <game-id>",
		Short: "Delete a game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGame(cmd, args, func(ctx context.Context, a *app, s *model.Session) error {
				if err := a.ctl.Delete(ctx, s.ID); err != nil {
					return err
				}
				return printf(cmd, "Deleted %s (%s)\n", s.Title, s.ID)
			})
		},
	}
}

func resolveFormat(name, path string) (board.Format, error) {
	if name != "" {
		return board.ParseFormat(name)
	}
	if ext := filepath.Ext(path); ext != "" {
		return board.ParseFormat(ext[1:])
	}
	return board.FormatJSON, nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	tmpFile, err := os.CreateTemp(dir, ".quizboard-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func printf(cmd *cobra.Command, format string, args ...any) error {
	if _, err := fmt.Fprintf(cmd.OutOrStdout(), format, args...); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
