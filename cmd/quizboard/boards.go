package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/quizboard/internal/board"
	"github.com/verte-zerg/quizboard/internal/config"
	"github.com/verte-zerg/quizboard/internal/game"
	"github.com/verte-zerg/quizboard/internal/history"
	"github.com/verte-zerg/quizboard/internal/model"
	"github.com/verte-zerg/quizboard/internal/report"
)

var (
	initTitle       string
	initCategories  []string
	initColumns     int
	initRows        int
	initRandomWager bool
	initFinal       string
	initTheme       string
	initForce       bool
	initSeed        int64

	themesColor bool
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init <board-file>",
		Short: "Write a blank board file to fill in",
		Args:  cobra.ExactArgs(1),
		RunE:  runInitCmd,
	}
	cmd.Flags().StringVar(&initTitle, "title", "", "board title (default: from the file name)")
	cmd.Flags().StringSliceVar(&initCategories, "categories", nil, "comma-separated category names")
	cmd.Flags().IntVar(&initColumns, "columns", board.DefaultColumns, "number of categories when --categories is not set")
	cmd.Flags().IntVar(&initRows, "rows", board.DefaultRows, "questions per category")
	cmd.Flags().BoolVar(&initRandomWager, "random-wager", false, "flag a random cell as the wager question")
	cmd.Flags().StringVar(&initFinal, "final", "", "add a final round with this category")
	cmd.Flags().StringVar(&initTheme, "theme", "", "preset id, or board,question,text,accent[,background] hex colours")
	cmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing file")
	cmd.Flags().Int64Var(&initSeed, "seed", 0, "random seed for --random-wager (default: time based)")
	return cmd
}

func runInitCmd(cmd *cobra.Command, args []string) error {
	path := args[0]
	format, err := resolveFormat("", path)
	if err != nil {
		return err
	}
	if !initForce {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists; pass --force to overwrite", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat %s: %w", path, err)
		}
	}

	title := strings.TrimSpace(initTitle)
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	var opts []board.BuilderOption
	if cmd.Flags().Changed("seed") {
		opts = append(opts, board.WithSeed(initSeed))
	}
	b := board.NewBuilder(title, opts...)

	columns := initColumns
	if len(initCategories) > 0 {
		columns = len(initCategories)
	}
	if err := b.Resize(columns, initRows); err != nil {
		return err
	}
	for i, name := range initCategories {
		if err := b.SetCategoryName(i, name); err != nil {
			return err
		}
	}
	if initRandomWager {
		b.PlaceRandomWagerSpecial()
	}
	if cmd.Flags().Changed("final") {
		b.SetFinalRound(&model.FinalRound{Category: initFinal})
	}
	if initTheme != "" {
		if err := b.SetTheme(parseThemeFlag(initTheme)); err != nil {
			return err
		}
	}

	data, err := board.Export(b.Config(), format)
	if err != nil {
		return err
	}
	if err := writeFileAtomic(path, data); err != nil {
		return err
	}
	return printf(cmd, "Wrote %s (%d x %d)\n", path, b.Columns(), b.Rows())
}

// parseThemeFlag reads a preset id or a comma-separated colour list.
func parseThemeFlag(value string) *model.Theme {
	if !strings.Contains(value, ",") {
		return &model.Theme{Preset: strings.TrimSpace(value)}
	}
	colors := strings.Split(value, ",")
	for i := range colors {
		colors[i] = strings.TrimSpace(colors[i])
	}
	for len(colors) < 5 {
		colors = append(colors, "")
	}
	return &model.Theme{
		BoardColor:      colors[0],
		QuestionColor:   colors[1],
		TextColor:       colors[2],
		AccentColor:     colors[3],
		BackgroundColor: colors[4],
	}
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <board-file>",
		Short: "Check a board file and report what would be repaired",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := board.LoadFile(args[0])
			if err != nil {
				return err
			}
			printWarnings(cmd.ErrOrStderr(), res.Warnings)
			questions := 0
			for _, c := range res.Config.Categories {
				questions += len(c.Questions)
			}
			return printf(cmd, "OK: %d categories, %d questions\n", len(res.Config.Categories), questions)
		},
	}
}

func newThemesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "themes",
		Short: "List the built-in board themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return report.Themes(cmd.OutOrStdout(), board.Presets(), themesColor)
		},
	}
	cmd.Flags().BoolVar(&themesColor, "color", false, "force colour swatches")
	return cmd
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Open the config file in $EDITOR",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := rootConfigPath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	d := game.DefaultSettings()
	return fmt.Sprintf(`# quizboard configuration
# Uncomment a value to enable it. Board files and QUIZBOARD_* variables
# override these defaults.

[game]
# timer-enabled = %t
# timer-seconds = %d
# sound-enabled = %t
# show-answers = %t
# allow-negative-scores = %t

[history]
# capacity = %d            # Undo steps kept per game

[storage]
# backend = %q       # sqlite or redis
# path = %q
# redis-addr = %q
# redis-prefix = %q

[log]
# level = "warn"             # debug, info, warn or error
`,
		d.TimerEnabled,
		d.TimerSeconds,
		d.SoundEnabled,
		d.ShowAnswers,
		d.AllowNegativeScores,
		history.DefaultCapacity,
		config.BackendSQLite,
		config.DefaultDBPath(),
		config.DefaultRedisAddr,
		config.DefaultRedisPrefix,
	)
}
