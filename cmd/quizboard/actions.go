package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/quizboard/internal/errors"
	"github.com/verte-zerg/quizboard/internal/game"
	"github.com/verte-zerg/quizboard/internal/history"
	"github.com/verte-zerg/quizboard/internal/model"
	"github.com/verte-zerg/quizboard/internal/play"
)

var (
	answerTeam    string
	answerCorrect bool
	answerWrong   bool
	answerWager   int

	adjustTeam   string
	adjustPoints int
)

func newAnswerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "answer <game-id> <category> <question>",
		Short: "Score a question for a team (1-based positions)",
		Args:  cobra.ExactArgs(3),
		RunE:  runAnswerCmd,
	}
	cmd.Flags().StringVar(&answerTeam, "team", "", "team id, name or position")
	cmd.Flags().BoolVar(&answerCorrect, "correct", false, "the answer was correct")
	cmd.Flags().BoolVar(&answerWrong, "wrong", false, "the answer was wrong")
	cmd.Flags().IntVar(&answerWager, "wager", 0, "wager for the wager question")
	cmd.MarkFlagsMutuallyExclusive("correct", "wrong")
	cmd.MarkFlagsOneRequired("correct", "wrong")
	_ = cmd.MarkFlagRequired("team")
	return cmd
}

func runAnswerCmd(cmd *cobra.Command, args []string) error {
	c, q, err := parsePosition(args[1], args[2])
	if err != nil {
		return err
	}
	return withGame(cmd, args, func(ctx context.Context, a *app, s *model.Session) error {
		team, err := play.ResolveTeam(s, answerTeam)
		if err != nil {
			return err
		}
		view, ok := game.GetQuestion(s, c, q)
		if ok && view.WagerSpecial != cmd.Flags().Changed("wager") {
			if view.WagerSpecial {
				return errors.New(errors.CodeValidation, errors.WithMessagef(
					"this is the wager question; pass --wager between %d and %d", game.MinWager, game.MaxWager(s, team.ID)))
			}
			return errors.New(errors.CodeValidation, errors.WithMessagef("--wager only applies to the wager question"))
		}
		if ok && view.WagerSpecial {
			err = a.ctl.AnswerWagerSpecial(ctx, s, team.ID, c, q, answerWager, answerCorrect)
		} else {
			err = a.ctl.Answer(ctx, s, team.ID, c, q, answerCorrect)
		}
		if err != nil {
			return err
		}
		return printLast(cmd, s)
	})
}

func newResetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset <game-id> <category> <question>",
		Short: "Put an answered question back on the board",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, q, err := parsePosition(args[1], args[2])
			if err != nil {
				return err
			}
			return withGame(cmd, args, func(ctx context.Context, a *app, s *model.Session) error {
				if err := a.ctl.ResetQuestion(ctx, s, c, q); err != nil {
					return err
				}
				return printLast(cmd, s)
			})
		},
	}
}

func newTeamCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Add, remove or rename teams",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "add <game-id> <name>",
		Short: "Add a team",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGame(cmd, args, func(ctx context.Context, a *app, s *model.Session) error {
				if _, err := a.ctl.AddTeam(ctx, s, args[1]); err != nil {
					return err
				}
				return printLast(cmd, s)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "remove <game-id> <team>",
		Short: "Remove a team",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGame(cmd, args, func(ctx context.Context, a *app, s *model.Session) error {
				team, err := play.ResolveTeam(s, args[1])
				if err != nil {
					return err
				}
				if err := a.ctl.RemoveTeam(ctx, s, team.ID); err != nil {
					return err
				}
				return printLast(cmd, s)
			})
		},
	})
	cmd.AddCommand(newTeamUpdateCmd())
	return cmd
}

func newTeamUpdateCmd() *cobra.Command {
	var name, color string
	cmd := &cobra.Command{
		Use:   "update <game-id> <team>",
		Short: "Rename or recolour a team",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var u model.TeamUpdate
			if cmd.Flags().Changed("name") {
				u.Name = &name
			}
			if cmd.Flags().Changed("color") {
				u.Color = &color
			}
			if u.Name == nil && u.Color == nil {
				return fmt.Errorf("nothing to update; pass --name or --color")
			}
			return withGame(cmd, args, func(ctx context.Context, a *app, s *model.Session) error {
				team, err := play.ResolveTeam(s, args[1])
				if err != nil {
					return err
				}
				if err := a.ctl.UpdateTeam(ctx, s, team.ID, u); err != nil {
					return err
				}
				return printLast(cmd, s)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new team name")
	cmd.Flags().StringVar(&color, "color", "", "new team colour (#RRGGBB)")
	return cmd
}

func newAdjustCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "adjust <game-id>",
		Short: "Correct a team's score by hand",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGame(cmd, args, func(ctx context.Context, a *app, s *model.Session) error {
				team, err := play.ResolveTeam(s, adjustTeam)
				if err != nil {
					return err
				}
				if err := a.ctl.AdjustScore(ctx, s, team.ID, adjustPoints); err != nil {
					return err
				}
				return printLast(cmd, s)
			})
		},
	}
	cmd.Flags().StringVar(&adjustTeam, "team", "", "team id, name or position")
	cmd.Flags().IntVar(&adjustPoints, "points", 0, "points to add (negative to subtract)")
	_ = cmd.MarkFlagRequired("team")
	_ = cmd.MarkFlagRequired("points")
	return cmd
}

func newFinalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "final",
		Short: "Run the final round",
	}

	var wagerTeam string
	var wagerAmount int
	wager := &cobra.Command{
		Use:   "wager <game-id>",
		Short: "Record a team's final wager",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGame(cmd, args, func(ctx context.Context, a *app, s *model.Session) error {
				team, err := play.ResolveTeam(s, wagerTeam)
				if err != nil {
					return err
				}
				if err := a.ctl.SetFinalWager(ctx, s, team.ID, wagerAmount); err != nil {
					return err
				}
				return printLast(cmd, s)
			})
		},
	}
	wager.Flags().StringVar(&wagerTeam, "team", "", "team id, name or position")
	wager.Flags().IntVar(&wagerAmount, "amount", 0, "wager, from 0 to the team's score")
	_ = wager.MarkFlagRequired("team")
	_ = wager.MarkFlagRequired("amount")

	var judgeTeam string
	var judgeCorrect, judgeWrong bool
	judge := &cobra.Command{
		Use:   "judge <game-id>",
		Short: "Judge a team's final answer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGame(cmd, args, func(ctx context.Context, a *app, s *model.Session) error {
				team, err := play.ResolveTeam(s, judgeTeam)
				if err != nil {
					return err
				}
				if err := a.ctl.JudgeFinal(ctx, s, team.ID, judgeCorrect); err != nil {
					return err
				}
				return printLast(cmd, s)
			})
		},
	}
	judge.Flags().StringVar(&judgeTeam, "team", "", "team id, name or position")
	judge.Flags().BoolVar(&judgeCorrect, "correct", false, "the answer was correct")
	judge.Flags().BoolVar(&judgeWrong, "wrong", false, "the answer was wrong")
	judge.MarkFlagsMutuallyExclusive("correct", "wrong")
	judge.MarkFlagsOneRequired("correct", "wrong")
	_ = judge.MarkFlagRequired("team")

	complete := &cobra.Command{
		Use:   "complete <game-id>",
		Short: "Close the final round and the game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withGame(cmd, args, func(ctx context.Context, a *app, s *model.Session) error {
				if !game.AllFinalAnswersJudged(s) {
					a.log.Warn("completing final round with unjudged answers", "game_id", s.ID)
				}
				if err := a.ctl.CompleteFinal(ctx, s); err != nil {
					return err
				}
				return printLast(cmd, s)
			})
		},
	}

	cmd.AddCommand(wager, judge, complete)
	return cmd
}

// parsePosition turns 1-based CLI positions into board indices.
func parsePosition(category, question string) (int, int, error) {
	c, err := strconv.Atoi(category)
	if err != nil || c < 1 {
		return 0, 0, fmt.Errorf("category must be a positive number, got %q", category)
	}
	q, err := strconv.Atoi(question)
	if err != nil || q < 1 {
		return 0, 0, fmt.Errorf("question must be a positive number, got %q", question)
	}
	return c - 1, q - 1, nil
}

func printLast(cmd *cobra.Command, s *model.Session) error {
	if s.HistoryIndex < 0 {
		return nil
	}
	return printf(cmd, "%s\n", history.Describe(s.History[s.HistoryIndex].Action))
}
