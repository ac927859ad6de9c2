package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"liftlog/internal/bootstrap"
	workoutdto "liftlog/internal/modules/workout/dto"
	"liftlog/internal/platform/config"
	"liftlog/internal/platform/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootFlags struct {
	dataPath string
	logLevel string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "liftlog",
		Short:         "Three-day strength program logger",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.dataPath, "data", ".", "directory holding the .liftlog state folder")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "override the configured log level")

	root.AddCommand(newTUICmd(flags))
	root.AddCommand(newProgramCmd(flags))
	root.AddCommand(newDayCmd(flags))
	root.AddCommand(newDateCmd(flags))
	root.AddCommand(newViewCmd(flags))
	root.AddCommand(newProfileCmd(flags))
	root.AddCommand(newHistoryCmd(flags))
	root.AddCommand(newReindexCmd(flags))
	root.AddCommand(newVideoCmd(flags))
	root.AddCommand(newResetCmd(flags))
	return root
}

func loadApp(flags *rootFlags) (*bootstrap.App, error) {
	cfg, err := config.New(flags.dataPath)
	if err != nil {
		return nil, err
	}
	level := cfg.LogLevel
	if strings.TrimSpace(flags.logLevel) != "" {
		level = flags.logLevel
	}
	logging.Setup(logging.SetupParams{
		LogFileName: cfg.LogFile,
		LogToStderr: cfg.LogToStderr,
		LogLevel:    level,
	})
	return bootstrap.New(cfg)
}

// withApp loads the app, runs fn and releases the index afterwards.
func withApp(flags *rootFlags, fn func(ctx context.Context, app *bootstrap.App) error) error {
	app, err := loadApp(flags)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close() }()
	return fn(context.Background(), app)
}

func newTUICmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the liftlog terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			return withApp(flags, func(_ context.Context, app *bootstrap.App) error {
				return bootstrap.RunTUI(app)
			})
		},
	}
}

func newProgramCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "program [day]",
		Short: "Print the training program",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				out := cmd.OutOrStdout()
				days, err := app.ProgramCLI.ListDays(ctx)
				if err != nil {
					return err
				}
				if len(args) == 1 {
					day, err := app.ProgramCLI.GetDay(ctx, args[0])
					if err != nil {
						return err
					}
					days = days[:0]
					days = append(days, day)
				}
				for _, day := range days {
					_, _ = fmt.Fprintf(out, "%s  %s\n", day.Key, day.Title)
					if day.Note != "" {
						_, _ = fmt.Fprintf(out, "  %s\n", day.Note)
					}
					for _, ex := range day.Exercises {
						_, _ = fmt.Fprintf(out, "  - %s  %s\n", ex.Name, ex.TargetText)
						if ex.Link != "" {
							_, _ = fmt.Fprintf(out, "    %s\n", ex.Link)
						}
					}
				}
				rules := app.ProgramCLI.Rules(ctx)
				_, _ = fmt.Fprintf(out, "\nprogression: %s\nintensity: %s\n", rules.Progression, rules.Intensity)
				return nil
			})
		},
	}
}

func newDayCmd(flags *rootFlags) *cobra.Command {
	day := &cobra.Command{Use: "day", Short: "Log sets for a training day"}

	day.AddCommand(&cobra.Command{
		Use:   "show <day>",
		Short: "Show logged sets and notes for a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				view, err := app.WorkoutCLI.ShowDay(ctx, args[0])
				if err != nil {
					return err
				}
				printDay(cmd, view)
				return nil
			})
		},
	})

	var weight, reps string
	set := &cobra.Command{
		Use:   "set <day> <exercise> <set#>",
		Short: "Record weight and/or reps for one set",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("set number %q: %w", args[2], err)
			}
			var weightPtr, repsPtr *string
			if cmd.Flags().Changed("weight") {
				weightPtr = &weight
			}
			if cmd.Flags().Changed("reps") {
				repsPtr = &reps
			}
			if weightPtr == nil && repsPtr == nil {
				return fmt.Errorf("--weight or --reps is required")
			}
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				ex, err := app.WorkoutCLI.SetEntry(ctx, args[0], args[1], number, weightPtr, repsPtr)
				if err != nil {
					return err
				}
				printExercise(cmd, ex)
				return nil
			})
		},
	}
	set.Flags().StringVar(&weight, "weight", "", "weight text, e.g. 135")
	set.Flags().StringVar(&reps, "reps", "", "reps text, e.g. 8")
	day.AddCommand(set)

	day.AddCommand(&cobra.Command{
		Use:   "autofill <day> <exercise>",
		Short: "Fill empty sets from the first set",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				ex, err := app.WorkoutCLI.Autofill(ctx, args[0], args[1])
				if err != nil {
					return err
				}
				printExercise(cmd, ex)
				return nil
			})
		},
	})

	day.AddCommand(&cobra.Command{
		Use:   "notes <day> <text>",
		Short: "Replace the notes for a day",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.WorkoutCLI.SetNotes(ctx, args[0], strings.Join(args[1:], " ")); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "notes saved")
				return nil
			})
		},
	})

	day.AddCommand(&cobra.Command{
		Use:   "clear <day>",
		Short: "Clear every set and the notes for a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.WorkoutCLI.ClearDay(ctx, args[0]); err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s cleared\n", args[0])
				return nil
			})
		},
	})
	return day
}

func newDateCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "date [YYYY-MM-DD]",
		Short: "Show or set the selected workout date",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				if len(args) == 0 {
					state, err := app.WorkoutCLI.Overview(ctx)
					if err != nil {
						return err
					}
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), state.SelectedDate)
					return nil
				}
				date, err := app.WorkoutCLI.SetDate(ctx, args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), date)
				return nil
			})
		},
	}
}

func newViewCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "view [day1|day2|day3|profile|history]",
		Short: "Show or set the view the TUI opens on",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				if len(args) == 1 {
					if err := app.WorkoutCLI.SetView(ctx, args[0]); err != nil {
						return err
					}
				}
				state, err := app.WorkoutCLI.Overview(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), state.ActiveView)
				return nil
			})
		},
	}
}

func newProfileCmd(flags *rootFlags) *cobra.Command {
	profile := &cobra.Command{Use: "profile", Short: "Athlete profile"}

	profile.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the athlete profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				p, err := app.WorkoutCLI.Profile(ctx)
				if err != nil {
					return err
				}
				printProfile(cmd, p)
				return nil
			})
		},
	})

	var fields workoutdto.Profile
	set := &cobra.Command{
		Use:   "set",
		Short: "Update profile fields; omitted flags keep their value",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				current, err := app.WorkoutCLI.Profile(ctx)
				if err != nil {
					return err
				}
				changed := cmd.Flags().Changed
				if changed("name") {
					current.Name = fields.Name
				}
				if changed("age") {
					current.Age = fields.Age
				}
				if changed("grade") {
					current.Grade = fields.Grade
				}
				if changed("height") {
					current.Height = fields.Height
				}
				if changed("weight") {
					current.Weight = fields.Weight
				}
				if changed("position") {
					current.Position = fields.Position
				}
				if changed("goals") {
					current.Goals = fields.Goals
				}
				saved, err := app.WorkoutCLI.UpdateProfile(ctx, current)
				if err != nil {
					return err
				}
				printProfile(cmd, saved)
				return nil
			})
		},
	}
	set.Flags().StringVar(&fields.Name, "name", "", "athlete name")
	set.Flags().StringVar(&fields.Age, "age", "", "age")
	set.Flags().StringVar(&fields.Grade, "grade", "", "school grade")
	set.Flags().StringVar(&fields.Height, "height", "", "height")
	set.Flags().StringVar(&fields.Weight, "weight", "", "body weight")
	set.Flags().StringVar(&fields.Position, "position", "", "position")
	set.Flags().StringVar(&fields.Goals, "goals", "", "training goals")
	profile.AddCommand(set)

	profile.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Restore the default profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				p, err := app.WorkoutCLI.ResetProfile(ctx)
				if err != nil {
					return err
				}
				printProfile(cmd, p)
				return nil
			})
		},
	})
	return profile
}

func newHistoryCmd(flags *rootFlags) *cobra.Command {
	history := &cobra.Command{Use: "history", Short: "Saved workout history"}

	history.AddCommand(&cobra.Command{
		Use:   "save <day>",
		Short: "Snapshot a day into history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				entry, err := app.WorkoutCLI.SaveHistory(ctx, args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "saved %s %s %q\n", entry.ID, entry.Date, entry.DayTitle)
				return nil
			})
		},
	})

	var dayKey, from, to string
	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List saved workouts, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				entries, err := app.WorkoutCLI.ListHistory(ctx, dayKey, from, to, limit)
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no saved workouts")
					return nil
				}
				for _, e := range entries {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %-6s %s  athlete=%s sets=%d notes=%t\n",
						e.ID, e.Date, e.DayKey, e.DayTitle, e.Athlete, e.LoggedSets, e.HasNotes)
				}
				return nil
			})
		},
	}
	list.Flags().StringVar(&dayKey, "day", "", "only this day key")
	list.Flags().StringVar(&from, "from", "", "earliest date, inclusive (YYYY-MM-DD)")
	list.Flags().StringVar(&to, "to", "", "latest date, inclusive (YYYY-MM-DD)")
	list.Flags().IntVar(&limit, "limit", 0, "maximum entries (0 = all)")
	history.AddCommand(list)

	history.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Print one saved workout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				e, err := app.WorkoutCLI.ShowHistory(ctx, args[0])
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "id: %s\ndate: %s\nday: %s\nsaved: %s\nathlete: %s\n\n%s",
					e.ID, e.Date, e.DayTitle, e.SavedAt.Format("2006-01-02T15:04:05Z07:00"), e.Profile.Name, e.Details)
				return nil
			})
		},
	})

	history.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one saved workout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				removed, err := app.WorkoutCLI.DeleteHistory(ctx, args[0])
				if err != nil {
					return err
				}
				if !removed {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "no entry %s\n", args[0])
					return nil
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
				return nil
			})
		},
	})

	history.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete every saved workout",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.WorkoutCLI.ClearHistory(ctx); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "history cleared")
				return nil
			})
		},
	})

	history.AddCommand(&cobra.Command{
		Use:   "export <dir>",
		Short: "Write history as markdown notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.WorkoutCLI.ExportHistory(ctx, args[0])
				if err != nil {
					return err
				}
				for _, p := range out.Paths {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), p)
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "exported %d notes to %s\n", len(out.Paths), out.Dir)
				return nil
			})
		},
	})
	return history
}

func newReindexCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the SQLite history index from the state record",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				if err := app.WorkoutCLI.Reindex(ctx); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "reindex completed")
				return nil
			})
		},
	}
}

func newVideoCmd(flags *rootFlags) *cobra.Command {
	var open bool
	video := &cobra.Command{
		Use:   "video <day> <exercise>",
		Short: "Print or open the form video for an exercise",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				out, err := app.WorkoutCLI.Video(ctx, args[0], args[1], open)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", out.Exercise, out.Link)
				if out.Opened {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "opened in browser")
				}
				return nil
			})
		},
	}
	video.Flags().BoolVar(&open, "open", false, "launch the system browser")
	return video
}

func newResetCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Erase all logged data and start over",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(flags, func(ctx context.Context, app *bootstrap.App) error {
				state, err := app.WorkoutCLI.ResetAll(ctx)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "reset complete: date=%s view=%s\n", state.SelectedDate, state.ActiveView)
				return nil
			})
		},
	}
}

func printDay(cmd *cobra.Command, view workoutdto.DayViewOutput) {
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "%s  %s  (%s)\n", view.Key, view.Title, view.Date)
	for _, ex := range view.Exercises {
		printExercise(cmd, ex)
	}
	if strings.TrimSpace(view.Notes) != "" {
		_, _ = fmt.Fprintf(out, "notes: %s\n", view.Notes)
	}
}

func printExercise(cmd *cobra.Command, ex workoutdto.ExerciseLogOutput) {
	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "%s  [%s]\n", ex.Name, ex.TargetText)
	for _, s := range ex.Entries {
		_, _ = fmt.Fprintf(out, "  set %d: weight=%s reps=%s\n", s.Number, dash(s.Weight), dash(s.Reps))
	}
}

func printProfile(cmd *cobra.Command, p workoutdto.Profile) {
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "name: %s\nage: %s\ngrade: %s\nheight: %s\nweight: %s\nposition: %s\ngoals: %s\n",
		p.Name, p.Age, p.Grade, p.Height, p.Weight, p.Position, p.Goals)
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
