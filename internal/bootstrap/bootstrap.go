package bootstrap

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	programinadapter "liftlog/internal/modules/program/adapter/in"
	programdomain "liftlog/internal/modules/program/domain"
	programusecase "liftlog/internal/modules/program/usecase"
	workoutinadapter "liftlog/internal/modules/workout/adapter/in"
	workoutoutadapter "liftlog/internal/modules/workout/adapter/out"
	workoutservice "liftlog/internal/modules/workout/service"
	workoutusecase "liftlog/internal/modules/workout/usecase"
	"liftlog/internal/platform/clock"
	"liftlog/internal/platform/config"
	"liftlog/internal/platform/id"
	uiapp "liftlog/internal/ui/app"
)

type App struct {
	ProgramCLI programinadapter.CLIHandler
	WorkoutCLI workoutinadapter.CLIHandler

	index *workoutoutadapter.SQLiteHistoryIndex
}

func New(cfg config.Config) (*App, error) {
	catalog := programdomain.Builtin()
	if err := catalog.Validate(); err != nil {
		return nil, fmt.Errorf("program catalog: %w", err)
	}
	programUC := programusecase.NewInteractor(catalog)

	index, err := workoutoutadapter.NewSQLiteHistoryIndex(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("new history index: %w", err)
	}
	workoutSvc := workoutservice.NewWorkoutService(workoutservice.Options{
		Clock:         clock.SystemClock{},
		IDs:           id.UUID{},
		Store:         workoutoutadapter.NewFileStateStore(cfg.StatePath),
		Catalog:       workoutoutadapter.NewProgramCatalog(programUC),
		Index:         index,
		Exporter:      workoutoutadapter.NewVaultHistoryExporter(),
		Launcher:      workoutoutadapter.NewOSVideoLauncher(),
		CorruptPolicy: cfg.CorruptPolicy,
	})
	workoutUC := workoutusecase.NewInteractor(workoutSvc)

	logrus.WithFields(logrus.Fields{"state": cfg.StatePath, "db": cfg.DBPath}).Debug("liftlog wired")

	return &App{
		ProgramCLI: programinadapter.NewCLIHandler(programUC),
		WorkoutCLI: workoutinadapter.NewCLIHandler(workoutUC),
		index:      index,
	}, nil
}

// Close releases the history index database.
func (a *App) Close() error {
	if a.index == nil {
		return nil
	}
	return a.index.Close()
}

func RunTUI(app *App) error {
	model := uiapp.NewModel(app.ProgramCLI, app.WorkoutCLI)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}
