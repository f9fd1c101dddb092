package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"runtime"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/davecgh/go-spew/spew"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/ayoisaiah/ontask/internal/config"
	"github.com/ayoisaiah/ontask/internal/models"
	"github.com/ayoisaiah/ontask/internal/pathutil"
	"github.com/ayoisaiah/ontask/internal/session"
	"github.com/ayoisaiah/ontask/internal/static"
	"github.com/ayoisaiah/ontask/internal/ui"
	"github.com/ayoisaiah/ontask/internal/wakelock"
	"github.com/ayoisaiah/ontask/report"
	"github.com/ayoisaiah/ontask/stats"
	"github.com/ayoisaiah/ontask/store"
	"github.com/ayoisaiah/ontask/timer"
)

const (
	envNoColor       = "NO_COLOR"
	envOnTaskNoColor = "ONTASK_NO_COLOR"
)

// logFile is the open log file, closed once the command returns.
var logFile io.Closer

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// loadConfig reads the configuration and starts logging to the log file.
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	cfg, err := config.New(
		config.WithPromptConfig(pathutil.ConfigFilePath()),
		config.WithViperConfig(pathutil.ConfigFilePath()),
		config.WithCLIConfig(ctx),
	)
	if err != nil {
		return nil, err
	}

	ui.DarkTheme = cfg.Display.DarkTheme

	if logFile == nil {
		logFile, err = setupLogger(cfg.Log, pathutil.LogFilePath())
		if err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// dbHelper loads the config and opens the database.
func dbHelper(ctx *cli.Context) (*config.Config, store.DB, error) {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return nil, nil, err
	}

	db, err := store.NewClient(pathutil.DBFilePath())
	if err != nil {
		return nil, nil, err
	}

	return cfg, db, nil
}

func filterFrom(cfg *config.Config) store.Filter {
	return store.Filter{
		Since:   cfg.CLI.Since,
		Until:   cfg.CLI.Until,
		Student: cfg.CLI.Student,
	}
}

func tableOptsFrom(cfg *config.Config) tableOpts {
	return tableOpts{
		layout:    dateLayout(cfg.Display.TwentyFourHour),
		tolerance: cfg.Settings.DriftTolerance,
	}
}

// observationsHelper returns the observations selected by the filter flags.
func observationsHelper(
	ctx *cli.Context,
) (*config.Config, []*models.Observation, store.DB, error) {
	cfg, db, err := dbHelper(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	observations, err := db.ListObservations(filterFrom(cfg))
	if err != nil {
		_ = db.Close()
		return nil, nil, nil, err
	}

	return cfg, observations, db, nil
}

// observationHelper returns the observation named by the first argument.
func observationHelper(
	ctx *cli.Context,
) (*config.Config, *models.Observation, store.DB, error) {
	id := ctx.Args().First()
	if id == "" {
		return nil, nil, nil, errMissingID
	}

	cfg, db, err := dbHelper(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	obs, err := db.GetObservation(id)
	if err != nil {
		_ = db.Close()
		return nil, nil, nil, err
	}

	return cfg, obs, db, nil
}

// listAction handles the list command and prints a table of the observations
// that match the filters.
func listAction(ctx *cli.Context) error {
	cfg, observations, db, err := observationsHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	if cfg.CLI.JSON {
		return printJSON(config.Stdout, observations)
	}

	listObservations(config.Stdout, observations, tableOptsFrom(cfg))

	return nil
}

// showAction handles the show command.
func showAction(ctx *cli.Context) error {
	cfg, obs, db, err := observationHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	if cfg.CLI.JSON {
		return printJSON(config.Stdout, obs)
	}

	showObservation(config.Stdout, obs, tableOptsFrom(cfg))

	return nil
}

func stringFlag(ctx *cli.Context, name string) *string {
	if !ctx.IsSet(name) {
		return nil
	}

	s := ctx.String(name)

	return &s
}

func sliceFlag(ctx *cli.Context, name string) *[]string {
	if !ctx.IsSet(name) {
		return nil
	}

	s := ctx.StringSlice(name)

	return &s
}

// editAction handles the edit command which changes the details of a saved
// observation.
func editAction(ctx *cli.Context) error {
	cfg, obs, db, err := observationHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	e := observationEdit{
		Behavior: stringFlag(ctx, behaviorFlag.Name),
		Notes:    stringFlag(ctx, notesFlag.Name),
		Observer: stringFlag(ctx, observerFlag.Name),
		Student:  stringFlag(ctx, studentFlag.Name),
		Who:      sliceFlag(ctx, whoFlag.Name),
		What:     stringFlag(ctx, whatFlag.Name),
		When:     stringFlag(ctx, whenFlag.Name),
		Where:    stringFlag(ctx, whereFlag.Name),
		Why:      stringFlag(ctx, whyFlag.Name),
		Prompts:  sliceFlag(ctx, promptFlag.Name),
		Now:      time.Now(),
	}

	updated, err := editObservation(
		config.Stdout,
		config.Stdin,
		db,
		obs,
		e,
		tableOptsFrom(cfg),
	)
	if err != nil {
		return err
	}

	report.Updated(updated)

	return nil
}

// deleteAction handles the delete command which deletes one or more
// observations, named by id or selected by the filter flags.
func deleteAction(ctx *cli.Context) error {
	cfg, db, err := dbHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	var observations []*models.Observation

	if ctx.Args().Present() {
		for _, id := range ctx.Args().Slice() {
			obs, err := db.GetObservation(id)
			if err != nil {
				return err
			}

			observations = append(observations, obs)
		}
	} else {
		f := filterFrom(cfg)
		if f == (store.Filter{}) {
			return errMissingID
		}

		observations, err = db.ListObservations(f)
		if err != nil {
			return err
		}
	}

	if len(observations) == 0 {
		pterm.Info.Println(noObservationsMsg)
		return nil
	}

	err = delObservations(
		config.Stdout,
		config.Stdin,
		db,
		observations,
		tableOptsFrom(cfg),
	)
	if err != nil {
		return err
	}

	report.Deleted(len(observations))

	return nil
}

// reportAction prints the per-student summary of the matching observations.
func reportAction(ctx *cli.Context) error {
	cfg, observations, db, err := observationsHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	if cfg.CLI.JSON {
		return printJSON(
			config.Stdout,
			newSummaryReport(observations, cfg.Settings.DriftTolerance),
		)
	}

	return printSummary(
		config.Stdout,
		observations,
		cfg.Settings.DriftTolerance,
	)
}

// editConfigAction handles the edit-config command which opens the ontask
// config file in the user's default text editor.
func editConfigAction(_ *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == "windows" {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	cmd := exec.Command(editor, pathutil.ConfigFilePath())

	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout

	return cmd.Run()
}

// debugHook dumps the full session state on every transition. It only
// produces output when the log level is debug.
func debugHook(m **session.Machine) session.Hook {
	return func(tr session.Transition) {
		if !slog.Default().Enabled(context.Background(), slog.LevelDebug) || *m == nil {
			return
		}

		slog.Debug(
			"session snapshot",
			slog.String("event", string(tr.Event)),
			slog.String("state", spew.Sdump((*m).Snapshot())),
		)
	}
}

// newMachine wires a session machine to the store and the wake lock.
func newMachine(cfg *config.Config, db store.DB) (*session.Machine, error) {
	lock, err := wakelock.New(cfg.Settings.WakeLockCmd)
	if err != nil {
		return nil, err
	}

	var m *session.Machine

	m = session.New(
		session.WithSink(store.NewSink(db, cfg.Settings.RecentStudents)),
		session.WithWakeLock(lock),
		session.WithHook(session.LogHook(slog.Default())),
		session.WithHook(debugHook(&m)),
	)

	return m, nil
}

// defaultAction asks for the observation details and runs the session timer
// until the observation is saved or abandoned.
func defaultAction(ctx *cli.Context) error {
	cfg, db, err := dbHelper(ctx)
	if err != nil {
		return err
	}

	defer db.Close()

	recent, err := db.RecentStudents()
	if err != nil {
		slog.WarnContext(
			ctx.Context,
			"unable to read recent students",
			slog.Any("error", err),
		)
	}

	params, err := runStartForm(cfg, recent)
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			report.Abandoned()
			return nil
		}

		return err
	}

	m, err := newMachine(cfg, db)
	if err != nil {
		return err
	}

	// Cancel is a no-op once the observation is saved.
	defer func() {
		_ = m.Cancel()
	}()

	if err := m.Start(params); err != nil {
		return err
	}

	t := timer.New(ctx.Context, m, timer.Options{
		DriftTolerance: cfg.Settings.DriftTolerance,
		DarkTheme:      cfg.Display.DarkTheme,
		TwentyFourHour: cfg.Display.TwentyFourHour,
	})

	if _, err := tea.NewProgram(t).Run(); err != nil {
		return err
	}

	obs := t.Saved()
	if obs == nil {
		report.Abandoned()
		return nil
	}

	report.ObservationSaved(obs)

	if cfg.Settings.Notify {
		notify(obs, stats.Compute(obs.Record(), cfg.Settings.DriftTolerance))
	}

	return nil
}

func beforeAction(ctx *cli.Context) error {
	if err := pathutil.Initialize(); err != nil {
		return err
	}

	// Override the default help template
	cli.AppHelpTemplate = helpText()

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	// Disable colour output if NO_COLOR is set
	if _, exists := os.LookupEnv(envNoColor); exists {
		disableStyling()
	}

	// Disable colour output if ONTASK_NO_COLOR is set
	if _, exists := os.LookupEnv(envOnTaskNoColor); exists {
		disableStyling()
	}

	if ctx.Bool("no-color") {
		disableStyling()
	}

	if err := static.Install(pathutil.Dir()); err != nil {
		return fmt.Errorf("installing static files: %w", err)
	}

	return nil
}

func afterAction(ctx *cli.Context) error {
	slog.InfoContext(ctx.Context, "exiting ontask")

	if logFile != nil {
		err := logFile.Close()
		logFile = nil

		return err
	}

	return nil
}
