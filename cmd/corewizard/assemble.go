package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/corewizard/internal/config"
	"github.com/mark3labs/corewizard/internal/journal"
	"github.com/mark3labs/corewizard/internal/logger"
	"github.com/mark3labs/corewizard/internal/octoprint"
	"github.com/mark3labs/corewizard/internal/profile"
	"github.com/mark3labs/corewizard/internal/steps"
	tuiwizard "github.com/mark3labs/corewizard/internal/tui/wizard"
	"github.com/mark3labs/corewizard/internal/wizard"
)

var globalFlags struct {
	server    string
	apiKey    string
	dataDir   string
	noJournal bool
}

// loadConfig loads the config, applies the global flags and configures the
// logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if globalFlags.server != "" {
		cfg.ServerURL = globalFlags.server
	}
	if globalFlags.apiKey != "" {
		cfg.APIKey = globalFlags.apiKey
	}
	if globalFlags.dataDir != "" {
		cfg.DataDir = globalFlags.dataDir
	}
	if globalFlags.noJournal {
		cfg.Journal = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := logger.Configure(cfg.LogLevel, cfg.LogFile); err != nil {
		return nil, fmt.Errorf("configuring logger: %w", err)
	}
	return cfg, nil
}

// app is one assembled wizard: server client, optional journal, the five
// steps and the controller driving them.
type app struct {
	cfg        *config.Config
	client     *octoprint.Client
	journal    *journal.Store
	profiles   *profile.Service
	run        string
	steps      tuiwizard.Steps
	registry   *wizard.Registry
	controller *wizard.Controller
}

// assemble builds the wizard for one run. dialog receives validation
// messages of blocked tab changes; notify, when set, is called after every
// step state change.
func assemble(ctx context.Context, cfg *config.Config, runName string, dialog wizard.Dialog, notify func()) (*app, error) {
	client, err := octoprint.New(cfg.ServerURL, cfg.APIKey, cfg.RequestTimeout())
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:    cfg,
		client: client,
		run:    journal.RunID(runName, time.Now()),
	}

	var gateway steps.Gateway = client
	if cfg.Journal {
		store, err := journal.Open(ctx, cfg.DataDir)
		if err != nil {
			return nil, err
		}
		a.journal = store
		gateway = journal.NewGateway(client, store, a.run)
		logger.Info("Journaling run %s to %s", a.run, cfg.DataDir)
	}

	settings, err := client.Settings(ctx)
	if err != nil {
		logger.Warn("Could not fetch server settings, continuing with local values: %v", err)
		settings = &octoprint.Settings{}
	}

	camera := steps.OverlayCamera(settings.Webcam, steps.CameraConfig{
		Stream:   cfg.Webcam.StreamURL,
		Snapshot: cfg.Webcam.SnapshotURL,
		FFmpeg:   cfg.Webcam.FFmpegPath,
	})
	editor := profile.NewEditor()
	a.profiles = profile.NewService(client)
	opt := steps.WithNotify(notify)

	a.steps = tuiwizard.Steps{
		ACL:      steps.NewAclStep(gateway, client, opt),
		SSH:      steps.NewShellAccessStep(gateway, opt),
		Camera:   steps.NewCameraStep(camera),
		Commands: steps.NewServerCommandsStep(steps.ServerCommands(settings.Server.Commands)),
		Profile:  steps.NewProfileStep(a.profiles, editor, opt),
		Editor:   editor,
	}

	a.registry, err = wizard.NewRegistry(
		a.steps.ACL,
		a.steps.SSH,
		a.steps.Camera,
		a.steps.Commands,
		a.steps.Profile,
	)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.controller = wizard.NewController(a.registry, dialog)
	return a, nil
}

// Close releases the journal.
func (a *app) Close() {
	if a.journal == nil {
		return
	}
	if err := a.journal.Close(); err != nil {
		logger.Warn("Closing journal: %v", err)
	}
}

// settle waits for the submissions of a finished wizard. The wait is
// bounded by a few request timeouts so a dead server cannot hang the CLI.
func (a *app) settle(ctx context.Context, pending *wizard.Pending) error {
	ctx, cancel := context.WithTimeout(ctx, 3*a.cfg.RequestTimeout())
	defer cancel()
	return pending.WaitContext(ctx)
}

// describeProfiles lists the server's profiles as refreshed after the
// default profile was updated.
func describeProfiles(list []profile.Data) string {
	if len(list) == 0 {
		return ""
	}
	names := make([]string, 0, len(list))
	for _, d := range list {
		name := d.Name()
		if name == "" {
			name = d.ID()
		}
		names = append(names, fmt.Sprintf("%s (%s)", name, d.ID()))
	}
	return "Printer profiles: " + strings.Join(names, ", ")
}

// describe turns the aggregated decision into a user message.
func describe(outcome wizard.Outcome) string {
	if outcome == wizard.OutcomeReload {
		return "Setup applied. Reload the web interface to pick up the new settings."
	}
	return "Setup applied. No reload needed."
}
