package steps

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/mark3labs/corewizard/internal/logger"
	"github.com/mark3labs/corewizard/internal/wizard"
)

// ProfileStep edits the default printer profile.
type ProfileStep struct {
	service ProfileService
	editor  ProfileEditor
	notify  func()

	loaded atomic.Bool
}

// NewProfileStep creates the printer profile step around an editor owned
// by the caller.
func NewProfileStep(service ProfileService, editor ProfileEditor, opts ...Option) *ProfileStep {
	o := buildOptions(opts)
	return &ProfileStep{
		service: service,
		editor:  editor,
		notify:  o.notify,
	}
}

// Key implements wizard.Step.
func (s *ProfileStep) Key() string { return KeyPrinterProfile }

// Editor returns the profile editor.
func (s *ProfileStep) Editor() ProfileEditor { return s.editor }

// Loaded reports whether the default profile has been loaded into the
// editor. Hosts use it to decide when to render the editor.
func (s *ProfileStep) Loaded() bool { return s.loaded.Load() }

// OnEnter implements wizard.Enterer.
func (s *ProfileStep) OnEnter(ctx context.Context, tasks wizard.Tasks) {
	tasks.Go("printer profile load", func(ctx context.Context) error {
		data, err := s.service.FetchDefault(ctx)
		if err != nil {
			return err
		}
		s.editor.FromProfileData(data)
		s.loaded.Store(true)
		logger.Debug("Default printer profile loaded: %s", data.Name())
		s.notify()
		return nil
	})
}

// OnFinish implements wizard.Finisher. The editor content becomes the new
// default profile; the step never asks for a reload.
func (s *ProfileStep) OnFinish(ctx context.Context, tasks wizard.Tasks) wizard.Outcome {
	data := s.editor.ToProfileData()

	tasks.Go("printer profile update", func(ctx context.Context) error {
		if err := s.service.UpdateDefault(ctx, data); err != nil {
			return err
		}
		if err := s.service.RefreshCache(ctx); err != nil {
			return fmt.Errorf("refreshing profiles after update: %w", err)
		}
		return nil
	})

	return wizard.OutcomeNone
}
