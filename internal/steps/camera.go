package steps

import (
	"context"

	"github.com/mark3labs/corewizard/internal/wizard"
)

// CameraConfig is a fixed set of camera settings.
type CameraConfig struct {
	Stream   string `yaml:"stream_url"`
	Snapshot string `yaml:"snapshot_url"`
	FFmpeg   string `yaml:"ffmpeg_path"`
}

func (c CameraConfig) StreamURL() string { return c.Stream }
func (c CameraConfig) SnapshotURL() string { return c.Snapshot }
func (c CameraConfig) FFmpegPath() string { return c.FFmpeg }

// OverlayCamera returns base with every non-empty field of override applied.
func OverlayCamera(base CameraSettings, override CameraConfig) CameraConfig {
	out := CameraConfig{}
	if base != nil {
		out = CameraConfig{
			Stream:   base.StreamURL(),
			Snapshot: base.SnapshotURL(),
			FFmpeg:   base.FFmpegPath(),
		}
	}
	if override.Stream != "" {
		out.Stream = override.Stream
	}
	if override.Snapshot != "" {
		out.Snapshot = override.Snapshot
	}
	if override.FFmpeg != "" {
		out.FFmpeg = override.FFmpeg
	}
	return out
}

// CameraStep asks for a reload when the camera is usable, so the host
// picks up the new webcam settings. The settings are edited elsewhere; this
// step only reads them.
type CameraStep struct {
	settings CameraSettings
}

// NewCameraStep creates the camera step. A nil settings source never
// requests a reload.
func NewCameraStep(settings CameraSettings) *CameraStep {
	return &CameraStep{settings: settings}
}

// Key implements wizard.Step.
func (s *CameraStep) Key() string { return KeyWebcam }

// Settings returns the settings source.
func (s *CameraStep) Settings() CameraSettings { return s.settings }

// Intent returns the outcome finishing would report right now: reload when
// a stream URL is set, or when both a snapshot URL and ffmpeg are set.
func (s *CameraStep) Intent() wizard.Outcome {
	if s.settings == nil {
		return wizard.OutcomeNone
	}
	if s.settings.StreamURL() != "" {
		return wizard.OutcomeReload
	}
	if s.settings.SnapshotURL() != "" && s.settings.FFmpegPath() != "" {
		return wizard.OutcomeReload
	}
	return wizard.OutcomeNone
}

// OnFinish implements wizard.Finisher.
func (s *CameraStep) OnFinish(ctx context.Context, tasks wizard.Tasks) wizard.Outcome {
	return s.Intent()
}
