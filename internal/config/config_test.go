package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// isolate points the global config at a temp dir and runs the test from
// another temp dir so no real config leaks in.
func isolate(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "config"))
	for _, key := range envKeys {
		t.Setenv("COREWIZARD_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), "")
	}
	return tmpDir
}

func TestGlobalPath(t *testing.T) {
	t.Run("with XDG_CONFIG_HOME set", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/custom/config")
		if got, want := GlobalPath(), "/custom/config/corewizard/corewizard.yml"; got != want {
			t.Errorf("GlobalPath() = %v, want %v", got, want)
		}
	})

	t.Run("without XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		got := GlobalPath()
		if !filepath.IsAbs(got) {
			t.Errorf("GlobalPath() should return absolute path, got %v", got)
		}
		if !strings.HasSuffix(got, filepath.Join(".config", "corewizard", "corewizard.yml")) {
			t.Errorf("GlobalPath() = %v, want suffix .config/corewizard/corewizard.yml", got)
		}
	})
}

func TestExists(t *testing.T) {
	isolate(t)

	if Exists() {
		t.Fatal("Exists() = true, want false when no config files exist")
	}

	if err := os.WriteFile(ProjectPath(), []byte("server_url: http://printer.local\n"), 0644); err != nil {
		t.Fatalf("Failed to write project config: %v", err)
	}
	if !Exists() {
		t.Error("Exists() = false, want true when project config exists")
	}
}

func TestWriteGlobal(t *testing.T) {
	isolate(t)

	cfg := &Config{
		ServerURL: "http://octopi.local",
		APIKey:    "secret",
		Timeout:   5,
		DataDir:   ".test",
		Journal:   true,
		LogLevel:  "debug",
		LogFile:   "/tmp/test.log",
		Webcam: WebcamConfig{
			StreamURL: "/webcam/?action=stream",
		},
	}

	if err := WriteGlobal(cfg); err != nil {
		t.Fatalf("WriteGlobal() error = %v", err)
	}

	info, err := os.Stat(GlobalPath())
	if err != nil {
		t.Fatalf("Config file not created at %s: %v", GlobalPath(), err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("config file mode = %o, want 600", perm)
	}

	data, err := os.ReadFile(GlobalPath())
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}

	content := string(data)
	for _, field := range []string{
		"server_url: http://octopi.local",
		"api_key: secret",
		"timeout: 5",
		"data_dir: .test",
		"journal: true",
		"log_level: debug",
		"stream_url: /webcam/?action=stream",
	} {
		if !strings.Contains(content, field) {
			t.Errorf("Config file missing expected field: %s\nContent:\n%s", field, content)
		}
	}
}

func TestLoad_NoConfig(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ServerURL != DefaultServerURL {
		t.Errorf("default ServerURL = %v, want %v", cfg.ServerURL, DefaultServerURL)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("default Timeout = %v, want %v", cfg.Timeout, DefaultTimeout)
	}
	if cfg.DataDir != DefaultDataDir {
		t.Errorf("default DataDir = %v, want %v", cfg.DataDir, DefaultDataDir)
	}
	if !cfg.Journal {
		t.Error("default Journal = false, want true")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("default LogLevel = %v, want info", cfg.LogLevel)
	}
}

func TestLoad_Precedence(t *testing.T) {
	isolate(t)

	global := &Config{
		ServerURL: "http://global.local",
		APIKey:    "global-key",
		Timeout:   3,
		DataDir:   ".global",
		LogLevel:  "warn",
		Webcam:    WebcamConfig{SnapshotURL: "http://global.local/snap"},
	}
	if err := WriteGlobal(global); err != nil {
		t.Fatalf("WriteGlobal() error = %v", err)
	}

	project := "server_url: http://project.local\nwebcam:\n  ffmpeg_path: /usr/bin/ffmpeg\n"
	if err := os.WriteFile(ProjectPath(), []byte(project), 0644); err != nil {
		t.Fatalf("Failed to write project config: %v", err)
	}

	t.Setenv("COREWIZARD_API_KEY", "env-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.ServerURL != "http://project.local" {
		t.Errorf("ServerURL = %v, want project value", cfg.ServerURL)
	}
	if cfg.APIKey != "env-key" {
		t.Errorf("APIKey = %v, want env value", cfg.APIKey)
	}
	if cfg.Timeout != 3 {
		t.Errorf("Timeout = %v, want global value 3", cfg.Timeout)
	}
	if cfg.Webcam.SnapshotURL != "http://global.local/snap" {
		t.Errorf("Webcam.SnapshotURL = %v, want global value", cfg.Webcam.SnapshotURL)
	}
	if cfg.Webcam.FFmpegPath != "/usr/bin/ffmpeg" {
		t.Errorf("Webcam.FFmpegPath = %v, want project value", cfg.Webcam.FFmpegPath)
	}
}

func TestLoad_NestedEnv(t *testing.T) {
	isolate(t)
	t.Setenv("COREWIZARD_WEBCAM_STREAM_URL", "http://cam.local/stream")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Webcam.StreamURL != "http://cam.local/stream" {
		t.Errorf("Webcam.StreamURL = %q, want env value", cfg.Webcam.StreamURL)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr string
	}{
		{
			name:   "valid config",
			config: &Config{ServerURL: "http://octopi.local", DataDir: ".corewizard", Journal: true},
		},
		{
			name:    "missing server url",
			config:  &Config{DataDir: ".corewizard"},
			wantErr: "server_url is required",
		},
		{
			name:    "unsupported scheme",
			config:  &Config{ServerURL: "ftp://octopi.local"},
			wantErr: "must be http or https",
		},
		{
			name:    "negative timeout",
			config:  &Config{ServerURL: "http://octopi.local", Timeout: -1},
			wantErr: "timeout must not be negative",
		},
		{
			name:    "journal without data dir",
			config:  &Config{ServerURL: "http://octopi.local", Journal: true},
			wantErr: "data_dir is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestRequestTimeout(t *testing.T) {
	if got := (&Config{}).RequestTimeout(); got != DefaultTimeout*time.Second {
		t.Errorf("RequestTimeout() = %v, want default", got)
	}
	if got := (&Config{Timeout: 2}).RequestTimeout(); got != 2*time.Second {
		t.Errorf("RequestTimeout() = %v, want 2s", got)
	}
}
