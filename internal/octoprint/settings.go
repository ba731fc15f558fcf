package octoprint

// Settings is the subset of /api/settings the wizard reads.
type Settings struct {
	Webcam WebcamSettings `json:"webcam"`
	Server ServerSettings `json:"server"`
}

// WebcamSettings is the server's camera configuration.
type WebcamSettings struct {
	Stream   string `json:"streamUrl"`
	Snapshot string `json:"snapshotUrl"`
	FFmpeg   string `json:"ffmpegPath"`
}

func (w WebcamSettings) StreamURL() string { return w.Stream }
func (w WebcamSettings) SnapshotURL() string { return w.Snapshot }
func (w WebcamSettings) FFmpegPath() string { return w.FFmpeg }

// ServerSettings holds the server section of the settings.
type ServerSettings struct {
	Commands ServerCommands `json:"commands"`
}

// ServerCommands are the configured system commands.
type ServerCommands struct {
	SystemShutdown string `json:"systemShutdownCommand"`
	SystemRestart  string `json:"systemRestartCommand"`
	ServerRestart  string `json:"serverRestartCommand"`
}
