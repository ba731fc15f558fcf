package steps

import (
	"fmt"
	"strings"
)

// ServerCommands are the system commands configured on the server.
type ServerCommands struct {
	SystemShutdown string `json:"systemShutdownCommand"`
	SystemRestart  string `json:"systemRestartCommand"`
	ServerRestart  string `json:"serverRestartCommand"`
}

// ServerCommandsStep shows the configured server commands. It has no
// validation and nothing to do on finish.
type ServerCommandsStep struct {
	commands ServerCommands
}

// NewServerCommandsStep creates the server commands step.
func NewServerCommandsStep(commands ServerCommands) *ServerCommandsStep {
	return &ServerCommandsStep{commands: commands}
}

// Key implements wizard.Step.
func (s *ServerCommandsStep) Key() string { return KeyServerCommands }

// Commands returns the commands shown by the step.
func (s *ServerCommandsStep) Commands() ServerCommands { return s.commands }

// Markdown renders the commands for display.
func (s *ServerCommandsStep) Markdown() string {
	var b strings.Builder
	b.WriteString("# Server commands\n\n")
	b.WriteString("These commands are run when you restart or shut down from the web interface.\n\n")

	rows := []struct{ label, cmd string }{
		{"Restart server", s.commands.ServerRestart},
		{"Restart system", s.commands.SystemRestart},
		{"Shutdown system", s.commands.SystemShutdown},
	}
	for _, r := range rows {
		if r.cmd == "" {
			fmt.Fprintf(&b, "- **%s**: _not configured_\n", r.label)
			continue
		}
		fmt.Fprintf(&b, "- **%s**: `%s`\n", r.label, r.cmd)
	}
	return b.String()
}
