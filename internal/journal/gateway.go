package journal

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/mark3labs/corewizard/internal/logger"
	"github.com/mark3labs/corewizard/internal/steps"
)

const redacted = "***"

// Recorder stores journal entries.
type Recorder interface {
	Record(ctx context.Context, e Entry) error
}

// Gateway records every submission passing through it.
// Recording failures are logged and never change the submission result.
type Gateway struct {
	next     steps.Gateway
	recorder Recorder
	run      string
}

// NewGateway wraps next, recording under run.
func NewGateway(next steps.Gateway, recorder Recorder, run string) *Gateway {
	return &Gateway{next: next, recorder: recorder, run: run}
}

// Run returns the run id entries are recorded under.
func (g *Gateway) Run() string {
	return g.run
}

// Submit implements steps.Gateway.
func (g *Gateway) Submit(ctx context.Context, endpoint string, payload any) error {
	err := g.next.Submit(ctx, endpoint, payload)

	entry := Entry{
		Run:      g.run,
		Endpoint: endpoint,
		Payload:  Redact(payload),
		OK:       err == nil,
	}
	if err != nil {
		entry.Error = err.Error()
	}
	if rerr := g.recorder.Record(ctx, entry); rerr != nil {
		logger.Warn("Could not journal %s submission: %v", endpoint, rerr)
	}

	return err
}

// Redact returns payload as a generic map with every value whose key
// contains "pass" replaced. Payloads that are not JSON objects yield nil.
func Redact(payload any) map[string]any {
	if payload == nil {
		return nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	redactMap(out)
	return out
}

func redactMap(m map[string]any) {
	for k, v := range m {
		if strings.Contains(strings.ToLower(k), "pass") {
			m[k] = redacted
			continue
		}
		switch vv := v.(type) {
		case map[string]any:
			redactMap(vv)
		case []any:
			for _, item := range vv {
				if im, ok := item.(map[string]any); ok {
					redactMap(im)
				}
			}
		}
	}
}
