// Package journal keeps a local record of every wizard submission in an
// embedded JetStream stream.
package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/gosimple/slug"
	"github.com/mark3labs/corewizard/internal/logger"
	"github.com/mark3labs/corewizard/internal/nats"
	"github.com/nats-io/nats-server/v2/server"
	natsgo "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// Entry is one recorded submission.
type Entry struct {
	Seq      uint64         `json:"-"`
	Time     time.Time      `json:"time"`
	Run      string         `json:"run"`
	Endpoint string         `json:"endpoint"`
	Payload  map[string]any `json:"payload,omitempty"`
	OK       bool           `json:"ok"`
	Error    string         `json:"error,omitempty"`
}

// RunID turns a human run name into the id used in subjects.
// An empty name yields a time based id.
func RunID(name string, now time.Time) string {
	id := slug.Make(name)
	if id == "" {
		id = "run-" + now.UTC().Format("20060102-150405")
	}
	return id
}

// Store publishes and replays journal entries.
type Store struct {
	js     jetstream.JetStream
	stream jetstream.Stream

	nc *natsgo.Conn
	ns *server.Server
}

// NewStore creates a store over an existing JetStream context and stream.
func NewStore(js jetstream.JetStream, stream jetstream.Stream) *Store {
	return &Store{js: js, stream: stream}
}

// Open starts an embedded NATS server under dataDir and returns a store
// that owns it. Close releases everything.
func Open(ctx context.Context, dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating journal dir: %w", err)
	}

	// JetStream files live under dataDir
	ns, err := nats.StartEmbeddedNATS(dataDir)
	if err != nil {
		return nil, fmt.Errorf("starting journal server: %w", err)
	}
	nc, err := nats.ConnectInProcess(ns)
	if err != nil {
		_ = nats.Shutdown(nil, ns)
		return nil, fmt.Errorf("connecting to journal server: %w", err)
	}
	js, err := nats.CreateJetStream(nc)
	if err != nil {
		_ = nats.Shutdown(nc, ns)
		return nil, fmt.Errorf("creating jetstream context: %w", err)
	}
	// Idempotent: reopening keeps earlier runs
	stream, err := nats.SetupStream(ctx, js)
	if err != nil {
		_ = nats.Shutdown(nc, ns)
		return nil, fmt.Errorf("setting up journal stream: %w", err)
	}

	s := NewStore(js, stream)
	s.nc = nc
	s.ns = ns
	return s, nil
}

// Close shuts down the embedded server if the store owns one.
func (s *Store) Close() error {
	if s.nc == nil && s.ns == nil {
		return nil
	}
	err := nats.Shutdown(s.nc, s.ns)
	s.nc, s.ns = nil, nil
	return err
}

// Record appends e to the journal.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.Time.IsZero() {
		e.Time = time.Now()
	}

	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encoding journal entry: %w", err)
	}

	// One subject per run and endpoint so history can filter by run
	subject := nats.SubjectForSubmission(e.Run, e.Endpoint)
	ack, err := s.js.Publish(ctx, subject, data)
	if err != nil {
		logger.Error("Failed to publish journal entry to %s: %v", subject, err)
		return fmt.Errorf("publishing journal entry: %w", err)
	}

	logger.Debug("Journal entry recorded: subject=%s seq=%d", subject, ack.Sequence)
	return nil
}

// History returns the entries of run in the order they were recorded.
// An empty run returns every entry.
func (s *Store) History(ctx context.Context, run string) ([]Entry, error) {
	filter := nats.SubjectAll()
	if run != "" {
		filter = nats.SubjectForRun(run)
	}

	consumer, err := nats.ReplayConsumer(ctx, s.stream, filter)
	if err != nil {
		return nil, fmt.Errorf("creating replay consumer: %w", err)
	}

	const batchSize = 500
	var entries []Entry
	for {
		msgs, err := consumer.FetchNoWait(batchSize)
		if err != nil {
			// No more messages or fetch error
			break
		}

		count := 0
		for msg := range msgs.Messages() {
			count++
			var e Entry
			if err := json.Unmarshal(msg.Data(), &e); err != nil {
				logger.Warn("Skipping malformed journal entry on %s: %v", msg.Subject(), err)
				continue
			}
			if meta, err := msg.Metadata(); err == nil {
				e.Seq = meta.Sequence.Stream
			}
			entries = append(entries, e)
		}
		if err := msgs.Error(); err != nil {
			logger.Debug("Journal fetch ended: %v", err)
		}

		if count < batchSize {
			break
		}
	}

	return entries, nil
}
