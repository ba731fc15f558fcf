package nats

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"
)

const (
	// StreamName is the JetStream stream holding wizard submissions.
	StreamName = "corewizard_submissions"

	subjectRoot = "corewizard"
	retention   = 90 * 24 * time.Hour
)

// SubjectAll matches every submission of every run.
func SubjectAll() string {
	return subjectRoot + ".>"
}

// SubjectForRun returns the wildcard subject for all submissions of a run.
// Example: "corewizard.first-setup.>"
func SubjectForRun(run string) string {
	return fmt.Sprintf("%s.%s.>", subjectRoot, run)
}

// SubjectForSubmission returns the subject one submission is published on.
// Example: "corewizard.first-setup.acl"
func SubjectForSubmission(run, endpoint string) string {
	return fmt.Sprintf("%s.%s.%s", subjectRoot, run, endpoint)
}

// SetupStream creates or updates the submissions stream.
func SetupStream(ctx context.Context, js jetstream.JetStream) (jetstream.Stream, error) {
	return js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:      StreamName,
		Subjects:  []string{SubjectAll()},
		Storage:   jetstream.FileStorage,   // survives restarts
		MaxAge:    retention,               // old runs age out
		Retention: jetstream.LimitsPolicy, // replayable, never consumed away
	})
}

// ReplayConsumer returns an ordered consumer that delivers every stored
// message matching filter from the start of the stream.
func ReplayConsumer(ctx context.Context, stream jetstream.Stream, filter string) (jetstream.Consumer, error) {
	return stream.OrderedConsumer(ctx, jetstream.OrderedConsumerConfig{
		FilterSubjects: []string{filter},
		DeliverPolicy:  jetstream.DeliverAllPolicy,
	})
}
