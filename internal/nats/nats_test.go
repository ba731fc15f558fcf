package nats

import (
	"context"
	"testing"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/require"
)

func TestSubjects(t *testing.T) {
	t.Parallel()

	require.Equal(t, "corewizard.>", SubjectAll())
	require.Equal(t, "corewizard.first-setup.>", SubjectForRun("first-setup"))
	require.Equal(t, "corewizard.first-setup.acl", SubjectForSubmission("first-setup", "acl"))
}

func TestEmbeddedStream(t *testing.T) {
	t.Parallel()

	ns, err := StartEmbeddedNATS(t.TempDir())
	require.NoError(t, err)
	nc, err := ConnectInProcess(ns)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Shutdown(nc, ns) })

	js, err := CreateJetStream(nc)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stream, err := SetupStream(ctx, js)
	require.NoError(t, err)

	// Setting up twice is a no-op.
	_, err = SetupStream(ctx, js)
	require.NoError(t, err)

	info, err := stream.Info(ctx)
	require.NoError(t, err)
	require.Equal(t, StreamName, info.Config.Name)
	require.Equal(t, 90*24*time.Hour, info.Config.MaxAge)

	_, err = js.Publish(ctx, SubjectForSubmission("a", "acl"), []byte(`1`))
	require.NoError(t, err)
	_, err = js.Publish(ctx, SubjectForSubmission("b", "ssh"), []byte(`2`))
	require.NoError(t, err)

	cons, err := ReplayConsumer(ctx, stream, SubjectForRun("b"))
	require.NoError(t, err)
	batch, err := cons.Fetch(10, jetstream.FetchMaxWait(time.Second))
	require.NoError(t, err)

	var got []string
	for msg := range batch.Messages() {
		got = append(got, string(msg.Data()))
	}
	require.Equal(t, []string{"2"}, got)
}

func TestShutdownNil(t *testing.T) {
	t.Parallel()
	require.NoError(t, Shutdown(nil, nil))
}
