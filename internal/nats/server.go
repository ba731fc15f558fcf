package nats

import (
	"errors"
	"time"

	"github.com/mark3labs/corewizard/internal/logger"
	"github.com/nats-io/nats-server/v2/server"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

const (
	// readyTimeout bounds how long StartEmbeddedNATS waits for the server.
	readyTimeout = 4 * time.Second
	// drainTimeout bounds the connection drain in Shutdown.
	drainTimeout = 2 * time.Second
	// stopTimeout bounds the server stop in Shutdown.
	stopTimeout = 5 * time.Second
)

// StartEmbeddedNATS starts an in-process NATS server with JetStream storing
// its files under dataDir. The server opens no network ports, so two wizard
// runs on one machine only collide on the data directory.
// Returns the server instance or an error if startup fails.
func StartEmbeddedNATS(dataDir string) (*server.Server, error) {
	logger.Debug("Starting embedded NATS server with data dir: %s", dataDir)

	opts := &server.Options{
		JetStream:  true,
		StoreDir:   dataDir,
		DontListen: true, // in-process only
		NoSigs:     true, // signals belong to the CLI and the TUI
	}

	ns, err := server.NewServer(opts)
	if err != nil {
		logger.Error("Failed to create NATS server: %v", err)
		return nil, err
	}

	// Start runs the accept loops; it returns once they are spawned
	logger.Debug("Starting NATS server in background")
	go ns.Start()

	// JetStream recovers the journal from disk before it reports ready
	logger.Debug("Waiting for NATS server to be ready...")
	if !ns.ReadyForConnections(readyTimeout) {
		logger.Error("NATS server not ready after %s", readyTimeout)
		// Release the store directory lock so a retry can open it
		ns.Shutdown()
		return nil, errors.New("nats server failed to start within timeout")
	}

	logger.Debug("NATS server ready for connections")
	return ns, nil
}

// ConnectInProcess connects to ns without going through the network.
// The connection is named so it is recognizable in server logs.
func ConnectInProcess(ns *server.Server) (*nats.Conn, error) {
	logger.Debug("Connecting to NATS server in-process")
	conn, err := nats.Connect("", nats.InProcessServer(ns), nats.Name("corewizard"))
	if err != nil {
		logger.Error("Failed to connect to NATS in-process: %v", err)
		return nil, err
	}
	logger.Debug("Connected to NATS successfully")
	return conn, nil
}

// CreateJetStream creates a JetStream context from a NATS connection.
// The journal uses it to create the submissions stream, publish entries and
// replay them.
func CreateJetStream(nc *nats.Conn) (jetstream.JetStream, error) {
	return jetstream.New(nc)
}

// Shutdown drains nc and stops ns. Either may be nil, which lets callers
// clean up after a partially failed Open.
func Shutdown(nc *nats.Conn, ns *server.Server) error {
	logger.Debug("Starting NATS shutdown")

	// Drain first so the last journal entries are acknowledged
	if nc != nil {
		logger.Debug("Draining NATS connection")
		drainDone := make(chan error, 1)
		go func() {
			drainDone <- nc.Drain()
		}()

		select {
		case err := <-drainDone:
			if err != nil {
				// Drain failed, the entries in flight are lost either way
				logger.Warn("NATS drain failed, forcing close: %v", err)
				nc.Close()
			} else {
				logger.Debug("NATS connection drained successfully")
			}
		case <-time.After(drainTimeout):
			logger.Warn("NATS drain timed out after %s, forcing close", drainTimeout)
			nc.Close()
		}
	}

	// Stop the server; JetStream flushes the stream files on the way down
	if ns != nil {
		logger.Debug("Shutting down NATS server")
		ns.Shutdown()

		shutdownDone := make(chan struct{})
		go func() {
			ns.WaitForShutdown()
			close(shutdownDone)
		}()

		select {
		case <-shutdownDone:
			logger.Debug("NATS server shut down cleanly")
		case <-time.After(stopTimeout):
			// No force-stop API; report instead of hanging the CLI
			logger.Error("NATS server shutdown timed out after %s", stopTimeout)
			return errors.New("NATS server shutdown timed out")
		}
	}

	logger.Debug("NATS shutdown complete")
	return nil
}
