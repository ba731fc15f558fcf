package octoprint

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mark3labs/corewizard/internal/profile"
	"github.com/stretchr/testify/require"
)

type recorded struct {
	method string
	path   string
	apiKey string
	body   map[string]any
}

func newServer(t *testing.T, handler http.HandlerFunc) (*Client, *[]recorded) {
	t.Helper()

	var reqs []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{method: r.Method, path: r.URL.Path, apiKey: r.Header.Get("X-Api-Key")}
		data, _ := io.ReadAll(r.Body)
		if len(data) > 0 {
			// Handlers run off the test goroutine, so report without FailNow.
			if err := json.Unmarshal(data, &rec.body); err != nil {
				t.Errorf("decoding request body: %v", err)
			}
		}
		reqs = append(reqs, rec)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL+"/", "KEY", 5*time.Second)
	require.NoError(t, err)
	return c, &reqs
}

func TestNew_RejectsBadURL(t *testing.T) {
	t.Parallel()

	_, err := New("ftp://printer", "", time.Second)
	require.Error(t, err)

	c, err := New("http://printer:5000/", "", 0)
	require.NoError(t, err)
	require.Equal(t, "http://printer:5000", c.BaseURL())
}

func TestClient_Submit(t *testing.T) {
	t.Parallel()

	c, reqs := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	err := c.Submit(context.Background(), "acl", map[string]any{"ac": true, "user": "admin"})
	require.NoError(t, err)

	require.Len(t, *reqs, 1)
	got := (*reqs)[0]
	require.Equal(t, http.MethodPost, got.method)
	require.Equal(t, "/plugin/corewizard/acl", got.path)
	require.Equal(t, "KEY", got.apiKey)
	require.Equal(t, map[string]any{"ac": true, "user": "admin"}, got.body)
}

func TestClient_StatusError(t *testing.T) {
	t.Parallel()

	c, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such plugin", http.StatusNotFound)
	})

	err := c.Submit(context.Background(), "ssh", map[string]bool{"ssh": true})
	var se *StatusError
	require.True(t, errors.As(err, &se))
	require.Equal(t, http.StatusNotFound, se.Code)
	require.Contains(t, se.Body, "no such plugin")
	require.Contains(t, err.Error(), "POST /plugin/corewizard/ssh")
}

func TestClient_Login(t *testing.T) {
	t.Parallel()

	c, reqs := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, c.Login(context.Background(), "admin", "secret", true))
	require.Equal(t, "/api/login", (*reqs)[0].path)
	require.Equal(t, map[string]any{"user": "admin", "pass": "secret", "remember": true}, (*reqs)[0].body)
}

func TestClient_LoginUnauthorized(t *testing.T) {
	t.Parallel()

	for _, code := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		c, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		})
		err := c.Login(context.Background(), "admin", "wrong", false)
		require.ErrorIs(t, err, ErrUnauthorized)
	}

	c, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	err := c.Login(context.Background(), "admin", "secret", false)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrUnauthorized)
}

func TestClient_Profiles(t *testing.T) {
	t.Parallel()

	c, reqs := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/printerProfiles/_default":
			_, _ = w.Write([]byte(`{"id":"_default","name":"Default","model":"Generic"}`))
		case r.Method == http.MethodGet && r.URL.Path == "/api/printerProfiles":
			_, _ = w.Write([]byte(`{"profiles":{"_default":{"id":"_default","name":"Default"},"mk3":{"id":"mk3","name":"MK3"}}}`))
		case r.Method == http.MethodPatch:
			_, _ = w.Write([]byte(`{"profile":{"id":"_default"}}`))
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	ctx := context.Background()

	d, err := c.DefaultProfile(ctx)
	require.NoError(t, err)
	require.Equal(t, "Default", d.Name())

	require.NoError(t, c.UpdateDefaultProfile(ctx, profile.Data{"id": "_default", "name": "Edited"}))
	patch := (*reqs)[1]
	require.Equal(t, http.MethodPatch, patch.method)
	require.Equal(t, map[string]any{"profile": map[string]any{"id": "_default", "name": "Edited"}}, patch.body)

	all, err := c.Profiles(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "MK3", all["mk3"].Name())
}

func TestClient_Settings(t *testing.T) {
	t.Parallel()

	c, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"webcam": {"streamUrl": "/webcam/?action=stream", "snapshotUrl": "", "ffmpegPath": "/usr/bin/ffmpeg"},
			"server": {"commands": {
				"systemShutdownCommand": "sudo shutdown -h now",
				"systemRestartCommand": "sudo shutdown -r now",
				"serverRestartCommand": "sudo service octoprint restart"
			}}
		}`))
	})

	s, err := c.Settings(context.Background())
	require.NoError(t, err)
	require.Equal(t, "/webcam/?action=stream", s.Webcam.StreamURL())
	require.Empty(t, s.Webcam.SnapshotURL())
	require.Equal(t, "/usr/bin/ffmpeg", s.Webcam.FFmpegPath())
	require.Equal(t, "sudo service octoprint restart", s.Server.Commands.ServerRestart)
}

func TestClient_ContextCancelled(t *testing.T) {
	t.Parallel()

	c, _ := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Submit(ctx, "acl", nil)
	require.ErrorIs(t, err, context.Canceled)
}
