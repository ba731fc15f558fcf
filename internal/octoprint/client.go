// Package octoprint is a small JSON client for the parts of the OctoPrint
// REST API the wizard talks to.
package octoprint

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/mark3labs/corewizard/internal/logger"
	"github.com/mark3labs/corewizard/internal/profile"
)

const userAgent = "corewizard/1.0"

// ErrUnauthorized is returned by Login when the server rejects the
// credentials.
var ErrUnauthorized = errors.New("unauthorized")

// StatusError is returned for every non-2xx response.
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	body := strings.TrimSpace(e.Body)
	if body == "" {
		return fmt.Sprintf("%s %s: server returned status %d", e.Method, e.Path, e.Code)
	}
	return fmt.Sprintf("%s %s: server returned status %d: %s", e.Method, e.Path, e.Code, body)
}

// Client talks to one server. It keeps the session cookie set by Login.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// New creates a client for baseURL. A zero timeout means no timeout.
func New(baseURL, apiKey string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("server url %q must be http or https", baseURL)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
	}, nil
}

// BaseURL returns the server address without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Submit posts a wizard step's payload to the corewizard plugin.
func (c *Client) Submit(ctx context.Context, endpoint string, payload any) error {
	return c.do(ctx, http.MethodPost, "/plugin/corewizard/"+endpoint, payload, nil)
}

type loginRequest struct {
	User     string `json:"user"`
	Pass     string `json:"pass"`
	Remember bool   `json:"remember"`
}

// Login starts a session for username. The session cookie is kept for
// later requests.
func (c *Client) Login(ctx context.Context, username, password string, persistent bool) error {
	req := loginRequest{User: username, Pass: password, Remember: persistent}
	err := c.do(ctx, http.MethodPost, "/api/login", req, nil)

	var se *StatusError
	if errors.As(err, &se) && (se.Code == http.StatusUnauthorized || se.Code == http.StatusForbidden) {
		return fmt.Errorf("logging in %s: %w", username, ErrUnauthorized)
	}
	return err
}

// DefaultProfile returns the server's default printer profile.
func (c *Client) DefaultProfile(ctx context.Context) (profile.Data, error) {
	var d profile.Data
	if err := c.do(ctx, http.MethodGet, "/api/printerProfiles/_default", nil, &d); err != nil {
		return nil, err
	}
	return d, nil
}

type profileEnvelope struct {
	Profile profile.Data `json:"profile"`
}

// UpdateDefaultProfile replaces the fields of the default profile with d.
func (c *Client) UpdateDefaultProfile(ctx context.Context, d profile.Data) error {
	return c.do(ctx, http.MethodPatch, "/api/printerProfiles/_default", profileEnvelope{Profile: d}, nil)
}

type profilesResponse struct {
	Profiles map[string]profile.Data `json:"profiles"`
}

// Profiles lists every printer profile by id.
func (c *Client) Profiles(ctx context.Context) (map[string]profile.Data, error) {
	var resp profilesResponse
	if err := c.do(ctx, http.MethodGet, "/api/printerProfiles", nil, &resp); err != nil {
		return nil, err
	}
	if resp.Profiles == nil {
		resp.Profiles = map[string]profile.Data{}
	}
	return resp.Profiles, nil
}

// Settings fetches the server settings the wizard displays.
func (c *Client) Settings(ctx context.Context) (*Settings, error) {
	var s Settings
	if err := c.do(ctx, http.MethodGet, "/api/settings", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) do(ctx context.Context, method, path string, reqBody, respBody any) error {
	target := c.baseURL + path

	var body io.Reader
	if reqBody != nil {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	logger.Debug("HTTP %s %s", method, target)
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		logger.Warn("HTTP %s %s returned %d", method, target, resp.StatusCode)
		return &StatusError{Method: method, Path: path, Code: resp.StatusCode, Body: string(data)}
	}

	if respBody != nil && len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, respBody); err != nil {
			return fmt.Errorf("decoding %s response: %w", path, err)
		}
	}
	return nil
}
