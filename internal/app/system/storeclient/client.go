// internal/app/system/storeclient/client.go
package storeclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/dalemusser/activityhub/internal/domain/models"
	"go.uber.org/zap"
)

// maxBody bounds how much of a response body is read.
const maxBody = 4 << 20

// Client talks to an ActivityStore over HTTP/JSON.
type Client struct {
	base string
	http *http.Client
	Log  *zap.Logger
}

// New returns a Client for the store rooted at baseURL
// (for example "http://localhost:8080"). A nil httpClient means
// http.DefaultClient.
func New(baseURL string, httpClient *http.Client, logger *zap.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("store url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("store url %q: scheme must be http or https", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("store url %q: missing host", baseURL)
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	u.RawQuery, u.Fragment = "", ""
	return &Client{
		base: strings.TrimRight(u.String(), "/"),
		http: httpClient,
		Log:  logger,
	}, nil
}

// BaseURL returns the store root the client was built with.
func (c *Client) BaseURL() string { return c.base }

// List fetches the full activity collection.
func (c *Client) List(ctx context.Context) (models.Collection, error) {
	const op = "list activities"

	var out models.Collection
	if err := c.do(ctx, op, http.MethodGet, c.base+"/activities", &out); err != nil {
		return models.Collection{}, err
	}
	return out, nil
}

// Signup registers email for activity and returns the server's message.
func (c *Client) Signup(ctx context.Context, activity, email string) (string, error) {
	const op = "signup"
	return c.mutate(ctx, op, http.MethodPost, c.activityURL(activity, "signup", email))
}

// Remove unregisters email from activity and returns the server's message.
func (c *Client) Remove(ctx context.Context, activity, email string) (string, error) {
	const op = "remove participant"
	return c.mutate(ctx, op, http.MethodDelete, c.activityURL(activity, "participants", email))
}

// activityURL builds /activities/{name}/{action}?email={email} with both
// values percent-encoded.
func (c *Client) activityURL(activity, action, email string) string {
	q := url.Values{"email": {email}}
	return c.base + "/activities/" + url.PathEscape(activity) + "/" + action + "?" + q.Encode()
}

func (c *Client) mutate(ctx context.Context, op, method, target string) (string, error) {
	var body struct {
		Message string `json:"message"`
	}
	if err := c.do(ctx, op, method, target, &body); err != nil {
		return "", err
	}
	return body.Message, nil
}

// do sends one request and decodes a 2xx JSON body into out.
func (c *Client) do(ctx context.Context, op, method, target string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, target, nil)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.Log.Warn("store request failed",
			zap.String("op", op), zap.String("url", target), zap.Error(err))
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		c.Log.Warn("store response read failed",
			zap.String("op", op), zap.Int("status", resp.StatusCode), zap.Error(err))
		return &TransportError{Op: op, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		rej := &RejectedError{Op: op, Status: resp.StatusCode}
		rej.Detail, rej.HasDetail = detailOf(raw)
		c.Log.Debug("store rejected request",
			zap.String("op", op), zap.Int("status", resp.StatusCode), zap.String("detail", rej.Detail))
		return rej
	}

	if err := json.Unmarshal(raw, out); err != nil {
		c.Log.Warn("store returned malformed body",
			zap.String("op", op), zap.Int("status", resp.StatusCode), zap.Error(err))
		return &MalformedError{Op: op, Err: err}
	}
	c.Log.Debug("store request ok", zap.String("op", op), zap.Int("status", resp.StatusCode))
	return nil
}

// detailOf extracts a string "detail" field from an error body. Structured
// details such as validation lists are not shown to users.
func detailOf(raw []byte) (string, bool) {
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &body); err != nil || len(body.Detail) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(body.Detail, &s); err != nil || s == "" {
		return "", false
	}
	return s, true
}
