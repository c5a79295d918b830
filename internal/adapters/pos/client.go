// Package pos provides a client for the vendor's server API.
//
// The vendor hands out a single server-side session per login and misbehaves
// when that session issues concurrent requests, so the client serializes all
// calls behind one mutex. Callers get no implicit retry: a failed fetch is
// the caller's window failure to count.
package pos

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	perr "posbridge/internal/platform/errors"
	"posbridge/internal/platform/logger"
)

const (
	defaultTimeout = 3 * time.Minute
	defaultUA      = "posbridge"
)

// Options configures the Client
type Options struct {
	BaseURL  string
	Login    string
	Password string

	// Timeout bounds any single vendor call end to end
	Timeout   time.Duration
	UserAgent string
}

// Client is a serialized vendor API session
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
	now  func() time.Time

	// mu serializes every vendor call: one session, one request in flight
	mu    sync.Mutex
	token string // current session key, empty when logged out
}

// New validates credentials and builds a Client. Missing credentials are a
// configuration error, the caller should treat it as fatal.
func New(o Options) (*Client, error) {
	o.BaseURL = strings.TrimRight(strings.TrimSpace(o.BaseURL), "/")
	if o.BaseURL == "" {
		return nil, perr.InvalidArgf("pos: base url required")
	}
	if o.Login == "" || o.Password == "" {
		return nil, perr.InvalidArgf("pos: login and password required")
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	return &Client{
		http: &http.Client{Timeout: o.Timeout},
		opts: o,
		log:  *logger.Named("pos"),
		now:  time.Now,
	}, nil
}

// ensureAuth obtains a session key when none is held. The vendor expects the
// password as its sha1 hex digest.
func (c *Client) ensureAuth(ctx context.Context) error {
	if c.token != "" {
		return nil
	}

	sum := sha1.Sum([]byte(c.opts.Password))
	q := url.Values{}
	q.Set("login", c.opts.Login)
	q.Set("pass", hex.EncodeToString(sum[:]))

	body, err := c.get(ctx, "/resto/api/auth?"+q.Encode())
	if err != nil {
		return perr.WrapIf(err, perr.ErrorCodeUnavailable, "pos auth failed")
	}
	tok := strings.TrimSpace(string(body))
	if tok == "" {
		return perr.Unavailablef("pos auth returned empty session key")
	}
	c.token = tok
	c.log.Debug().Msg("pos session opened")
	return nil
}

// Logout releases the vendor session, best effort
func (c *Client) Logout(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.token == "" {
		return
	}
	q := url.Values{}
	q.Set("key", c.token)
	if _, err := c.get(ctx, "/resto/api/logout?"+q.Encode()); err != nil {
		c.log.Warn().Err(err).Msg("pos logout failed")
	}
	c.token = ""
}

// get issues a GET and returns the body, mapping transport and status
// failures onto coded errors
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, "", nil)
}

func (c *Client) do(ctx context.Context, method, path, contentType string, reqBody io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.opts.BaseURL+path, reqBody)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "pos new request failed")
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := c.now()
	resp, err := c.http.Do(req)
	lat := c.now().Sub(start)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "pos transport error")
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug().
		Str("method", method).
		Str("path", redactPath(path)).
		Int("status", resp.StatusCode).
		Dur("latency", lat).
		Msg("pos http response")

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "pos read body failed")
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		// session expired server side, drop it so the next call re-auths
		c.token = ""
		return nil, perr.Unauthorizedf("pos session rejected (status %d)", resp.StatusCode)
	default:
		tail := body
		if len(tail) > 2048 {
			tail = tail[:2048]
		}
		return nil, perr.Unavailablef("pos unexpected status %d body %s", resp.StatusCode, string(tail))
	}
}

// redactPath strips query values so session keys and password hashes never
// reach the logs
func redactPath(p string) string {
	if i := strings.IndexByte(p, '?'); i >= 0 {
		return p[:i]
	}
	return p
}
