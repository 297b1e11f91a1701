package swifi

import (
	"io"
	"log/slog"
	"net/http"
)

// Client talks to the speedtest.net configuration and server directory
// endpoints and acts as the server catalog for a test run.
type Client struct {
	doer   *http.Client
	logger *slog.Logger

	user *User // cached caller information, fetched once per client
}

// Option is a function that can be passed to New to modify the Client.
type Option func(*Client)

// WithDoer sets the http.Client used to make requests.
func WithDoer(doer *http.Client) Option {
	return func(c *Client) {
		c.doer = doer
	}
}

// WithLogger sets the logger used by the client and everything built from it.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// New creates a new catalog client.
func New(opts ...Option) *Client {
	c := &Client{
		doer:   http.DefaultClient,
		logger: discardLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Logger returns the logger the client was built with.
func (c *Client) Logger() *slog.Logger {
	return c.logger
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
