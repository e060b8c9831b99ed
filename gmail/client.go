package gmail

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

const (
	user           = "me"
	DefaultTimeout = 10 * time.Second

	formatFull     = "full"
	formatMetadata = "metadata"
)

// Options configures how a Client reaches the API.
type Options struct {
	Endpoint  string        // base URL override, empty for the public API
	Timeout   time.Duration // per request; DefaultTimeout when zero
	Transport http.RoundTripper
}

type Client struct {
	srv *gmail.Service
}

// NewClient builds a Gmail client that sends accessToken as a bearer token.
// It performs no network calls.
func NewClient(ctx context.Context, accessToken string, o Options) (*Client, error) {
	timeout := o.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}),
			Base:   o.Transport,
		},
	}
	opts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if o.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(o.Endpoint))
	}
	srv, err := gmail.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create Gmail service: %w", err)
	}
	return &Client{srv: srv}, nil
}

// Search lists the messages matching query, at most maxResults of them.
func (c *Client) Search(ctx context.Context, query string, maxResults int64) ([]*gmail.Message, error) {
	list, err := c.srv.Users.Messages.List(user).
		Q(query).
		MaxResults(maxResults).
		Context(ctx).
		Do()
	if err != nil {
		return nil, classify(err)
	}
	return list.Messages, nil
}

// Message fetches one message, with its body when full is set and headers only otherwise.
func (c *Client) Message(ctx context.Context, id string, full bool) (*gmail.Message, error) {
	format := formatMetadata
	if full {
		format = formatFull
	}
	msg, err := c.srv.Users.Messages.Get(user, id).Format(format).Context(ctx).Do()
	if err != nil {
		return nil, classify(err)
	}
	return msg, nil
}
