package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const authScheme = "apikey"

// ErrUpstream is matched by every failure returned from Client.Request.
var ErrUpstream = errors.New("upstream failure")

type Config struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

func (cfg Config) Validate() error {
	if cfg.Endpoint == "" {
		return errors.New("API_ENDPOINT must be set")
	}
	if cfg.APIKey == "" {
		return errors.New("API_KEY must be set")
	}
	if cfg.Timeout <= 0 {
		return errors.Errorf("API_TIMEOUT must be positive, got %s", cfg.Timeout)
	}
	return nil
}

// AuthorizationHeader returns the value sent in the authorization header.
func AuthorizationHeader(apiKey string) string {
	return authScheme + " " + apiKey
}

// Error is an upstream response that carried a GraphQL errors array.
type Error struct {
	Messages []string
}

func (e *Error) Error() string {
	return "upstream graphql errors: " + strings.Join(e.Messages, "; ")
}

func (e *Error) Is(target error) bool {
	return target == ErrUpstream
}

type Client struct {
	endpoint   string
	authHeader string
	httpClient *http.Client
	log        logrus.FieldLogger
}

func NewClient(cfg Config, log logrus.FieldLogger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		endpoint:   cfg.Endpoint,
		authHeader: AuthorizationHeader(cfg.APIKey),
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log.WithField("endpoint", cfg.Endpoint),
	}, nil
}

type request struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Request sends query to the upstream endpoint and decodes the response's
// data member into out. Failures are logged and returned.
func (c *Client) Request(ctx context.Context, query string, vars map[string]interface{}, out interface{}) error {
	err := c.do(ctx, query, vars, out)
	if err != nil {
		c.log.WithError(err).Error("upstream request failed")
	}
	return err
}

func (c *Client) do(ctx context.Context, query string, vars map[string]interface{}, out interface{}) error {
	body, err := json.Marshal(request{Query: query, Variables: vars})
	if err != nil {
		return errors.Wrap(err, "encoding upstream request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "building upstream request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("authorization", c.authHeader)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(ErrUpstream, "sending request: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(ErrUpstream, "reading response: %v", err)
	}

	var r response
	if err := json.Unmarshal(raw, &r); err != nil {
		if resp.StatusCode/100 != 2 {
			return errors.Wrapf(ErrUpstream, "status %d", resp.StatusCode)
		}
		return errors.Wrapf(ErrUpstream, "decoding response: %v", err)
	}
	if len(r.Errors) > 0 {
		msgs := make([]string, len(r.Errors))
		for i, e := range r.Errors {
			msgs[i] = e.Message
		}
		return &Error{Messages: msgs}
	}
	if resp.StatusCode/100 != 2 {
		return errors.Wrapf(ErrUpstream, "status %d", resp.StatusCode)
	}

	if out == nil || len(r.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(r.Data, out); err != nil {
		return errors.Wrapf(ErrUpstream, "decoding data: %v", err)
	}
	return nil
}
