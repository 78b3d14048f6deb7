// Package api is the HTTP client for the tracker backend: identity,
// server-computed macro targets, food search and the food log.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	"github.com/ccamposlozano/fitness-tracker-ai/internal/model"
)

// Error is a non-2xx answer from the backend.
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	return fmt.Sprintf("api status %d: %s", e.StatusCode, e.Detail)
}

func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

type Client struct {
	http  *resty.Client
	token model.Token
	log   zerolog.Logger
	// Location is used for timestamps the backend sends without an offset.
	Location *time.Location
}

func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	c := resty.New().
		SetBaseURL(strings.TrimRight(strings.TrimSpace(baseURL), "/")).
		SetHeader("Accept", "application/json").
		SetTimeout(timeout)
	return &Client{http: c, log: log, Location: time.Local}
}

// WithToken returns a copy of c that authenticates as tok.
func (c *Client) WithToken(tok model.Token) *Client {
	cp := *c
	cp.token = tok
	return &cp
}

func (c *Client) request(ctx context.Context) *resty.Request {
	r := c.http.R().SetContext(ctx)
	if c.token.AccessToken != "" {
		r.SetAuthToken(c.token.AccessToken)
	}
	return r
}

// do sends r and decodes a 2xx JSON body into out when out is non-nil.
func (c *Client) do(r *resty.Request, method, path string, out any) error {
	start := time.Now()
	resp, err := r.Execute(method, path)
	if err != nil {
		c.log.Debug().Str("method", method).Str("path", path).Dur("took", time.Since(start)).Err(err).Msg("api request failed")
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	c.log.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode()).Dur("took", time.Since(start)).Msg("api request")

	if !resp.IsSuccess() {
		return &Error{StatusCode: resp.StatusCode(), Detail: errorDetail(resp)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func errorDetail(resp *resty.Response) string {
	var body struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(resp.Body(), &body); err == nil && len(body.Detail) > 0 {
		var s string
		if err := json.Unmarshal(body.Detail, &s); err == nil {
			return s
		}
		return string(body.Detail)
	}
	if s := strings.TrimSpace(resp.String()); s != "" {
		return s
	}
	return http.StatusText(resp.StatusCode())
}

func (c *Client) Register(ctx context.Context, reg model.Registration) (model.Token, error) {
	var tok model.Token
	r := c.request(ctx).SetHeader("Content-Type", "application/json").SetBody(reg)
	if err := c.do(r, http.MethodPost, "/register", &tok); err != nil {
		return model.Token{}, err
	}
	return tok, nil
}

// Login exchanges credentials for a token using the OAuth2 password form.
func (c *Client) Login(ctx context.Context, username, password string) (model.Token, error) {
	var tok model.Token
	r := c.request(ctx).SetFormData(map[string]string{
		"username": username,
		"password": password,
	})
	if err := c.do(r, http.MethodPost, "/token", &tok); err != nil {
		return model.Token{}, err
	}
	if tok.AccessToken == "" {
		return model.Token{}, fmt.Errorf("login response carried no access token")
	}
	return tok, nil
}

func (c *Client) Profile(ctx context.Context) (model.User, error) {
	var u model.User
	if err := c.do(c.request(ctx), http.MethodGet, "/me", &u); err != nil {
		return model.User{}, err
	}
	return u, nil
}

// MacroTarget asks the backend to compute the user's daily targets.
func (c *Client) MacroTarget(ctx context.Context) (model.MacroTarget, error) {
	var t model.MacroTarget
	if err := c.do(c.request(ctx), http.MethodPost, "/macro", &t); err != nil {
		return model.MacroTarget{}, err
	}
	return t, nil
}
