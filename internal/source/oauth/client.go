// Package oauth fetches sales rows from the Sheets values API using a
// refresh-token exchange: a long-lived refresh credential is traded for a
// short-lived access token, which then authorizes a bearer GET of the
// configured range.
package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"salesdash/internal/source"
)

const (
	defaultTokenURL = "https://oauth2.googleapis.com/token"
	defaultBaseURL  = "https://sheets.googleapis.com"
	defaultTimeout  = 30 * time.Second
)

// Credentials is the long-lived credential set used for the token exchange.
// Values come from injected configuration, never from code.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// CredentialProvider supplies credentials at fetch time, so rotation and
// external secret stores can plug in without touching the client.
type CredentialProvider interface {
	Credentials(ctx context.Context) (Credentials, error)
}

// Static wraps a fixed credential set as a CredentialProvider.
type Static Credentials

func (s Static) Credentials(context.Context) (Credentials, error) {
	return Credentials(s), nil
}

// Client implements source.RowSource against the spreadsheet values API.
type Client struct {
	httpc         *http.Client
	creds         CredentialProvider
	tokenURL      string
	baseURL       string
	spreadsheetID string
	readRange     string
}

var _ source.RowSource = (*Client)(nil)

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpc = c }
}

// WithTokenURL overrides the token endpoint.
func WithTokenURL(u string) Option {
	return func(cl *Client) { cl.tokenURL = u }
}

// WithBaseURL overrides the data endpoint base.
func WithBaseURL(u string) Option {
	return func(cl *Client) { cl.baseURL = strings.TrimRight(u, "/") }
}

// WithTimeout sets the overall request timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) { cl.httpc.Timeout = d }
}

// NewClient builds a fetcher for one spreadsheet range.
func NewClient(creds CredentialProvider, spreadsheetID, readRange string, opts ...Option) *Client {
	c := &Client{
		httpc:         &http.Client{Timeout: defaultTimeout},
		creds:         creds,
		tokenURL:      defaultTokenURL,
		baseURL:       defaultBaseURL,
		spreadsheetID: spreadsheetID,
		readRange:     readRange,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchRows runs one fetch cycle: authorize, then request the values range.
// An authorization failure aborts before the data request; no retry is
// performed here, a caller-triggered refetch re-runs the whole cycle.
func (c *Client) FetchRows(ctx context.Context) ([][]string, error) {
	token, err := c.accessToken(ctx)
	if err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/v4/spreadsheets/%s/values/%s?alt=json",
		c.baseURL, url.PathEscape(c.spreadsheetID), url.PathEscape(c.readRange))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build values request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request values: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, &source.FetchError{StatusCode: resp.StatusCode}
	}

	var payload struct {
		Values [][]any `json:"values"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode values payload: %w", err)
	}

	rows := source.RowsToStrings(payload.Values)
	slog.DebugContext(ctx, "Fetched sheet rows", "rows", len(rows), "range", c.readRange)
	return rows, nil
}

// accessToken exchanges the refresh credential for a short-lived access
// token via a POST-form request.
func (c *Client) accessToken(ctx context.Context) (string, error) {
	creds, err := c.creds.Credentials(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: load credentials: %v", source.ErrAuthorization, err)
	}

	form := url.Values{
		"client_id":     {creds.ClientID},
		"client_secret": {creds.ClientSecret},
		"refresh_token": {creds.RefreshToken},
		"grant_type":    {"refresh_token"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("%w: build token request: %v", source.ErrAuthorization, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: token request: %v", source.ErrAuthorization, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("%w: token endpoint returned status %d", source.ErrAuthorization, resp.StatusCode)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: decode token payload: %v", source.ErrAuthorization, err)
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("%w: token payload missing access_token", source.ErrAuthorization)
	}
	return payload.AccessToken, nil
}
