package playfab

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultTitleID is GTFO's PlayFab title.
const DefaultTitleID = "8f9"

const (
	defaultUserAgent = "logtracker/0.1"
	requestTimeout   = 30 * time.Second
	loginPath        = "/Client/LoginWithSteam"
	userDataPath     = "/Client/GetUserData"
)

// Client talks to the PlayFab client API for one title.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	titleID   string
	userAgent string
}

// NewClient builds a Client for titleID against the public PlayFab endpoint.
func NewClient(titleID string) (*Client, error) {
	titleID = strings.TrimSpace(titleID)
	if titleID == "" {
		titleID = DefaultTitleID
	}
	return NewClientWithBaseURL(fmt.Sprintf("https://%s.playfabapi.com", titleID), titleID)
}

// NewClientWithBaseURL builds a Client against an explicit endpoint.
func NewClientWithBaseURL(baseURL, titleID string) (*Client, error) {
	base, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse base url %q: %w", baseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("parse base url %q: scheme and host required", baseURL)
	}
	base.Path = ""
	base.RawQuery = ""
	base.Fragment = ""
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		titleID:   titleID,
		userAgent: defaultUserAgent,
	}, nil
}

// Login exchanges a Steam auth ticket for a PlayFab session ticket.
func (c *Client) Login(ctx context.Context, steamTicket []byte) (SessionTicket, error) {
	if c == nil {
		return "", fmt.Errorf("client is nil")
	}
	body := loginRequest{
		TitleID:     c.titleID,
		SteamTicket: strings.ToUpper(hex.EncodeToString(steamTicket)),
	}
	var payload loginResponse
	if err := c.post(ctx, loginPath, body, nil, &payload); err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	if payload.SessionTicket == "" {
		return "", fmt.Errorf("login: empty session ticket")
	}
	return SessionTicket(payload.SessionTicket), nil
}

// GetUserData fetches the player's title data using a session ticket.
func (c *Client) GetUserData(ctx context.Context, ticket SessionTicket) (UserData, error) {
	if c == nil {
		return UserData{}, fmt.Errorf("client is nil")
	}
	header := http.Header{}
	header.Set("X-Authorization", string(ticket))
	var payload userDataResponse
	if err := c.post(ctx, userDataPath, struct{}{}, header, &payload); err != nil {
		return UserData{}, fmt.Errorf("get user data: %w", err)
	}
	return payload.Data, nil
}

func (c *Client) post(ctx context.Context, path string, body any, header http.Header, dest any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	reqURL := c.baseURL.ResolveReference(&url.URL{Path: path})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL.String(), bytes.NewReader(encoded))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	for k, v := range header {
		req.Header[k] = v
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		if resp.StatusCode >= 400 {
			return &APIError{Code: resp.StatusCode, Status: http.StatusText(resp.StatusCode)}
		}
		return fmt.Errorf("decode response: %w", err)
	}
	if env.Error != "" || resp.StatusCode >= 400 || env.Code >= 400 {
		if env.Code == 0 {
			env.Code = resp.StatusCode
		}
		return env.apiError()
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return errors.New("decode response: missing data")
	}
	if err := json.Unmarshal(env.Data, dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
