// Package elevenlabs implements the voice catalog and quota providers on
// top of the ElevenLabs HTTP API.
package elevenlabs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/zerotts/voiceprefs"
	"github.com/zerotts/voiceprefs/catalog"
)

// API endpoints and headers.
const (
	DefaultBaseURL = "https://api.elevenlabs.io"

	apiVoices = "/v1/voices"
	apiUser   = "/v1/user"

	headerAPIKey = "xi-api-key"
)

// DefaultTimeout bounds every request to the provider.
const DefaultTimeout = 15 * time.Second

// ErrAPIKeyMissing is returned by New when no API key is supplied. The
// check is eager so a misconfigured process fails at startup, not on the
// first user interaction.
var ErrAPIKeyMissing = errors.New("elevenlabs: api key is not set")

// Client talks to the ElevenLabs API. It implements both
// voiceprefs.VoiceCatalogProvider and voiceprefs.QuotaProvider.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

var (
	_ voiceprefs.VoiceCatalogProvider = (*Client)(nil)
	_ voiceprefs.QuotaProvider        = (*Client)(nil)
)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL. Intended for tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client, including its
// timeout.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// New creates a Client authenticated with apiKey.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrAPIKeyMissing
	}
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

type voicePayload struct {
	VoiceID string            `json:"voice_id"`
	Name    string            `json:"name"`
	Labels  map[string]string `json:"labels"`
}

type voicesResponse struct {
	Voices []voicePayload `json:"voices"`
}

// Voices lists all voices available to the account. Network and
// authorization failures wrap voiceprefs.ErrProvider.
func (c *Client) Voices(ctx context.Context) ([]catalog.VoiceRecord, error) {
	body, err := c.get(ctx, apiVoices)
	if err != nil {
		return nil, err
	}

	var resp voicesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("%w: decoding voices response: %w", voiceprefs.ErrProvider, err)
	}

	records := make([]catalog.VoiceRecord, 0, len(resp.Voices))
	for _, v := range resp.Voices {
		records = append(records, catalog.VoiceRecord{
			ID:       v.VoiceID,
			Name:     v.Name,
			Language: v.Labels["language"],
			Gender:   v.Labels["gender"],
		})
	}
	return records, nil
}

type userResponse struct {
	Subscription struct {
		CharacterLimit *int `json:"character_limit"`
		CharacterCount *int `json:"character_count"`
	} `json:"subscription"`
}

// RemainingQuota reports the unused character budget of the subscription.
// A response that lacks the quota fields yields an unknown Quota with a
// nil error; only transport and HTTP failures are errors.
func (c *Client) RemainingQuota(ctx context.Context) (voiceprefs.Quota, error) {
	body, err := c.get(ctx, apiUser)
	if err != nil {
		return voiceprefs.Quota{}, err
	}

	var resp userResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return voiceprefs.Quota{}, fmt.Errorf("%w: decoding user response: %w", voiceprefs.ErrProvider, err)
	}

	limit := resp.Subscription.CharacterLimit
	used := resp.Subscription.CharacterCount
	if limit == nil || used == nil {
		return voiceprefs.Quota{}, nil
	}

	remaining := *limit - *used
	if remaining < 0 {
		remaining = 0
	}
	return voiceprefs.Quota{Remaining: remaining, Known: true}, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request for %s: %w", voiceprefs.ErrProvider, path, err)
	}
	req.Header.Set(headerAPIKey, c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", voiceprefs.ErrProvider, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned status %d", voiceprefs.ErrProvider, path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s response: %w", voiceprefs.ErrProvider, path, err)
	}
	return body, nil
}
