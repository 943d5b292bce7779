package elevenlabs

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zerotts/voiceprefs"
)

func TestNew_RequiresAPIKey(t *testing.T) {
	_, err := New("")
	require.ErrorIs(t, err, ErrAPIKeyMissing)

	c, err := New("secret")
	require.NoError(t, err)
	assert.NotNil(t, c)
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New("secret", WithBaseURL(srv.URL))
	require.NoError(t, err)
	return c
}

func TestClient_Voices(t *testing.T) {
	var gotKey string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, apiVoices, r.URL.Path)
		gotKey = r.Header.Get(headerAPIKey)
		_, _ = w.Write([]byte(`{
			"voices": [
				{"voice_id": "v1", "name": "Anna", "labels": {"gender": "female", "language": "ru"}},
				{"voice_id": "v2", "name": "Ben", "labels": {"gender": "male", "language": "en"}},
				{"voice_id": "v3", "name": "NoLabels"}
			]
		}`))
	})

	records, err := c.Voices(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, "v1", records[0].ID)
	assert.Equal(t, "Anna", records[0].Name)
	assert.Equal(t, "ru", records[0].Language)
	assert.Equal(t, "female", records[0].Gender)

	// Voices without labels are still reported; categorization decides
	// their bucket downstream.
	assert.Empty(t, records[2].Language)
	assert.Empty(t, records[2].Gender)
}

func TestClient_Voices_HTTPErrorWrapsErrProvider(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	_, err := c.Voices(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, voiceprefs.ErrProvider)
}

func TestClient_Voices_MalformedBodyWrapsErrProvider(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not json"))
	})

	_, err := c.Voices(context.Background())
	assert.ErrorIs(t, err, voiceprefs.ErrProvider)
}

func TestClient_RemainingQuota(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, apiUser, r.URL.Path)
		_, _ = w.Write([]byte(`{"subscription": {"character_limit": 10000, "character_count": 2500}}`))
	})

	q, err := c.RemainingQuota(context.Background())
	require.NoError(t, err)
	assert.True(t, q.Known)
	assert.Equal(t, 7500, q.Remaining)
}

func TestClient_RemainingQuota_ClampedAtZero(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"subscription": {"character_limit": 100, "character_count": 250}}`))
	})

	q, err := c.RemainingQuota(context.Background())
	require.NoError(t, err)
	assert.True(t, q.Known)
	assert.Equal(t, 0, q.Remaining)
}

func TestClient_RemainingQuota_MissingFieldsAreUnknownNotError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"subscription": {}}`))
	})

	q, err := c.RemainingQuota(context.Background())
	require.NoError(t, err)
	assert.False(t, q.Known)
}

func TestClient_RemainingQuota_NetworkErrorWrapsErrProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // refuse connections

	c, err := New("secret", WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = c.RemainingQuota(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, voiceprefs.ErrProvider)
	assert.False(t, errors.Is(err, ErrAPIKeyMissing))
}
