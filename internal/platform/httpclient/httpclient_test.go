package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type outcome struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

func TestDoJSON_SendsBodyAndDecodes(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/pets/Tom/play", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var in map[string]int
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, 15, in["minutes"])

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(outcome{OK: true, Message: "played"})
	}))
	defer ts.Close()

	c, err := New(ts.URL+"/", 0)
	require.NoError(t, err)
	assert.Equal(t, ts.URL, c.BaseURL)

	var out outcome
	require.NoError(t, c.DoJSON(context.Background(), http.MethodPost, "pets/Tom/play", map[string]int{"minutes": 15}, &out))
	assert.True(t, out.OK)
	assert.Equal(t, "played", out.Message)
}

func TestDoJSON_ErrorKeepsOutcome(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("X-Request-ID", "req-1")
		w.WriteHeader(http.StatusConflict)
		_ = json.NewEncoder(w).Encode(outcome{OK: false, Message: "Daily reward already claimed today."})
	}))
	defer ts.Close()

	c, err := New(ts.URL, 0)
	require.NoError(t, err)

	var out outcome
	err = c.DoJSON(context.Background(), http.MethodPost, "/pets/Tom/daily", nil, &out)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, StatusCode(err))
	assert.Contains(t, err.Error(), "request_id=req-1")
	assert.Equal(t, "Daily reward already claimed today.", out.Message)
}

func TestDoJSON_PlainTextError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "pet not found", http.StatusNotFound)
	}))
	defer ts.Close()

	c, err := New(ts.URL, 0)
	require.NoError(t, err)

	var out outcome
	err = c.DoJSON(context.Background(), http.MethodGet, "/pets/Ghost/activity", nil, &out)
	var he *HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, "pet not found", he.Body)
	assert.Empty(t, out.Message)
}

func TestNew_Validation(t *testing.T) {
	c, err := New("", 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultBaseURL, c.BaseURL)
	assert.Equal(t, DefaultTimeout, c.HTTP.Timeout)

	_, err = New("not a url", 0)
	assert.Error(t, err)
}
