package serverapp

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apiops/internal/config"
	"apiops/internal/logging"
	"apiops/internal/metadata"
	"apiops/internal/middleware"
	"apiops/internal/naming"
)

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			ListenAddr:      "127.0.0.1:0",
			GraphiQLEnabled: false,
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    5 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Logging: logging.Config{Level: "error", Format: "text"},
		Naming:  naming.DefaultConfig(),
		Resources: []config.ResourceConfig{
			{Attributes: metadata.Attributes{Class: "bookshop/catalog.Book"}},
		},
	}
}

func testLogger() *logging.Logger {
	return &logging.Logger{Logger: slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))}
}

func TestNewValidation(t *testing.T) {
	_, err := New(nil, testLogger())
	assert.Error(t, err)

	_, err = New(testConfig(), nil)
	assert.Error(t, err)
}

func TestLifecycleStateChecks(t *testing.T) {
	app, err := New(testConfig(), testLogger())
	require.NoError(t, err)

	_, err = app.Start()
	assert.Error(t, err, "start before init must fail")

	assert.NoError(t, app.Shutdown(context.Background()))
}

// The Prometheus exporter registers against the process-wide default
// registry, so the full lifecycle is exercised by a single initialized app.
func TestAppServesResolvedMetadata(t *testing.T) {
	app, err := New(testConfig(), testLogger())
	require.NoError(t, err)
	require.NoError(t, app.Init(context.Background()))
	defer func() { _ = app.Shutdown(context.Background()) }()

	assert.Error(t, app.Init(context.Background()), "second init must fail")

	require.Len(t, app.Resources(), 1)
	assert.Equal(t, "Book", app.Resources()[0].ShortName)

	srv := httptest.NewServer(app.Handler())
	defer srv.Close()

	t.Run("healthz", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/healthz")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))
	})

	t.Run("operations", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/operations")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var out []struct {
			Class      string                            `json:"class"`
			ShortName  string                            `json:"shortName"`
			Operations map[string]metadata.HTTPOperation `json:"operations"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		require.Len(t, out, 1)
		assert.Equal(t, "bookshop/catalog.Book", out[0].Class)
		assert.Contains(t, out[0].Operations, "_api_Book_get")
		assert.Contains(t, out[0].Operations, "_api_Book_get_collection")
	})

	t.Run("operations rejects POST", func(t *testing.T) {
		resp, err := http.Post(srv.URL+"/operations", "application/json", strings.NewReader("{}"))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})

	t.Run("graphql introspection", func(t *testing.T) {
		body := `{"query": "{ __type(name: \"Book\") { name fields { name } } }"}`
		resp, err := http.Post(srv.URL+"/graphql", "application/json", strings.NewReader(body))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var out struct {
			Data struct {
				Type *struct {
					Name   string `json:"name"`
					Fields []struct {
						Name string `json:"name"`
					} `json:"fields"`
				} `json:"__type"`
			} `json:"data"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		require.NotNil(t, out.Data.Type)
		assert.Equal(t, "Book", out.Data.Type.Name)
		require.Len(t, out.Data.Type.Fields, 1)
		assert.Equal(t, "id", out.Data.Type.Fields[0].Name)
	})

	t.Run("metrics", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/metrics")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("root redirects", func(t *testing.T) {
		client := &http.Client{CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}}
		resp, err := client.Get(srv.URL + "/")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusFound, resp.StatusCode)
		assert.Equal(t, "/graphql", resp.Header.Get("Location"))
	})

	t.Run("unknown path", func(t *testing.T) {
		resp, err := http.Get(srv.URL + "/nope")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}
