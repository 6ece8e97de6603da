package app

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/codeapi/internal/catalog"
	"github.com/vk/codeapi/internal/ctxlog"
	"github.com/vk/codeapi/internal/hcl"
	"github.com/vk/codeapi/internal/testutil"
)

// newTestApp writes the given declaration files into a temp dir and builds an
// App over them.
func newTestApp(t *testing.T, files map[string]string, mutate func(*Config)) (*App, *testutil.SafeBuffer) {
	t.Helper()

	root := testutil.WriteFiles(t, files)
	raw := DefaultConfig()
	raw.Declarations = []string{root}
	raw.LogLevel = "debug"
	if mutate != nil {
		mutate(&raw)
	}
	cfg, err := NewConfig(raw)
	require.NoError(t, err)

	logBuffer := &testutil.SafeBuffer{}
	t.Cleanup(func() {
		if t.Failed() {
			t.Logf("--- Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})
	return NewApp(logBuffer, cfg, hcl.NewLoader()), logBuffer
}

func httpCodes() map[string]string {
	return map[string]string{"codes.hcl": testutil.HTTPCodesHCL}
}

func doRequest(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestNewConfig(t *testing.T) {
	valid := DefaultConfig()
	valid.Declarations = []string{"codes"}

	testCases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
		check   func(t *testing.T, cfg *Config)
	}{
		{name: "defaults are valid", mutate: func(*Config) {}, check: func(t *testing.T, cfg *Config) {
			assert.Equal(t, "/code-api", cfg.Path)
			assert.Equal(t, "CodeApi", cfg.Title)
		}},
		{name: "path is normalized", mutate: func(c *Config) { c.Path = "lookup/" }, check: func(t *testing.T, cfg *Config) {
			assert.Equal(t, "/lookup", cfg.Path)
		}},
		{name: "blank title falls back", mutate: func(c *Config) { c.Title = "  " }, check: func(t *testing.T, cfg *Config) {
			assert.Equal(t, "CodeApi", cfg.Title)
		}},
		{name: "levels are case-insensitive", mutate: func(c *Config) { c.LogLevel = "DEBUG"; c.LogFormat = "JSON" }, check: func(t *testing.T, cfg *Config) {
			assert.Equal(t, "debug", cfg.LogLevel)
			assert.Equal(t, "json", cfg.LogFormat)
		}},
		{name: "declarations required", mutate: func(c *Config) { c.Declarations = nil }, wantErr: "declarations is a required"},
		{name: "bad format", mutate: func(c *Config) { c.LogFormat = "xml" }, wantErr: "invalid log-format"},
		{name: "bad level", mutate: func(c *Config) { c.LogLevel = "trace" }, wantErr: "invalid log-level"},
		{name: "bad port", mutate: func(c *Config) { c.Port = 70000 }, wantErr: "invalid port"},
		{name: "root path", mutate: func(c *Config) { c.Path = "/" }, wantErr: "path must name a route"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			raw := valid
			raw.Declarations = append([]string(nil), valid.Declarations...)
			tc.mutate(&raw)

			cfg, err := NewConfig(raw)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			tc.check(t, cfg)
		})
	}
}

func TestNewApp_BuildsCatalog(t *testing.T) {
	a, logs := newTestApp(t, httpCodes(), nil)

	reg := a.Catalog()
	assert.Equal(t, 5, reg.Len())
	require.Len(t, reg.Groups(), 2)
	assert.Equal(t, "HTTP codes", reg.Groups()[0].Name)
	assert.Equal(t, "com.example.Maintenance", reg.Groups()[1].Name)
	assert.Contains(t, logs.String(), "Status code registry built.")
}

func TestNewApp_PanicsOnInvalidDeclarations(t *testing.T) {
	root := testutil.WriteFiles(t, map[string]string{"broken.hcl": `enum "x" {`})
	raw := DefaultConfig()
	raw.Declarations = []string{root}
	cfg, err := NewConfig(raw)
	require.NoError(t, err)

	assert.Panics(t, func() {
		NewApp(&testutil.SafeBuffer{}, cfg, hcl.NewLoader())
	})
}

func TestNewApp_SkipsMalformedUnit(t *testing.T) {
	files := httpCodes()
	files["zz_bad.hcl"] = `status "bad.Status" {
  number  = 1.5
  message = "fraction"
}`
	a, logs := newTestApp(t, files, nil)

	assert.Equal(t, 5, a.Catalog().Len())
	_, found := a.Catalog().ByNumber(1)
	assert.False(t, found)
	assert.Contains(t, logs.String(), "Skipping malformed declaration unit.")
}

func TestHandler_Lookup(t *testing.T) {
	a, _ := newTestApp(t, httpCodes(), nil)
	h := a.Handler()

	t.Run("wildcard search", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodGet, "/code-api?value=2x0")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

		var got []catalog.Code
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		want := []catalog.Code{
			{Number: 200, Color: "#EC26BD", Message: "Request succeeded"},
			{Number: 210, Color: "#83CF9C", Message: "Reset"},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("search mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("miss is an empty array", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodPost, "/code-api?value=404")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("no value lists groups", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodGet, "/code-api")
		require.Equal(t, http.StatusOK, rec.Code)

		var groups []catalog.Group
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &groups))
		require.Len(t, groups, 2)
		assert.Equal(t, "#EC26BD", groups[0].Theme)
		assert.Len(t, groups[0].Codes, 4)
	})

	t.Run("other methods rejected", func(t *testing.T) {
		rec := doRequest(t, h, http.MethodDelete, "/code-api?value=200")
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
		assert.Equal(t, "GET, POST", rec.Header().Get("Allow"))
	})
}

func TestHandler_Mapping(t *testing.T) {
	a, _ := newTestApp(t, httpCodes(), nil)

	rec := doRequest(t, a.Handler(), http.MethodGet, "/code-api/mapping")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, a.Catalog().SerializedIndex(), rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"503":{"code":503,"message":"Down for maintenance"}`)
}

func TestHandler_Export(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		a, _ := newTestApp(t, httpCodes(), nil)

		rec := doRequest(t, a.Handler(), http.MethodGet, "/code-api/export")
		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Contains(t, rec.Body.String(), "export is disabled")
	})

	t.Run("enabled", func(t *testing.T) {
		a, _ := newTestApp(t, httpCodes(), func(c *Config) {
			c.Exportable = true
			c.Title = "My Codes"
		})

		rec := doRequest(t, a.Handler(), http.MethodGet, "/code-api/export")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "attachment;fileName=My+Codes.txt", rec.Header().Get("Content-Disposition"))

		lines := strings.Split(strings.TrimRight(rec.Body.String(), "\n"), "\n")
		// separator + one line and one separator per code
		require.Len(t, lines, 1+2*5)
		assert.Equal(t, " 200 : Request succeeded", lines[1])
		assert.Equal(t, " 503 : Down for maintenance", lines[9])
	})
}

func TestHandler_HealthAndMetrics(t *testing.T) {
	a, _ := newTestApp(t, httpCodes(), nil)
	h := a.Handler()

	rec := doRequest(t, h, http.MethodGet, "/health")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK\n", rec.Body.String())

	doRequest(t, h, http.MethodGet, "/code-api?value=2xx")
	doRequest(t, h, http.MethodGet, "/code-api?value=2xx")

	rec = doRequest(t, h, http.MethodGet, "/metrics")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "codeapi_lookup_cache_hits_total 1")
	assert.Contains(t, body, "codeapi_lookup_cache_misses_total 1")
	assert.Contains(t, body, "codeapi_codes 5")
	assert.Contains(t, body, "codeapi_lookup_cache_entries 1")
}

func TestHandler_RequestID(t *testing.T) {
	a, logs := newTestApp(t, httpCodes(), nil)
	h := a.Handler()

	rec := doRequest(t, h, http.MethodGet, "/health")
	generated := rec.Header().Get(requestIDHeader)
	require.NotEmpty(t, generated)
	assert.Contains(t, logs.String(), "request_id="+generated)

	const given = "6f1c2a4e-6a7b-4a59-9c55-0a1f4c2d9e10"
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(requestIDHeader, given)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, given, rec.Header().Get(requestIDHeader))
}

func TestRun_DisabledPortReturns(t *testing.T) {
	a, logs := newTestApp(t, httpCodes(), func(c *Config) { c.Port = 0 })

	require.NoError(t, a.Run(context.Background()))
	assert.Contains(t, logs.String(), "Lookup server not started: disabled")
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	a, logs := newTestApp(t, httpCodes(), nil)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Serve(ctx, listener) }()

	url := "http://" + listener.Addr().String() + "/code-api?value=503"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url)
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("server did not shut down")
	}
	assert.Contains(t, logs.String(), "Lookup server shut down gracefully.")
}

func TestNewLogger(t *testing.T) {
	testCases := []struct {
		level, format string
		debugVisible  bool
		wantPrefix    string
	}{
		{level: "debug", format: "text", debugVisible: true, wantPrefix: "time="},
		{level: "warn", format: "text", debugVisible: false},
		{level: "nonsense", format: "json", debugVisible: false},
		{level: "debug", format: "json", debugVisible: true, wantPrefix: "{"},
	}

	for _, tc := range testCases {
		t.Run(tc.level+"/"+tc.format, func(t *testing.T) {
			buf := &testutil.SafeBuffer{}
			logger := newLogger(tc.level, tc.format, buf)

			logger.Debug("probe")
			if !tc.debugVisible {
				assert.Empty(t, buf.String())
				return
			}
			assert.True(t, strings.HasPrefix(buf.String(), tc.wantPrefix), buf.String())
			assert.Contains(t, buf.String(), "codeapi")
		})
	}
}

func TestWriteJSON_LogsEncodeFailure(t *testing.T) {
	logBuffer := &testutil.SafeBuffer{}
	req := httptest.NewRequest(http.MethodGet, "/code-api", nil)
	req = req.WithContext(ctxlog.WithLogger(req.Context(), testutil.NewLogger(t, logBuffer)))
	rec := httptest.NewRecorder()

	// Channels have no JSON encoding.
	writeJSON(rec, req, http.StatusOK, make(chan int))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, logBuffer.String(), "Writing JSON response failed.")
	assert.Contains(t, logBuffer.String(), "unsupported type")
}
