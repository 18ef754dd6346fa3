package pkg_test

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vulnboard/vulnboard/pkg"
	"github.com/vulnboard/vulnboard/pkg/db"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var buf bytes.Buffer
	app := pkg.NewApp("dev")
	app.Writer = &buf
	app.ErrWriter = io.Discard
	err := app.Run(append([]string{"vulnboard", "--config", ""}, args...))
	return buf.String(), err
}

func TestDurationCommand(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr string
	}{
		{
			name: "gitlab shorthand",
			args: []string{"1w", "2d"},
			want: "ISO-8601: P1W2D\nHuman:    1w 2d\nSeconds:  201600\n",
		},
		{
			name: "iso8601",
			args: []string{"PT90M"},
			want: "ISO-8601: PT90M\nHuman:    90m\nSeconds:  5400\n",
		},
		{
			name:    "invalid iso8601",
			args:    []string{"P1X"},
			wantErr: "duration parse error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := run(t, append([]string{"duration"}, tt.args...)...)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEstimateCommand(t *testing.T) {
	got, err := run(t, "estimate", "-o", "1d", "-l", "2d", "-p", "6d")
	require.NoError(t, err)
	assert.Equal(t, "Expected: P2DT4H (2d 4h)\nStd dev:  6h 40m\n", got)

	_, err = run(t, "estimate", "-o", "1w", "-l", "2d", "-p", "6d")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "optimistic estimate (1w) exceeds likely estimate (2d)")

	cacheDir := t.TempDir()
	_, err = run(t, "--cache-dir", cacheDir, "estimate", "-o", "1d", "-l", "2d", "-p", "6d", "--store", "CVE-2021-44228")
	require.NoError(t, err)

	require.NoError(t, db.Init(cacheDir))
	defer db.Close()
	e, err := db.Config{}.GetEstimate("CVE-2021-44228")
	require.NoError(t, err)
	assert.Equal(t, "P2DT4H", e.Expected().FormatISO8601())
}

func TestImportAndPatches(t *testing.T) {
	cacheDir := t.TempDir()

	_, err := run(t, "--cache-dir", cacheDir, "import")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import directory is required")

	_, err = run(t, "--cache-dir", cacheDir, "import", "vulndb/testdata/happy")
	require.NoError(t, err)

	got, err := run(t, "--cache-dir", cacheDir, "patches", "--format", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"lodash": {
			"nb_vulns": 2,
			"same_minor": {"version": "4.17.21", "solve": 2},
			"same_major": {"version": "4.17.21", "solve": 2},
			"latest": {"version": "4.17.21", "solve": 2}
		},
		"express": {
			"nb_vulns": 1,
			"same_minor": {"version": "4.17.3", "solve": 1},
			"same_major": {"version": "4.17.3", "solve": 1},
			"latest": {"version": "4.17.3", "solve": 1}
		}
	}`, got)

	got, err = run(t, "--cache-dir", cacheDir, "patches", "--format", "json", "--source", "nvd")
	require.NoError(t, err)
	assert.Contains(t, got, `"version": "4.17.19"`)

	got, err = run(t, "--cache-dir", cacheDir, "versions", "--format", "json", "lodash")
	require.NoError(t, err)
	assert.JSONEq(t, `{"lodash": {
		"4.17.19": ["CVE-2020-8203"],
		"4.17.21": ["CVE-2021-23337"]
	}}`, got)

	_, err = run(t, "--cache-dir", cacheDir, "versions", "react")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no patch data for react")

	_, err = run(t, "--cache-dir", cacheDir, "patches", "--format", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown format "xml"`)
}

func newBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/patch-finder/scan", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"lodash":{
			"CVE-2020-8203 (nvd)":{"affected":["< 4.17.19"],"fix":[">= 4.17.19"]},
			"CVE-2021-23337 (ghsa)":{"affected":["< 4.17.21"],"fix":[">= 4.17.21"]}
		}}`)
	})
	mux.HandleFunc("/api/packages", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"name":"lodash","version":"4.17.15"}]`)
	})
	mux.HandleFunc("/api/vulnerabilities", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[
			{"id":"CVE-2020-8203","severity":"HIGH"},
			{"id":"CVE-2021-23337","severity":"high"}
		]`)
	})
	mux.HandleFunc("/api/assessments", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `[{"vuln_id":"CVE-2020-8203","status":"affected",
			"effort":{"optimistic":"4h","likely":"1d","pessimistic":"2d"}}]`)
	})
	mux.HandleFunc("/api/documents", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("name") != "sbom.json" {
			http.NotFound(w, r)
			return
		}
		_, _ = io.WriteString(w, `{"bomFormat":"CycloneDX"}`)
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func TestFetchCommand(t *testing.T) {
	color.NoColor = true
	ts := newBackend(t)
	cacheDir := t.TempDir()

	got, err := run(t, "--cache-dir", cacheDir, "fetch", "--api-url", ts.URL)
	require.NoError(t, err)
	assert.Equal(t, "HIGH  2\n", got)

	got, err = run(t, "--cache-dir", cacheDir, "patches", "--format", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"lodash": {
			"nb_vulns": 2,
			"same_minor": {"version": "4.17.21", "solve": 2},
			"same_major": {"version": "4.17.21", "solve": 2},
			"latest": {"version": "4.17.21", "solve": 2}
		}
	}`, got)

	require.NoError(t, db.Init(cacheDir))
	defer db.Close()
	e, err := db.Config{}.GetEstimate("CVE-2020-8203")
	require.NoError(t, err)
	assert.Equal(t, "P1D", e.Likely.FormatISO8601())
}

func TestDocumentCommand(t *testing.T) {
	ts := newBackend(t)

	got, err := run(t, "document", "--api-url", ts.URL, "sbom.json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"bomFormat":"CycloneDX"}`, got)

	output := filepath.Join(t.TempDir(), "sbom.json")
	_, err = run(t, "document", "--api-url", ts.URL, "-o", output, "sbom.json")
	require.NoError(t, err)
	b, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.JSONEq(t, `{"bomFormat":"CycloneDX"}`, string(b))

	_, err = run(t, "document", "--api-url", ts.URL, "missing.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")

	_, err = run(t, "document")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "document name is required")
}
