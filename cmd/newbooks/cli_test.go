package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const classicPage = `<html><body><center>
<table><tr><td>You searched</td></tr></table>
<table><tr><td><table><tr><td><img src="book.gif"></td><td><table>
<tr><td>1.</td></tr>
<tr><td>Book</td></tr>
<tr><td>Death of a Poison Pen / by M.C. Beaton.</td></tr>
<tr><td>Beaton, M. C.</td></tr>
<tr><td>New York : Grand Central Publishing, 2024.</td></tr>
</table></td></tr></table></td></tr></table>
</center></body></html>`

const listPage = `<html><body>
<div><ul>
<li>1.</li><li>Book</li><li>Death of a Traitor / by M.C. Beaton.</li><li>Beaton, M. C.</li><li>2024.</li>
</ul></div>
</body></html>`

const listLayout = `layouts:
  - name: list-test
    version: 3
    blocks:
      - {tag: div, index: -1}
    cells:
      - {tag: ul, index: 0}
      - {tag: li, index: -1}
`

// Test helper: serve page for every request
func catalogServer(t *testing.T, status int, page string) *httptest.Server {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		w.Write([]byte(page))
	}))
	t.Cleanup(ts.Close)
	return ts
}

// Test helper: write a config pointing at serverURL
func writeCLIConfig(t *testing.T, serverURL, extra string) string {
	content := "url: " + strings.TrimPrefix(serverURL, "http://") + "/search?term=\n" +
		"media_type: {type: LM01, code: a}\n" +
		"authors:\n" +
		"  - last_name: Beaton\n" +
		"    first_name: M.C.\n" +
		extra
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// Test helper: run the CLI with every persistent flag set, since flag state
// is shared between runs of the same command tree
func runCLI(t *testing.T, configPath string, args ...string) (int, string, string) {
	full := []string{
		"--config", configPath,
		"--year", "2024",
		"--delay", "0s",
		"--layout", "classic",
		"--sort-by-media=false",
		"--debug=false",
	}
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		full = append([]string{args[0]}, full...)
		args = args[1:]
	}
	full = append(full, args...)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), full, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestCLI_Check(t *testing.T) {
	ts := catalogServer(t, http.StatusOK, classicPage)
	path := writeCLIConfig(t, ts.URL, "")

	code, stdout, stderr := runCLI(t, path)

	assert.Equal(t, 0, code, stderr)
	assert.Equal(t, "M.C. Beaton\n    Death of a Poison Pen\n\n", stdout)
}

func TestCLI_CheckCustomLayout(t *testing.T) {
	ts := catalogServer(t, http.StatusOK, listPage)
	path := writeCLIConfig(t, ts.URL, listLayout)

	code, stdout, stderr := runCLI(t, path, "--layout", "list-test")

	assert.Equal(t, 0, code, stderr)
	assert.Equal(t, "M.C. Beaton\n    Death of a Traitor\n\n", stdout)
}

func TestCLI_CheckClassicLayoutOnListPage(t *testing.T) {
	ts := catalogServer(t, http.StatusOK, listPage)
	path := writeCLIConfig(t, ts.URL, listLayout)

	code, stdout, _ := runCLI(t, path)

	assert.Equal(t, 0, code, "unrecognized pages do not fail the run")
	assert.True(t, strings.HasPrefix(stdout, "Manual search required for M.C. Beaton"))
}

func TestCLI_TransportError(t *testing.T) {
	ts := catalogServer(t, http.StatusInternalServerError, "")
	path := writeCLIConfig(t, ts.URL, "")

	code, stdout, stderr := runCLI(t, path)

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Error: failed to check M.C. Beaton: failed to fetch")
	assert.Contains(t, stderr, "500")
}

func TestCLI_MissingConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")

	code, _, stderr := runCLI(t, path)

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Error: config file not found")
}

func TestCLI_UnknownLayout(t *testing.T) {
	ts := catalogServer(t, http.StatusOK, classicPage)
	path := writeCLIConfig(t, ts.URL, "")

	code, _, stderr := runCLI(t, path, "--layout", "nope")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, `Error: unknown layout "nope"`)
}

func TestCLI_InvalidYear(t *testing.T) {
	ts := catalogServer(t, http.StatusOK, classicPage)
	path := writeCLIConfig(t, ts.URL, "")

	code, _, stderr := runCLI(t, path, "--year", "24")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Error: invalid --year")
}

func TestCLI_Validate(t *testing.T) {
	path := writeCLIConfig(t, "http://catalog.test", listLayout)

	code, stdout, stderr := runCLI(t, path, "validate", "--layout", "list-test", "--sort-by-media")

	assert.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "✓ Config OK: 1 author(s)")
	assert.Contains(t, stdout, "layout: list-test (v3)")
	assert.Contains(t, stdout, "catalog.test/search?term=Beaton,M.C.&limitbox_1=LM01+%3D+a")
}

func TestCLI_ValidateInvalidConfig(t *testing.T) {
	path := writeCLIConfig(t, "http://catalog.test", "layouts:\n  - name: broken\n")

	code, _, stderr := runCLI(t, path, "validate")

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "Error: invalid config file")
}
