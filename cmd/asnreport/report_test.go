package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Veraticus/asnreport/internal/common"
	"github.com/Veraticus/asnreport/internal/config"
	"github.com/Veraticus/asnreport/internal/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newPaperlessServer serves a small archive: two correspondents, a select
// field with one option and three documents.
func newPaperlessServer(t *testing.T) *httptest.Server {
	t.Helper()

	reply := func(body any) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") != "Token secret" {
				w.WriteHeader(http.StatusUnauthorized)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(body)
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/correspondents/", reply(map[string]any{
		"count": 2,
		"next":  nil,
		"results": []map[string]any{
			{"id": 1, "name": "Acme"},
			{"id": 2, "name": "bank"},
		},
	}))
	mux.HandleFunc("/api/custom_fields/3/", reply(map[string]any{
		"id":        3,
		"name":      "Storage",
		"data_type": "select",
		"extra_data": map[string]any{
			"select_options": []map[string]any{{"id": "opt1", "label": "Box A"}},
		},
	}))
	mux.HandleFunc("/api/documents/", reply(map[string]any{
		"count": 3,
		"next":  nil,
		"results": []map[string]any{
			{"id": 10, "archive_serial_number": 5, "correspondent": 1, "title": "Invoice", "created": "2024-01-02",
				"custom_fields": []map[string]any{{"field": 3, "value": "opt1"}}},
			{"id": 11, "archive_serial_number": 7, "correspondent": 2, "title": "Statement", "created": "2024-01-01",
				"custom_fields": []map[string]any{{"field": 3, "value": "opt1"}}},
			{"id": 12, "archive_serial_number": 9, "correspondent": nil, "title": "Note", "created": "2024-03-01",
				"custom_fields": []map[string]any{}},
		},
	}))

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// setupViper points configuration at srv and a temporary output directory.
func setupViper(t *testing.T, srv *httptest.Server) string {
	t.Helper()

	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("PAPERLESS_URL", "")
	t.Setenv("PAPERLESS_TOKEN", "")
	t.Setenv("PAPERLESS_TOKEN_FILE", "")

	dir := t.TempDir()
	viper.Set(config.KeyPaperlessURL, srv.URL+"/api")
	viper.Set(config.KeyPaperlessToken, "secret")
	viper.Set(config.KeyOutputDir, dir)
	return dir
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func reportNames(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestReportCmdFlagDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cmd := reportCmd()

	tests := []struct {
		flag string
		want string
	}{
		{"asn-from", "1"},
		{"asn-to", "9999"},
		{"field", "3"},
		{"no-grouping", "false"},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			f := cmd.Flags().Lookup(tt.flag)
			require.NotNil(t, f)
			assert.Equal(t, tt.want, f.DefValue)
		})
	}

	opts := runOptions("report")
	assert.Equal(t, 1, opts.ASNFrom)
	assert.Equal(t, 9999, opts.ASNTo)
	assert.Equal(t, 3, opts.FieldID)
	assert.False(t, opts.NoGrouping)
}

func TestReportCmdGrouped(t *testing.T) {
	srv := newPaperlessServer(t)
	dir := setupViper(t, srv)

	out, err := execute(t, reportCmd())
	require.NoError(t, err)

	names := reportNames(t, dir)
	assert.Len(t, names, 5)
	assert.Contains(t, out, "Data exported to ")
	assert.Contains(t, out, "5 reports written")

	var flat, boxA, unknown int
	for _, name := range names {
		assert.Equal(t, ".csv", filepath.Ext(name))
		switch {
		case strings.HasSuffix(name, "_Box A_grouped_by_Correspondent_ASN_5-7.csv"),
			strings.HasSuffix(name, "_Box A_grouped_by_ASN_ASN_5-7.csv"):
			boxA++
		case strings.HasSuffix(name, "_Unknown_grouped_by_Correspondent_ASN_9-9.csv"),
			strings.HasSuffix(name, "_Unknown_grouped_by_ASN_ASN_9-9.csv"):
			unknown++
		case strings.HasSuffix(name, "_grouped_by_Correspondent_ASN_5-9.csv"):
			flat++
		}
	}
	assert.Equal(t, 1, flat)
	assert.Equal(t, 2, boxA)
	assert.Equal(t, 2, unknown)
}

func TestReportCmdNoGrouping(t *testing.T) {
	srv := newPaperlessServer(t)
	dir := setupViper(t, srv)

	_, err := execute(t, reportCmd(), "--no-grouping", "--asn-from", "1", "--asn-to", "100")
	require.NoError(t, err)

	names := reportNames(t, dir)
	require.Len(t, names, 1)

	data, err := os.ReadFile(filepath.Join(dir, names[0]))
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, report.ColumnCorrespondent)
	assert.NotContains(t, content, "Storage")
	assert.Contains(t, content, "Acme\t2024-01-02\tInvoice\t5")
}

func TestReportCmdInvalidRange(t *testing.T) {
	srv := newPaperlessServer(t)
	dir := setupViper(t, srv)

	_, err := execute(t, reportCmd(), "--asn-from", "10", "--asn-to", "2")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
	assert.Empty(t, reportNames(t, dir))
}

func TestReportCmdMissingConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("PAPERLESS_URL", "")
	t.Setenv("PAPERLESS_TOKEN", "")
	t.Setenv("PAPERLESS_TOKEN_FILE", "")

	_, err := execute(t, reportCmd())
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrMissingConfig)
	assert.Contains(t, errorLine(err), "PAPERLESS_URL")
}

func TestReportCmdUnauthorized(t *testing.T) {
	srv := newPaperlessServer(t)
	dir := setupViper(t, srv)
	viper.Set(config.KeyPaperlessToken, "wrong")

	_, err := execute(t, reportCmd())
	require.Error(t, err)

	var apiErr *common.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Contains(t, err.Error(), "failed to fetch correspondents")
	assert.Empty(t, reportNames(t, dir))
}

func TestErrorLine(t *testing.T) {
	err := &common.APIError{Resource: "documents", StatusCode: 500, Body: "line one\nline two"}
	assert.Equal(t, "Error: failed to fetch documents: status 500: line one line two", errorLine(err))
}
