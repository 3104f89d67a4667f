package cli

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, srv *httptest.Server, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--api", srv.URL}, args...))
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		listCmd.Flags().Set("status", "Invited")
	})

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestListCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Declined", r.URL.Query().Get("status"))
		w.Write([]byte(`[{"id":4,"firstName":"Alice","lastName":"Johnson","suburb":"Perth","category":"Painting","price":500,"status":"Declined"}]`))
	}))
	defer srv.Close()

	out, err := execute(t, srv, "list", "--status", "Declined")
	require.NoError(t, err)
	assert.Contains(t, out, "Alice Johnson")
	assert.Contains(t, out, "500.00")
	assert.Contains(t, out, "Total: 1 lead(s)")
}

func TestAcceptCommand(t *testing.T) {
	var path string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
	}))
	defer srv.Close()

	out, err := execute(t, srv, "accept", "2")
	require.NoError(t, err)
	assert.Equal(t, "/api/leads/accept/2", path)
	assert.Contains(t, out, "Lead 2 accepted")
}

func TestDeclineCommandReportsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"title":"Not Found","detail":"lead 99 not found","status":404}`))
	}))
	defer srv.Close()

	_, err := execute(t, srv, "decline", "99")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lead 99 not found")
}

func TestParseID(t *testing.T) {
	id, err := parseID("42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = parseID("abc")
	assert.Error(t, err)
}
