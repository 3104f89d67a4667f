package leadsapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListInvitedDecodesLeads(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/leads/invited", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":2,"firstName":"Jane","lastName":"Smith","price":600,"status":"Invited","jobTitle":null,"jobId":1002,"dateCreated":"2025-03-30T10:00:00Z","dateUpdated":"2025-03-30T10:00:00Z"}]`))
	}))
	defer srv.Close()

	leads, err := NewClient(srv.URL + "/").ListInvited(context.Background())
	require.NoError(t, err)
	require.Len(t, leads, 1)

	assert.Equal(t, int64(2), leads[0].ID)
	assert.Equal(t, "Jane Smith", leads[0].FullName())
	assert.True(t, leads[0].Price.Equal(decimal.NewFromInt(600)))
	assert.Equal(t, "", leads[0].JobTitle)
	require.NotNil(t, leads[0].JobID)
	assert.Equal(t, int64(1002), *leads[0].JobID)
}

func TestListByStatusEscapesQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/leads", r.URL.Path)
		assert.Equal(t, "Declined", r.URL.Query().Get("status"))
		w.Write([]byte(`null`))
	}))
	defer srv.Close()

	leads, err := NewClient(srv.URL).ListByStatus(context.Background(), "Declined")
	require.NoError(t, err)
	assert.NotNil(t, leads)
	assert.Empty(t, leads)
}

func TestAcceptAndDecline(t *testing.T) {
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		paths = append(paths, r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	require.NoError(t, c.Accept(context.Background(), 2))
	require.NoError(t, c.Decline(context.Background(), 1))

	assert.Equal(t, []string{"/api/leads/accept/2", "/api/leads/decline/1"}, paths)
}

func TestProblemResponses(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/problem+json")
		if r.URL.Path == "/api/leads/accept/99" {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"title":"Not Found","detail":"lead 99 not found","status":404}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"title":"Internal Server Error","detail":"lead 3 cannot be accepted","status":500}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	err := c.Accept(context.Background(), 99)
	assert.True(t, errors.Is(err, ErrNotFound))

	err = c.Accept(context.Background(), 3)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
	assert.Contains(t, err.Error(), "cannot be accepted")
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestClientHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewClient(srv.URL).ListAccepted(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
