package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/polisai/commission-board/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, CommissionsPath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"title":"A","category":"Web","description":"x\ny"},{"id":"b","title":"B","category":"Art","description":""}]`))
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL + "/").List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.Commission{
		{ID: "1", Title: "A", Category: "Web", Description: "x\ny"},
		{ID: "b", Title: "B", Category: "Art"},
	}, got)
}

func TestClientListErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"detail":"boom"}`, wantStatus: 500},
		{name: "not found", status: http.StatusNotFound, body: ``, wantStatus: 404},
		{name: "malformed body", status: http.StatusOK, body: `{"not":"a list"}`, wantStatus: 200},
		{name: "truncated body", status: http.StatusOK, body: `[{"id":1`, wantStatus: 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			got, err := NewClient(srv.URL).List(context.Background())
			assert.Nil(t, got)
			require.ErrorIs(t, err, domain.ErrFetchFailed)

			var fe *domain.FetchError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.wantStatus, fe.StatusCode)
			assert.Equal(t, srv.URL+CommissionsPath, fe.URL)
		})
	}
}

func TestClientListNullBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`null`))
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL).List(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestClientListNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	_, err := NewClient(base, WithHTTPClient(&http.Client{})).List(context.Background())
	require.ErrorIs(t, err, domain.ErrFetchFailed)

	var fe *domain.FetchError
	require.ErrorAs(t, err, &fe)
	assert.Zero(t, fe.StatusCode)
}

func TestClientURL(t *testing.T) {
	assert.Equal(t, "/api/commissions", NewClient("").URL())
	assert.Equal(t, "http://api.local/api/commissions", NewClient("http://api.local///").URL())
}
