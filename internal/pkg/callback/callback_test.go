package callback

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"presentation-service-go/internal/pkg/metrics"
	"presentation-service-go/internal/pkg/retry"
)

type received struct {
	path        string
	clientID    string
	clientKey   string
	filename    string
	contentType string
	data        []byte
}

func newReceiver(t *testing.T, status int) (*httptest.Server, chan received) {
	t.Helper()
	ch := make(chan received, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got := received{
			path:      r.URL.Path,
			clientID:  r.Header.Get("X-Client-Id"),
			clientKey: r.Header.Get("X-Client-Key"),
		}
		if file, header, err := r.FormFile(FileField); err == nil {
			got.filename = header.Filename
			got.contentType = header.Header.Get("Content-Type")
			got.data, _ = io.ReadAll(file)
		}
		ch <- got
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, ch
}

func TestNewSender(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
		want    string
	}{
		{name: "empty url", cfg: Config{}, wantErr: true},
		{name: "no scheme", cfg: Config{URL: "crm.local"}, wantErr: true},
		{name: "ftp", cfg: Config{URL: "ftp://crm.local"}, wantErr: true},
		{name: "bad port", cfg: Config{URL: "http://crm.local", Port: "http"}, wantErr: true},
		{name: "plain", cfg: Config{URL: "https://crm.local/api/presentations"}, want: "https://crm.local/api/presentations/p-1"},
		{name: "port override", cfg: Config{URL: "http://crm.local:80", Port: "8000"}, want: "http://crm.local:8000/p-1"},
		{name: "trailing slash", cfg: Config{URL: "http://crm.local/cb/"}, want: "http://crm.local/cb/p-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := NewSender(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, s.Endpoint("p-1"))
		})
	}

	_, err := NewSender(Config{})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestSender_Send(t *testing.T) {
	srv, ch := newReceiver(t, http.StatusOK)
	s, err := NewSender(Config{
		URL:             srv.URL + "/callback",
		ClientID:        "client",
		ClientKey:       "secret",
		ClientIDHeader:  "X-Client-Id",
		ClientKeyHeader: "X-Client-Key",
	})
	require.NoError(t, err)

	before := testutil.ToFloat64(metrics.CallbackRequestsTotal.WithLabelValues("success"))
	require.NoError(t, s.Send(context.Background(), "p-42", []byte("%PDF-1.3")))

	got := <-ch
	assert.Equal(t, "/callback/p-42", got.path)
	assert.Equal(t, "client", got.clientID)
	assert.Equal(t, "secret", got.clientKey)
	assert.Equal(t, FileName, got.filename)
	assert.Equal(t, ContentType, got.contentType)
	assert.Equal(t, []byte("%PDF-1.3"), got.data)
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.CallbackRequestsTotal.WithLabelValues("success")))
}

func TestSender_Send_WithoutCredentials(t *testing.T) {
	srv, ch := newReceiver(t, http.StatusNoContent)
	// ключ без идентификатора не отправляется
	s, err := NewSender(Config{URL: srv.URL, ClientKey: "secret", ClientIDHeader: "X-Client-Id", ClientKeyHeader: "X-Client-Key"})
	require.NoError(t, err)

	require.NoError(t, s.Send(context.Background(), "p-1", []byte("pdf")))
	got := <-ch
	assert.Empty(t, got.clientID)
	assert.Empty(t, got.clientKey)
}

func TestSender_Send_ErrorStatus(t *testing.T) {
	srv, ch := newReceiver(t, http.StatusInternalServerError)
	s, err := NewSender(Config{URL: srv.URL})
	require.NoError(t, err)

	err = s.Send(context.Background(), "p-1", []byte("pdf"))
	<-ch

	var statusErr *retry.StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusInternalServerError, statusErr.StatusCode)
}

func TestSender_Send_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	s, err := NewSender(Config{URL: addr})
	require.NoError(t, err)
	assert.Error(t, s.Send(context.Background(), "p-1", []byte("pdf")))
}

func TestSender_EndpointEscapesID(t *testing.T) {
	s, err := NewSender(Config{URL: "http://crm.local"})
	require.NoError(t, err)

	u, err := url.Parse(s.Endpoint("a b"))
	require.NoError(t, err)
	assert.Equal(t, "/a b", u.Path)
}
