package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newProviderServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPProvider_CityLevel(t *testing.T) {
	srv := newProviderServer(t, http.StatusOK, `{"ip":"203.0.113.7","city":"Lisbon","region":"Lisbon","country_name":"Portugal","latitude":38.7223,"longitude":-9.1393}`)
	now := time.Unix(42, 0)
	p := NewHTTPProvider(srv.URL, nil)
	p.now = func() time.Time { return now }

	pos, err := p.Locate(context.Background(), DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, Position{
		Latitude:  38.7223,
		Longitude: -9.1393,
		Accuracy:  cityAccuracy,
		Timestamp: now,
		Place:     "Lisbon, Portugal",
	}, pos)
}

func TestHTTPProvider_CountryLevelAccuracy(t *testing.T) {
	srv := newProviderServer(t, http.StatusOK, `{"country_name":"Iceland","latitude":64.9,"longitude":-18.6}`)

	pos, err := NewHTTPProvider(srv.URL, nil).Locate(context.Background(), DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, float64(countryAccuracy), pos.Accuracy)
	require.Equal(t, "Iceland", pos.Place)
}

func TestHTTPProvider_Failures(t *testing.T) {
	cases := map[string]struct {
		status int
		body   string
	}{
		"non-2xx":        {http.StatusTooManyRequests, `{}`},
		"provider error": {http.StatusOK, `{"error":true,"reason":"RateLimited"}`},
		"no coordinates": {http.StatusOK, `{"city":"Nowhere"}`},
		"malformed":      {http.StatusOK, `not json`},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			srv := newProviderServer(t, tc.status, tc.body)

			_, err := NewHTTPProvider(srv.URL, nil).Locate(context.Background(), DefaultOptions())
			requireKind(t, err, PositionUnavailable)
		})
	}
}

func TestHTTPProvider_DeadlineIsTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := NewHTTPProvider(srv.URL, nil).Locate(ctx, DefaultOptions())
	requireKind(t, err, Timeout)
}

func TestHTTPProvider_ThroughLocator(t *testing.T) {
	srv := newProviderServer(t, http.StatusOK, `{"city":"Oslo","country_name":"Norway","latitude":59.91,"longitude":10.75}`)
	l := NewLocator(NewHTTPProvider(srv.URL, nil), WithPermission(Granted))

	pos, err := l.Locate(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Oslo, Norway", pos.Place)
}

func TestNewHTTPProvider_DefaultURL(t *testing.T) {
	p := NewHTTPProvider("", nil)
	require.Equal(t, DefaultProviderURL, p.url)
}
