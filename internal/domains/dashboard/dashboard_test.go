package dashboard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kitabcloud-admin/internal/config"
	"kitabcloud-admin/internal/infrastructure/apiclient"
)

func newService(t *testing.T, status int, body string) *Service {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/dashboard", r.URL.Path)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	f := apiclient.NewFactory(config.APIConfig{BaseURL: srv.URL, Timeout: time.Second})
	return NewService(f.Client(nil))
}

func TestLoadSummary(t *testing.T) {
	svc := newService(t, http.StatusOK, `{
		"data": {
			"subscription": "1520.50",
			"book": 120,
			"user": 3400,
			"androiduser": 300,
			"iosuser": 100,
			"recentbooks": [{"id": 1, "title": "Kifo Kisimani", "author_name": "Kithaka"}],
			"recentauthor": [{"id": 2, "name": "Shaaban Robert"}, "junk"],
			"chartDataJson": "[{\"name\":\"Jan\",\"value\":4000},{\"name\":\"Feb\",\"value\":3000.5}]"
		}
	}`)

	sum, err := svc.Load(context.Background())
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("1520.50").Equal(sum.Revenue))

	books, ok := sum.Counter("book")
	require.True(t, ok)
	assert.Equal(t, int64(120), books.Value)
	assert.Equal(t, "/books", books.Route)

	podcasts, _ := sum.Counter("podcast")
	assert.Zero(t, podcasts.Value)

	require.Len(t, sum.Devices, 2)
	assert.Equal(t, "75", sum.Devices[0].Percent.String())
	assert.Equal(t, "25", sum.Devices[1].Percent.String())

	require.Len(t, sum.RecentBooks, 1)
	assert.Equal(t, "Kifo Kisimani", sum.RecentBooks[0]["title"])
	require.Len(t, sum.RecentAuthors, 1)

	require.Len(t, sum.Chart, 2)
	assert.Equal(t, "Feb", sum.Chart[1].Name)
	assert.Equal(t, "3000.5", sum.Chart[1].Value.String())
}

func TestLoadEmptySummary(t *testing.T) {
	svc := newService(t, http.StatusOK, `{"data": {}}`)

	sum, err := svc.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, sum.Revenue.IsZero())
	assert.Len(t, sum.Counters, len(counterSpecs))
	for _, c := range sum.Counters {
		assert.Zero(t, c.Value, c.Key)
	}
	assert.True(t, sum.Devices[0].Percent.IsZero())
	assert.Nil(t, sum.Chart)
}

func TestLoadFailure(t *testing.T) {
	svc := newService(t, http.StatusInternalServerError, `{}`)
	_, err := svc.Load(context.Background())
	assert.Error(t, err)
}
