package apifyimpl

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thegab/tiktok-scraper/internal/apify"
	"github.com/thegab/tiktok-scraper/internal/domain"
	pkgerrors "github.com/thegab/tiktok-scraper/pkg/errors"
	"github.com/thegab/tiktok-scraper/pkg/logger"
)

// backend is a fake Apify API recording every call. Status GETs walk the
// statuses slice and stick on its last element.
type backend struct {
	mu       sync.Mutex
	statuses []domain.JobStatus
	items    string

	submitCode  int
	statusCode  int
	datasetCode int

	submitHits  int
	statusHits  int
	datasetHits int

	gotAuth  string
	gotInput map[string]any
}

func (b *backend) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()

		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/acts/apidojo/tiktok-scraper/runs":
			b.submitHits++
			b.gotAuth = r.Header.Get("Authorization")
			_ = json.NewDecoder(r.Body).Decode(&b.gotInput)
			if b.submitCode != 0 {
				w.WriteHeader(b.submitCode)
				return
			}
			fmt.Fprint(w, `{"data":{"id":"run-1"}}`)

		case r.Method == http.MethodGet && r.URL.Path == "/acts/apidojo/tiktok-scraper/runs/run-1/dataset/items":
			b.datasetHits++
			if b.datasetCode != 0 {
				w.WriteHeader(b.datasetCode)
				return
			}
			fmt.Fprint(w, b.items)

		case r.Method == http.MethodGet && r.URL.Path == "/acts/apidojo/tiktok-scraper/runs/run-1":
			idx := b.statusHits
			b.statusHits++
			if b.statusCode != 0 {
				w.WriteHeader(b.statusCode)
				return
			}
			status := b.statuses[min(idx, len(b.statuses)-1)]
			fmt.Fprintf(w, `{"data":{"status":%q}}`, string(status))

		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	}
}

func (b *backend) counts() (submit, status, dataset int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.submitHits, b.statusHits, b.datasetHits
}

func newTestClient(url string) *ApifyImpl {
	return &ApifyImpl{
		httpClient:   &http.Client{Timeout: 5 * time.Second},
		logger:       logger.New(logger.Opts{}),
		token:        "test-token",
		actorID:      "apidojo/tiktok-scraper",
		baseURL:      url,
		pollInterval: 10 * time.Millisecond,
		maxWait:      time.Second,
	}
}

func TestScrapeHashtagSuccess(t *testing.T) {
	be := &backend{
		statuses: []domain.JobStatus{domain.JobStatusRunning, domain.JobStatusRunning, domain.JobStatusSucceeded},
		items:    `[{"id":7312345678901234567,"description":"Loved the ramen at kenzo last night!","diggCount":120},{"id":42,"description":"pizza night"}]`,
	}
	server := httptest.NewServer(be.handler(t))
	defer server.Close()

	client := newTestClient(server.URL)
	records, status, err := client.ScrapeHashtag(context.Background(), "torontofood", 50)

	require.NoError(t, err)
	assert.Equal(t, domain.JobStatusSucceeded, status)
	require.Len(t, records, 2)

	// Large video ids must survive decoding intact.
	assert.Equal(t, json.Number("7312345678901234567"), records[0]["id"])
	assert.Equal(t, "pizza night", records[1]["description"])

	submit, statusHits, dataset := be.counts()
	assert.Equal(t, 1, submit)
	assert.Equal(t, 3, statusHits)
	assert.Equal(t, 1, dataset)

	assert.Equal(t, "Bearer test-token", be.gotAuth)
	assert.Equal(t, "torontofood", be.gotInput["hashtag"])
	assert.Equal(t, float64(50), be.gotInput["videos"])
	proxy, ok := be.gotInput["proxy"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, proxy["useApifyProxy"])
	assert.Equal(t, []any{"RESIDENTIAL"}, proxy["apifyProxyGroups"])
}

func TestScrapeHashtagRemoteFailure(t *testing.T) {
	be := &backend{
		statuses: []domain.JobStatus{domain.JobStatusRunning, domain.JobStatusFailed},
	}
	server := httptest.NewServer(be.handler(t))
	defer server.Close()

	client := newTestClient(server.URL)
	records, status, err := client.ScrapeHashtag(context.Background(), "torontofood", 50)

	require.ErrorIs(t, err, apify.ErrRunFailed)
	assert.Equal(t, domain.JobStatusFailed, status)
	assert.Empty(t, records)

	_, _, dataset := be.counts()
	assert.Equal(t, 0, dataset)
}

func TestScrapeHashtagTimeout(t *testing.T) {
	be := &backend{
		statuses: []domain.JobStatus{domain.JobStatusRunning},
	}
	server := httptest.NewServer(be.handler(t))
	defer server.Close()

	client := newTestClient(server.URL)
	client.pollInterval = 25 * time.Millisecond
	client.maxWait = 60 * time.Millisecond

	records, status, err := client.ScrapeHashtag(context.Background(), "torontofood", 50)

	require.ErrorIs(t, err, apify.ErrRunTimedOut)
	assert.Equal(t, domain.JobStatusTimedOut, status)
	assert.Empty(t, records)

	// The loop may check status at most budget/interval + 1 times.
	_, statusHits, dataset := be.counts()
	assert.GreaterOrEqual(t, statusHits, 1)
	assert.LessOrEqual(t, statusHits, 3)
	assert.Equal(t, 0, dataset)
}

func TestScrapeHashtagMissingToken(t *testing.T) {
	be := &backend{}
	server := httptest.NewServer(be.handler(t))
	defer server.Close()

	client := newTestClient(server.URL)
	client.token = ""

	records, status, err := client.ScrapeHashtag(context.Background(), "torontofood", 50)

	require.ErrorIs(t, err, apify.ErrMissingToken)
	assert.Equal(t, domain.JobStatusFailed, status)
	assert.Empty(t, records)

	submit, statusHits, dataset := be.counts()
	assert.Zero(t, submit+statusHits+dataset, "no request may be attempted without a token")
}

func TestScrapeHashtagSubmitError(t *testing.T) {
	be := &backend{submitCode: http.StatusInternalServerError}
	server := httptest.NewServer(be.handler(t))
	defer server.Close()

	client := newTestClient(server.URL)
	records, status, err := client.ScrapeHashtag(context.Background(), "torontofood", 50)

	require.Error(t, err)
	assert.Equal(t, "APIFY_SUBMIT", pkgerrors.GetCode(err))
	assert.Equal(t, domain.JobStatusFailed, status)
	assert.Empty(t, records)

	_, statusHits, _ := be.counts()
	assert.Equal(t, 0, statusHits)
}

func TestScrapeHashtagSubmitBadResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "not json")
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, status, err := client.ScrapeHashtag(context.Background(), "torontofood", 50)

	require.Error(t, err)
	assert.Equal(t, "APIFY_SUBMIT", pkgerrors.GetCode(err))
	assert.Equal(t, domain.JobStatusFailed, status)
}

func TestScrapeHashtagPollTransportError(t *testing.T) {
	be := &backend{statusCode: http.StatusBadGateway}
	server := httptest.NewServer(be.handler(t))
	defer server.Close()

	client := newTestClient(server.URL)
	records, status, err := client.ScrapeHashtag(context.Background(), "torontofood", 50)

	require.Error(t, err)
	assert.Equal(t, "APIFY_POLL", pkgerrors.GetCode(err))
	assert.Equal(t, domain.JobStatusFailed, status)
	assert.Empty(t, records)
}

func TestScrapeHashtagDatasetError(t *testing.T) {
	be := &backend{
		statuses:    []domain.JobStatus{domain.JobStatusSucceeded},
		datasetCode: http.StatusInternalServerError,
	}
	server := httptest.NewServer(be.handler(t))
	defer server.Close()

	client := newTestClient(server.URL)
	records, status, err := client.ScrapeHashtag(context.Background(), "torontofood", 50)

	require.Error(t, err)
	assert.Equal(t, "APIFY_FETCH", pkgerrors.GetCode(err))
	assert.Equal(t, domain.JobStatusFailed, status)
	assert.Empty(t, records)

	_, _, dataset := be.counts()
	assert.Equal(t, 1, dataset)
}

func TestScrapeHashtagContextCancelled(t *testing.T) {
	be := &backend{
		statuses: []domain.JobStatus{domain.JobStatusRunning},
	}
	server := httptest.NewServer(be.handler(t))
	defer server.Close()

	client := newTestClient(server.URL)
	client.pollInterval = 500 * time.Millisecond
	client.maxWait = 10 * time.Second

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	records, status, err := client.ScrapeHashtag(ctx, "torontofood", 50)

	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, domain.JobStatusFailed, status)
	assert.Empty(t, records)
}
