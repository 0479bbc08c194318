package pipelineimpl

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/thegab/tiktok-scraper/internal/apify"
	"github.com/thegab/tiktok-scraper/internal/domain"
	"github.com/thegab/tiktok-scraper/internal/extractor"
	mock_notifier "github.com/thegab/tiktok-scraper/internal/notifier/mocks"
	mock_post "github.com/thegab/tiktok-scraper/internal/repositories/post/mocks"
	mock_restaurant "github.com/thegab/tiktok-scraper/internal/repositories/restaurant/mocks"
	"github.com/thegab/tiktok-scraper/internal/sink"
	"github.com/thegab/tiktok-scraper/internal/uploader"
	"github.com/thegab/tiktok-scraper/pkg/config"
	"github.com/thegab/tiktok-scraper/pkg/logger"
)

type scrapeResult struct {
	records []domain.RawVideo
	status  domain.JobStatus
	err     error
}

// fakeApify returns a canned result per hashtag and records the order in
// which hashtags were scraped.
type fakeApify struct {
	results map[string]scrapeResult
	scraped []string
}

var _ apify.Client = (*fakeApify)(nil)

func (f *fakeApify) ScrapeHashtag(_ context.Context, hashtag string, _ int) ([]domain.RawVideo, domain.JobStatus, error) {
	f.scraped = append(f.scraped, hashtag)
	res, ok := f.results[hashtag]
	if !ok {
		return nil, domain.JobStatusFailed, apify.ErrRunFailed
	}
	return res.records, res.status, res.err
}

func rawVideo(id, caption string, likes int) domain.RawVideo {
	return domain.RawVideo{
		"id":          id,
		"videoUrl":    "https://www.tiktok.com/@u/video/" + id,
		"description": caption,
		"diggCount":   json.Number("0"),
		"likes":       likes,
	}
}

type pipelineMocks struct {
	postRepo       *mock_post.MockRepository
	restaurantRepo *mock_restaurant.MockRepository
	notifier       *mock_notifier.MockClient
}

func newTestPipeline(t *testing.T, cfg *config.Config, client apify.Client) (*PipelineImpl, pipelineMocks) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mocks := pipelineMocks{
		postRepo:       mock_post.NewMockRepository(ctrl),
		restaurantRepo: mock_restaurant.NewMockRepository(ctrl),
		notifier:       mock_notifier.NewMockClient(ctrl),
	}

	log := logger.New(logger.Opts{})
	up := uploader.New(uploader.Opts{
		PostRepo:       mocks.postRepo,
		RestaurantRepo: mocks.restaurantRepo,
		Logger:         log,
	})

	p := New(Opts{
		Apify:     client,
		Extractor: extractor.New(extractor.DefaultLexicon()),
		Uploader:  up,
		Sink:      sink.New(sink.Opts{Config: cfg, Logger: log}),
		Notifier:  mocks.notifier,
		Logger:    log,
		Config:    cfg,
	})
	return p, mocks
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := &config.Config{}
	cfg.Apify.Token = "test-token"
	cfg.Scraper.Hashtags = []string{"torontofood", "torontorestaurants"}
	cfg.Scraper.MaxPostsPerHashtag = 50
	cfg.Scraper.OutputDir = t.TempDir()
	return cfg
}

func TestRunHappyPath(t *testing.T) {
	cfg := testConfig(t)
	client := &fakeApify{results: map[string]scrapeResult{
		"torontofood": {
			records: []domain.RawVideo{
				rawVideo("1", "Loved the ramen at kenzo last night!", 10),
				rawVideo("2", "just vibes today", 0),
			},
			status: domain.JobStatusSucceeded,
		},
		"torontorestaurants": {
			records: []domain.RawVideo{rawVideo("3", "dinner at boku tonight", 5)},
			status:  domain.JobStatusSucceeded,
		},
	}}

	p, mocks := newTestPipeline(t, cfg, client)

	mocks.postRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil).Times(3)
	// Kenzo Ramen + Ramen Restaurant from post 1, Boku Sushi from post 3.
	mocks.restaurantRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil).Times(3)
	mocks.notifier.EXPECT().
		NotifyRunSummary(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	summary, err := p.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, summary)

	assert.Equal(t, []string{"torontofood", "torontorestaurants"}, client.scraped)
	assert.Equal(t, 3, summary.TotalPosts)
	assert.Equal(t, 2, summary.PostsWithRestaurants)
	assert.Equal(t, "66.7%", summary.ExtractionRate)
	assert.Equal(t, 3, summary.UniqueRestaurants)
}

func TestRunFailedHashtagIsSkipped(t *testing.T) {
	cfg := testConfig(t)
	client := &fakeApify{results: map[string]scrapeResult{
		"torontofood": {status: domain.JobStatusTimedOut, err: apify.ErrRunTimedOut},
		"torontorestaurants": {
			records: []domain.RawVideo{rawVideo("9", "pizza at giulio", 1)},
			status:  domain.JobStatusSucceeded,
		},
	}}

	p, mocks := newTestPipeline(t, cfg, client)

	mocks.postRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	// giulio + pizza
	mocks.restaurantRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	mocks.notifier.EXPECT().
		NotifyRunSummary(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	summary, err := p.Run(context.Background())
	require.NoError(t, err)

	// The timed-out hashtag contributes nothing, the second is still scraped.
	assert.Equal(t, []string{"torontofood", "torontorestaurants"}, client.scraped)
	assert.Equal(t, 1, summary.TotalPosts)
}

func TestRunMissingTokenIsFatal(t *testing.T) {
	cfg := testConfig(t)
	cfg.Apify.Token = ""
	client := &fakeApify{}

	// No repo or notifier expectations: a precondition failure must have no
	// side effects.
	p, _ := newTestPipeline(t, cfg, client)

	summary, err := p.Run(context.Background())
	require.ErrorIs(t, err, apify.ErrMissingToken)
	assert.Nil(t, summary)
	assert.Empty(t, client.scraped)
}

func TestRunDatasetFileMode(t *testing.T) {
	cfg := testConfig(t)
	cfg.Apify.Token = ""

	raws := []domain.RawVideo{rawVideo("7", "hot pot with the crew", 3)}
	data, err := json.Marshal(raws)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "dataset.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	cfg.Scraper.DatasetFile = path

	client := &fakeApify{}
	p, mocks := newTestPipeline(t, cfg, client)

	var stored domain.Post
	mocks.postRepo.EXPECT().
		Upsert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, post domain.Post) error {
			stored = post
			return nil
		})
	mocks.restaurantRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil).Times(1)
	mocks.notifier.EXPECT().
		NotifyRunSummary(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	summary, err := p.Run(context.Background())
	require.NoError(t, err)

	// Dataset mode never touches the scrape backend, even without a token.
	assert.Empty(t, client.scraped)
	assert.Equal(t, 1, summary.TotalPosts)
	assert.Equal(t, domain.SourceDirect, stored.Source)
	assert.Equal(t, "Hot Pot Restaurant", stored.Restaurants[0].Name)
}

func TestRunDatasetFileMissing(t *testing.T) {
	cfg := testConfig(t)
	cfg.Scraper.DatasetFile = filepath.Join(t.TempDir(), "nope.json")

	p, _ := newTestPipeline(t, cfg, &fakeApify{})

	_, err := p.Run(context.Background())
	assert.Error(t, err)
}

func TestRunWritesArtifacts(t *testing.T) {
	cfg := testConfig(t)
	client := &fakeApify{results: map[string]scrapeResult{
		"torontofood":        {records: []domain.RawVideo{rawVideo("1", "bbq ribs", 2)}, status: domain.JobStatusSucceeded},
		"torontorestaurants": {status: domain.JobStatusFailed, err: apify.ErrRunFailed},
	}}

	p, mocks := newTestPipeline(t, cfg, client)

	mocks.postRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mocks.restaurantRepo.EXPECT().Upsert(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mocks.notifier.EXPECT().
		NotifyRunSummary(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil)

	_, err := p.Run(context.Background())
	require.NoError(t, err)

	entries, err := os.ReadDir(cfg.Scraper.OutputDir)
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	require.Len(t, names, 3)
	assert.Regexp(t, `^posts_raw_\d{8}_\d{6}\.json$`, names[0])
	assert.Regexp(t, `^restaurant_metrics_\d{8}_\d{6}\.csv$`, names[1])
	assert.Regexp(t, `^summary_\d{8}_\d{6}\.json$`, names[2])
}
