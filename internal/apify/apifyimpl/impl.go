package apifyimpl

import (
	"net/http"
	"strings"
	"time"

	"go.uber.org/fx"

	"github.com/thegab/tiktok-scraper/internal/apify"
	"github.com/thegab/tiktok-scraper/pkg/config"
	"github.com/thegab/tiktok-scraper/pkg/logger"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

type ApifyImpl struct {
	httpClient *http.Client
	logger     logger.Logger

	token   string
	actorID string
	baseURL string

	pollInterval time.Duration
	maxWait      time.Duration
}

func New(opts Opts) *ApifyImpl {
	return &ApifyImpl{
		httpClient:   &http.Client{Timeout: 60 * time.Second},
		logger:       opts.Logger.WithComponent("ApifyClient"),
		token:        opts.Config.Apify.Token,
		actorID:      opts.Config.Apify.ActorID,
		baseURL:      strings.TrimSuffix(opts.Config.Apify.BaseURL, "/"),
		pollInterval: time.Duration(opts.Config.Apify.PollIntervalSeconds) * time.Second,
		maxWait:      time.Duration(opts.Config.Apify.MaxWaitSeconds) * time.Second,
	}
}

var _ apify.Client = (*ApifyImpl)(nil)
