package pipelineimpl

import (
	"go.uber.org/fx"

	"github.com/thegab/tiktok-scraper/internal/apify"
	"github.com/thegab/tiktok-scraper/internal/extractor"
	"github.com/thegab/tiktok-scraper/internal/notifier"
	"github.com/thegab/tiktok-scraper/internal/pipeline"
	"github.com/thegab/tiktok-scraper/internal/sink"
	"github.com/thegab/tiktok-scraper/internal/uploader"
	"github.com/thegab/tiktok-scraper/pkg/config"
	"github.com/thegab/tiktok-scraper/pkg/logger"
)

type Opts struct {
	fx.In

	Apify     apify.Client
	Extractor *extractor.Extractor
	Uploader  *uploader.Uploader
	Sink      *sink.Sink
	Notifier  notifier.Client
	Logger    logger.Logger
	Config    *config.Config
}

type PipelineImpl struct {
	Apify     apify.Client
	Extractor *extractor.Extractor
	Uploader  *uploader.Uploader
	Sink      *sink.Sink
	Notifier  notifier.Client
	Logger    logger.Logger
	Config    *config.Config
}

func New(opts Opts) *PipelineImpl {
	return &PipelineImpl{
		Apify:     opts.Apify,
		Extractor: opts.Extractor,
		Uploader:  opts.Uploader,
		Sink:      opts.Sink,
		Notifier:  opts.Notifier,
		Logger:    opts.Logger.WithComponent("Pipeline"),
		Config:    opts.Config,
	}
}

var _ pipeline.Client = (*PipelineImpl)(nil)
