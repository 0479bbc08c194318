package notifierimpl

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/fx"

	"github.com/thegab/tiktok-scraper/internal/notifier"
	"github.com/thegab/tiktok-scraper/pkg/config"
	"github.com/thegab/tiktok-scraper/pkg/logger"
)

type Opts struct {
	fx.In

	Config *config.Config
	Logger logger.Logger
}

// New picks the Telegram notifier when a bot token is configured and the
// no-op notifier otherwise, so the pipeline never has to care whether
// notifications are switched on.
func New(opts Opts) (notifier.Client, error) {
	if opts.Config.Telegram.Token == "" {
		opts.Logger.Info("Telegram token not configured, run reports stay local")
		return &Noop{}, nil
	}

	bot, err := tgbotapi.NewBotAPI(opts.Config.Telegram.Token)
	if err != nil {
		opts.Logger.Error("Error creating Telegram bot", "error", err)
		return nil, err
	}

	return &TelegramImpl{
		bot:     bot,
		channel: opts.Config.Telegram.Channel,
		logger:  opts.Logger.WithComponent("Notifier"),
	}, nil
}

// TelegramImpl posts run reports to the configured channel.
type TelegramImpl struct {
	bot     *tgbotapi.BotAPI
	channel string
	logger  logger.Logger
}

var _ notifier.Client = (*TelegramImpl)(nil)
