package config

import (
	"fmt"
	"log"
	"sync"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	App struct {
		Env       string `env:"APP_ENV" env-default:"development"`
		Port      int    `env:"APP_PORT" env-default:"8080"`
		SentryUrl string `env:"SENTRY_URL"`
		// Mode selects between a single pipeline run ("once") and the
		// interval scheduler ("daemon").
		Mode string `env:"APP_MODE" env-default:"once"`
	}
	Postgres struct {
		Port    int    `env:"POSTGRES_PORT"`
		Host    string `env:"POSTGRES_HOST"`
		User    string `env:"POSTGRES_USER"`
		Pass    string `env:"POSTGRES_PASS"`
		Name    string `env:"POSTGRES_NAME"`
		SslMode string `env:"POSTGRES_SSL_MODE" env-default:"disable"`
	}
	Apify struct {
		Token               string `env:"APIFY_TOKEN"`
		ActorID             string `env:"APIFY_ACTOR_ID" env-default:"apidojo/tiktok-scraper"`
		BaseURL             string `env:"APIFY_BASE_URL" env-default:"https://api.apify.com/v2"`
		PollIntervalSeconds int    `env:"APIFY_POLL_INTERVAL_SECONDS" env-default:"10"`
		MaxWaitSeconds      int    `env:"APIFY_MAX_WAIT_SECONDS" env-default:"600"`
	}
	Scraper struct {
		Hashtags           []string `env:"SCRAPER_HASHTAGS" env-separator:"," env-default:"torontofood,torontorestaurants"`
		MaxPostsPerHashtag int      `env:"SCRAPER_MAX_POSTS_PER_HASHTAG" env-default:"50"`
		IntervalMinutes    int      `env:"SCRAPER_INTERVAL_MINUTES" env-default:"360"`
		// DatasetFile points at a local JSON export of raw videos. When set
		// the pipeline reads it instead of calling Apify.
		DatasetFile string `env:"SCRAPER_DATASET_FILE"`
		OutputDir   string `env:"SCRAPER_OUTPUT_DIR" env-default:"."`
	}
	Telegram struct {
		User    int64  `env:"TELEGRAM_USER"`
		Token   string `env:"TELEGRAM_TOKEN"`
		Channel string `env:"TELEGRAM_CHANNEL"`
	}
}

var (
	once sync.Once
	cfg  *Config
)

func New() (*Config, error) {
	once.Do(func() {
		cfg = &Config{}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			help, _ := cleanenv.GetDescription(cfg, nil)
			log.Fatalf("Failed to read configuration: %v\n%v", err, help)
		}
	})
	return cfg, nil
}

// GetDSN builds the postgres connection string shared by the pgx pool and the
// goose migration runner.
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Postgres.User,
		c.Postgres.Pass,
		c.Postgres.Host,
		c.Postgres.Port,
		c.Postgres.Name,
		c.Postgres.SslMode,
	)
}
