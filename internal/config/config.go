// Load envs from .env
// Load YAML config
// Override with env vars
// Provide default values

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"go-job-digest/internal/mailer"
	"go-job-digest/internal/reporter"
	"go-job-digest/internal/scraper"
	"go-job-digest/internal/scraper/serper"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "configs/config.yaml"

type Config struct {
	//Secrets, env only
	SerperAPIKey   string `yaml:"-" env:"SERPER_API_KEY"`
	SenderEmail    string `yaml:"-" env:"SENDER_EMAIL"`
	SenderPassword string `yaml:"-" env:"SENDER_PASSWORD"`
	ReceiverEmail  string `yaml:"-" env:"RECEIVER_EMAIL"`
	TelegramToken  string `yaml:"-" env:"TELEGRAM_BOT_TOKEN"`

	TelegramChatID int64 `yaml:"telegram_chat_id" env:"TELEGRAM_CHAT_ID"`

	//Search criteria
	Query          string        `yaml:"query"`
	Region         string        `yaml:"region"`
	Language       string        `yaml:"language"`
	Recency        string        `yaml:"recency"`
	ResultCount    int           `yaml:"result_count"`
	SearchEndpoint string        `yaml:"search_endpoint"`
	SearchTimeout  time.Duration `yaml:"search_timeout"`

	//Delivery
	SMTPHost      string `yaml:"smtp_host"`
	SMTPPort      int    `yaml:"smtp_port"`
	SubjectPrefix string `yaml:"subject_prefix"`
	ReportHeading string `yaml:"report_heading"`
}

// Load reads .env, then the YAML file at path, then env overrides, then
// fills defaults. A missing file is not an error. Missing secrets are left
// empty for the stage that needs them to report.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	if p := os.Getenv("JOBDIGEST_CONFIG"); p != "" {
		path = p
	}

	cfg := &Config{}
	var loadErr error

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		loadErr = fmt.Errorf("could not read %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			//start over so a half-decoded file does not leak into the run
			cfg = &Config{}
			loadErr = fmt.Errorf("error parsing %s: %w", path, err)
		}
	}

	cfg.SerperAPIKey = os.Getenv("SERPER_API_KEY")
	cfg.SenderEmail = os.Getenv("SENDER_EMAIL")
	cfg.SenderPassword = os.Getenv("SENDER_PASSWORD")
	cfg.ReceiverEmail = os.Getenv("RECEIVER_EMAIL")
	cfg.TelegramToken = os.Getenv("TELEGRAM_BOT_TOKEN")

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			loadErr = errors.Join(loadErr, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err))
		} else {
			cfg.TelegramChatID = id
		}
	}

	cfg.setDefaults()
	return cfg, loadErr
}

func (c *Config) setDefaults() {
	if c.Query == "" {
		c.Query = "java backend developer 3 years experience india"
	}
	if c.Region == "" {
		c.Region = "in"
	}
	if c.Language == "" {
		c.Language = "en"
	}
	if c.Recency == "" {
		c.Recency = string(scraper.RecencyDay)
	}
	if c.ResultCount <= 0 {
		c.ResultCount = serper.DefaultNum
	}
	if c.SearchEndpoint == "" {
		c.SearchEndpoint = serper.DefaultEndpoint
	}
	if c.SearchTimeout <= 0 {
		c.SearchTimeout = serper.DefaultTimeout
	}
	if c.SMTPHost == "" {
		c.SMTPHost = mailer.DefaultHost
	}
	if c.SMTPPort == 0 {
		c.SMTPPort = mailer.DefaultPort
	}
	if c.SubjectPrefix == "" {
		c.SubjectPrefix = mailer.DefaultSubjectPrefix
	}
	if c.ReportHeading == "" {
		c.ReportHeading = reporter.DefaultHeading
	}
}

// Secrets exposes the environment-sourced values by variable name
func (c *Config) Secrets() map[string]string {
	return map[string]string{
		"SERPER_API_KEY":  c.SerperAPIKey,
		"SENDER_EMAIL":    c.SenderEmail,
		"SENDER_PASSWORD": c.SenderPassword,
		"RECEIVER_EMAIL":  c.ReceiverEmail,
	}
}

// Missing lists the names of secrets that are not set
func (c *Config) Missing() []string {
	var missing []string
	for _, name := range []string{"SERPER_API_KEY", "SENDER_EMAIL", "SENDER_PASSWORD", "RECEIVER_EMAIL"} {
		if c.Secrets()[name] == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

// TelegramEnabled reports whether run summaries should go to Telegram
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}
