package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/vfg2006/ads-report/internal/domain"
)

// Políticas para falha ao buscar métricas de um anúncio
const (
	PartialFailureAbort = "abort"
	PartialFailureSkip  = "skip"
)

type Config struct {
	App    App    `mapstructure:",squash"`
	Server Server `mapstructure:",squash"`
	HTTP   HTTP   `mapstructure:",squash"`
	Meta   Meta   `mapstructure:",squash"`
	Slack  Slack  `mapstructure:",squash"`
	Report Report `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type HTTP struct {
	Timeout time.Duration `mapstructure:"http_timeout"`
}

type Meta struct {
	BaseURL      string        `mapstructure:"meta_base_url"`
	URL          string        `mapstructure:"-"`
	Version      string        `mapstructure:"meta_version"`
	AccessToken  string        `mapstructure:"meta_access_token"`
	AdAccountID  string        `mapstructure:"meta_ad_account_id"`
	PageSize     int           `mapstructure:"meta_page_size"`
	MaxRetries   int           `mapstructure:"meta_max_retries"`
	RetryBackoff time.Duration `mapstructure:"meta_retry_backoff"`
}

type Slack struct {
	WebhookURL string        `mapstructure:"slack_webhook_url"`
	Timeout    time.Duration `mapstructure:"webhook_timeout"`
}

type Report struct {
	Period          string              `mapstructure:"report_period"`
	Kind            domain.ReportPeriod `mapstructure:"-"`
	Timezone        string              `mapstructure:"report_timezone"`
	Location        *time.Location      `mapstructure:"-"`
	ComparePrevious bool                `mapstructure:"report_compare_previous"`
	MaxConcurrent   int                 `mapstructure:"report_max_concurrent"`
	PartialFailure  string              `mapstructure:"report_partial_failure"`
	CurrencySymbol  string              `mapstructure:"currency_symbol"`
	ScheduleEnabled bool                `mapstructure:"report_schedule_enabled"`
	CronSchedule    string              `mapstructure:"report_cron"`
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("HOST", "localhost")
	v.SetDefault("PORT", "8000")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("HTTP_TIMEOUT", "30s")

	// Obrigatórios: sem valor padrão, apenas registrados para o Unmarshal enxergar a variável
	v.SetDefault("META_ACCESS_TOKEN", "")
	v.SetDefault("META_AD_ACCOUNT_ID", "")
	v.SetDefault("SLACK_WEBHOOK_URL", "")

	v.SetDefault("META_BASE_URL", "https://graph.facebook.com")
	v.SetDefault("META_VERSION", "v19.0")
	v.SetDefault("META_PAGE_SIZE", 200)
	v.SetDefault("META_MAX_RETRIES", 3)
	v.SetDefault("META_RETRY_BACKOFF", "500ms")

	v.SetDefault("WEBHOOK_TIMEOUT", "10s")

	v.SetDefault("REPORT_PERIOD", string(domain.ReportPeriodDaily))
	v.SetDefault("REPORT_TIMEZONE", "UTC")
	v.SetDefault("REPORT_COMPARE_PREVIOUS", false)
	v.SetDefault("REPORT_MAX_CONCURRENT", 4)
	v.SetDefault("REPORT_PARTIAL_FAILURE", PartialFailureAbort)
	v.SetDefault("CURRENCY_SYMBOL", "$")

	v.SetDefault("REPORT_SCHEDULE_ENABLED", true)
	v.SetDefault("REPORT_CRON", "0 8 * * *") // Todos os dias às 8h
}

// NewConfig carrega .env e variáveis de ambiente e valida os valores obrigatórios.
// Nenhuma chamada de rede acontece antes desta validação.
func NewConfig() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()

	config := &Config{}
	err := v.Unmarshal(config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, &domain.ConfigurationError{Invalid: []string{err.Error()}}
	}

	config.normalize()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) normalize() {
	c.Meta.AccessToken = strings.TrimSpace(c.Meta.AccessToken)
	c.Meta.AdAccountID = strings.TrimPrefix(strings.TrimSpace(c.Meta.AdAccountID), "act_")
	c.Meta.BaseURL = strings.TrimRight(c.Meta.BaseURL, "/")
	c.Meta.URL = fmt.Sprintf("%s/%s", c.Meta.BaseURL, c.Meta.Version)
	c.Slack.WebhookURL = strings.TrimSpace(c.Slack.WebhookURL)
	c.Report.PartialFailure = strings.ToLower(strings.TrimSpace(c.Report.PartialFailure))
}

// Validate devolve um ConfigurationError com todos os valores ausentes ou inválidos
func (c *Config) Validate() error {
	var missing, invalid []string

	if c.Meta.AccessToken == "" {
		missing = append(missing, "META_ACCESS_TOKEN")
	}
	if c.Meta.AdAccountID == "" {
		missing = append(missing, "META_AD_ACCOUNT_ID")
	}
	if c.Slack.WebhookURL == "" {
		missing = append(missing, "SLACK_WEBHOOK_URL")
	}

	kind, err := domain.ParseReportPeriod(c.Report.Period)
	if err != nil {
		invalid = append(invalid, fmt.Sprintf("REPORT_PERIOD: %v", err))
	}
	c.Report.Kind = kind

	loc, err := time.LoadLocation(c.Report.Timezone)
	if err != nil {
		invalid = append(invalid, fmt.Sprintf("REPORT_TIMEZONE: %v", err))
	}
	c.Report.Location = loc

	if c.Report.PartialFailure != PartialFailureAbort && c.Report.PartialFailure != PartialFailureSkip {
		invalid = append(invalid, fmt.Sprintf("REPORT_PARTIAL_FAILURE: must be %q or %q", PartialFailureAbort, PartialFailureSkip))
	}
	if c.Report.MaxConcurrent <= 0 {
		invalid = append(invalid, "REPORT_MAX_CONCURRENT: must be positive")
	}
	if c.Meta.PageSize <= 0 {
		invalid = append(invalid, "META_PAGE_SIZE: must be positive")
	}
	if c.Meta.MaxRetries < 0 {
		invalid = append(invalid, "META_MAX_RETRIES: must not be negative")
	}
	if c.HTTP.Timeout <= 0 {
		invalid = append(invalid, "HTTP_TIMEOUT: must be positive")
	}
	if c.Slack.Timeout <= 0 {
		invalid = append(invalid, "WEBHOOK_TIMEOUT: must be positive")
	}

	if len(missing) > 0 || len(invalid) > 0 {
		return &domain.ConfigurationError{Missing: missing, Invalid: invalid}
	}

	return nil
}

func (c *Config) SkipFailedAds() bool {
	return c.Report.PartialFailure == PartialFailureSkip
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err != nil {
			continue
		}

		// godotenv.Load não sobrescreve variáveis já definidas no ambiente
		if err := godotenv.Load(location); err != nil {
			logrus.WithError(err).Warn("Não foi possível carregar o arquivo .env de:", location)
			continue
		}

		logrus.Debug("Arquivo .env carregado de:", location)
		return
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
