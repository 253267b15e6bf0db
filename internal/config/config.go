package config

import (
	"errors"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config reúne toda a configuração da aplicação, lida do ambiente.
type Config struct {
	Server   ServerConfig
	App      AppConfig
	Stripe   StripeConfig
	Mail     MailConfig
	Database DatabaseConfig
	Waitlist WaitlistConfig
	Content  ContentConfig
	LogLevel slog.Level
}

type ServerConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string
}

// AppConfig guarda a URL pública do site, usada nos redirects do checkout.
type AppConfig struct {
	BaseURL  string
	SiteName string
}

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
}

// MailConfig configura o envio de e-mails do formulário de contato.
// Provider pode ser "smtp" ou "ses".
type MailConfig struct {
	Provider     string
	From         string
	AdminAddress string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string

	SESRegion          string
	SESAccessKeyID     string
	SESSecretAccessKey string
}

type DatabaseConfig struct {
	Driver string
	URL    string
}

// WaitlistConfig escolhe onde a lista de espera é guardada: "file" ou "redis".
type WaitlistConfig struct {
	Backend  string
	FilePath string
	RedisURL string
}

// ContentConfig aponta para arquivos YAML que substituem o catálogo embutido.
type ContentConfig struct {
	PlansFile string
	BlogFile  string
}

var ErrInvalidConfig = errors.New("configuração inválida")

// Load carrega o .env (se existir) e monta a Config a partir das variáveis de ambiente.
func Load() (*Config, error) {
	// O .env é opcional: em produção tudo vem do ambiente.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	return FromEnv()
}

// FromEnv monta a Config apenas com as variáveis de ambiente atuais.
func FromEnv() (*Config, error) {
	port, err := getInt("PORT", 8080)
	if err != nil {
		return nil, err
	}
	smtpPort, err := getInt("SMTP_PORT", 587)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnv("HOST", ""),
			Port:           port,
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		},
		App: AppConfig{
			BaseURL:  strings.TrimRight(getEnv("APP_BASE_URL", "https://kdpsuite.com"), "/"),
			SiteName: getEnv("SITE_NAME", "KDP Creator Suite"),
		},
		Stripe: StripeConfig{
			SecretKey:     getEnv("STRIPE_SECRET_KEY", ""),
			WebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
		},
		Mail: MailConfig{
			Provider:           strings.ToLower(getEnv("MAIL_PROVIDER", "smtp")),
			From:               getEnv("MAIL_FROM", "contact.kdpcreatorsuite@gmail.com"),
			AdminAddress:       getEnv("MAIL_ADMIN_ADDRESS", "contact.kdpcreatorsuite@gmail.com"),
			SMTPHost:           getEnv("SMTP_HOST", "smtp.gmail.com"),
			SMTPPort:           smtpPort,
			SMTPUsername:       getEnv("SMTP_USERNAME", ""),
			SMTPPassword:       getEnv("SMTP_PASSWORD", ""),
			SESRegion:          getEnv("SES_REGION", "us-east-1"),
			SESAccessKeyID:     getEnv("SES_ACCESS_KEY_ID", ""),
			SESSecretAccessKey: getEnv("SES_SECRET_ACCESS_KEY", ""),
		},
		Database: DatabaseConfig{
			Driver: getEnv("DATABASE_DRIVER", "pgx"),
			URL:    getEnv("DATABASE_URL", ""),
		},
		Waitlist: WaitlistConfig{
			Backend:  strings.ToLower(getEnv("WAITLIST_BACKEND", "file")),
			FilePath: getEnv("WAITLIST_FILE", "/tmp/waitlist.json"),
			RedisURL: getEnv("REDIS_URL", ""),
		},
		Content: ContentConfig{
			PlansFile: getEnv("PLANS_FILE", ""),
			BlogFile:  getEnv("BLOG_FILE", ""),
		},
		LogLevel: parseLevel(getEnv("LOG_LEVEL", "info")),
	}

	// Como no Gmail, o usuário SMTP padrão é o próprio remetente.
	if cfg.Mail.SMTPUsername == "" {
		cfg.Mail.SMTPUsername = cfg.Mail.From
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Mail.Provider {
	case "smtp", "ses":
	default:
		return errors.Join(ErrInvalidConfig, errors.New("MAIL_PROVIDER deve ser smtp ou ses"))
	}
	switch c.Database.Driver {
	case "pgx", "sqlite3":
	default:
		return errors.Join(ErrInvalidConfig, errors.New("DATABASE_DRIVER deve ser pgx ou sqlite3"))
	}
	switch c.Waitlist.Backend {
	case "file":
	case "redis":
		if c.Waitlist.RedisURL == "" {
			return errors.Join(ErrInvalidConfig, errors.New("REDIS_URL é obrigatório quando WAITLIST_BACKEND=redis"))
		}
	default:
		return errors.Join(ErrInvalidConfig, errors.New("WAITLIST_BACKEND deve ser file ou redis"))
	}
	return nil
}

// MailConfigured indica se há credenciais para enviar e-mails de verdade.
// Sem elas o formulário de contato só registra a mensagem no log.
func (c *Config) MailConfigured() bool {
	switch c.Mail.Provider {
	case "ses":
		return c.Mail.SESAccessKeyID != "" && c.Mail.SESSecretAccessKey != ""
	default:
		return c.Mail.SMTPPassword != ""
	}
}

// DatabaseConfigured indica se o espelhamento de assinaturas está ativo.
func (c *Config) DatabaseConfigured() bool {
	return c.Database.URL != ""
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func getInt(key string, def int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Join(ErrInvalidConfig, errors.New(key+" deve ser um número"))
	}
	return n, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(raw) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
