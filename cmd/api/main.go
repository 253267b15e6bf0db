package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/stripe/stripe-go/v78/client"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/sync/errgroup"

	_ "github.com/willjrcristo/kdpsuite-api/docs" // Importa a pasta docs gerada

	"github.com/willjrcristo/kdpsuite-api/internal/config"
	"github.com/willjrcristo/kdpsuite-api/internal/content"
	"github.com/willjrcristo/kdpsuite-api/internal/database"
	httphandler "github.com/willjrcristo/kdpsuite-api/internal/handler/http"
	"github.com/willjrcristo/kdpsuite-api/internal/mailer"
	"github.com/willjrcristo/kdpsuite-api/internal/repository"
	"github.com/willjrcristo/kdpsuite-api/internal/service"
)

// @title           KDP Creator Suite API
// @version         1.0
// @description     API do site da KDP Creator Suite: lista de espera, formulário de contato, checkout e webhooks da Stripe.
//
// @contact.name   KDP Creator Suite
// @contact.url    https://kdpsuite.com/contact
// @contact.email  contact.kdpcreatorsuite@gmail.com
//
// @host      localhost:8080
// @BasePath  /
func main() {
	// --- 1. CONFIGURAÇÃO ---
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Erro ao carregar a configuração", "error", err)
		os.Exit(1)
	}

	// --- 2. CONFIGURAÇÃO DO LOGGER ---
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	slog.Info("🚀 Iniciando a API da KDP Creator Suite...")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- 3. BANCO DE DADOS (opcional) ---
	var billingRepo repository.BillingRepository
	if cfg.DatabaseConfigured() {
		db, err := openDatabase(ctx, cfg.Database)
		if err != nil {
			slog.Error("Erro ao inicializar o banco de dados", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		billingRepo = repository.NewSQLBillingRepository(db, cfg.Database.Driver)
		slog.Info("💾 Conexão com o banco de dados estabelecida com sucesso.", "driver", cfg.Database.Driver)
	} else {
		slog.Warn("DATABASE_URL não configurado: webhooks da Stripe serão apenas registrados no log")
	}

	// --- 4. INJEÇÃO DE DEPENDÊNCIAS (WIRING) ---
	// Store/Client -> Service -> Handler

	waitlistStore, closeStore, err := newWaitlistStore(ctx, cfg.Waitlist)
	if err != nil {
		slog.Error("Erro ao inicializar a lista de espera", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	m, err := newMailer(ctx, cfg)
	if err != nil {
		slog.Error("Erro ao inicializar o envio de e-mails", "error", err)
		os.Exit(1)
	}

	plans, err := content.LoadPlans(cfg.Content.PlansFile)
	if err != nil {
		slog.Error("Erro ao carregar os planos", "error", err)
		os.Exit(1)
	}
	posts, err := content.LoadPosts(cfg.Content.BlogFile)
	if err != nil {
		slog.Error("Erro ao carregar o blog", "error", err)
		os.Exit(1)
	}

	stripeClient := client.New(cfg.Stripe.SecretKey, nil)
	if cfg.Stripe.SecretKey == "" {
		slog.Warn("STRIPE_SECRET_KEY não configurado: o checkout vai falhar")
	}

	contactService, err := service.NewContactService(m, service.ContactOptions{
		From:         cfg.Mail.From,
		AdminAddress: cfg.Mail.AdminAddress,
		SiteName:     cfg.App.SiteName,
	})
	if err != nil {
		slog.Error("Erro ao compilar os templates de e-mail", "error", err)
		os.Exit(1)
	}

	waitlistHandler := httphandler.NewWaitlistHandler(service.NewWaitlistService(waitlistStore))
	contactHandler := httphandler.NewContactHandler(contactService)
	stripeHandler := httphandler.NewStripeHandler(
		service.NewCheckoutService(stripeClient.CheckoutSessions, cfg.App.BaseURL),
		service.NewWebhookService(billingRepo, cfg.Stripe.WebhookSecret),
	)
	contentHandler := httphandler.NewContentHandler(service.NewContentService(plans, posts))
	slog.Info("Camadas de serviço e handler inicializadas")

	// --- 5. CONFIGURAÇÃO DO ROTEADOR E ROTAS ---
	r := chi.NewRouter()

	// Middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(prometheusMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Stripe-Signature"},
		MaxAge:         300,
	}))
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	// A URL será http://localhost:8080/swagger/index.html
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api", func(r chi.Router) {
		r.Mount("/waitlist", waitlistHandler.Routes())
		r.Mount("/contact", contactHandler.Routes())
		r.Mount("/stripe", stripeHandler.Routes())
		r.Get("/plans", contentHandler.ListPlans)
		r.Mount("/blog", contentHandler.BlogRoutes())
	})
	slog.Info("🛰️  Rotas de /api registradas")

	// --- 6. INICIALIZAÇÃO DO SERVIDOR HTTP ---
	srv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("✅ Servidor pronto para receber requisições", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("🛑 Encerrando o servidor...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		slog.Error("Erro no servidor HTTP", "error", err)
		os.Exit(1)
	}
	slog.Info("Servidor encerrado")
}

// openDatabase conecta no banco de assinaturas e aplica as migrações pendentes.
func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := database.Open(ctx, cfg.Driver, cfg.URL)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db, cfg.Driver); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// newWaitlistStore escolhe o backend da lista de espera. A função devolvida
// libera os recursos do backend.
func newWaitlistStore(ctx context.Context, cfg config.WaitlistConfig) (service.WaitlistStore, func(), error) {
	switch cfg.Backend {
	case "redis":
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("REDIS_URL inválido: %w", err)
		}
		rdb := redis.NewClient(opts)
		if err := rdb.Ping(ctx).Err(); err != nil {
			rdb.Close()
			return nil, nil, fmt.Errorf("ping redis: %w", err)
		}
		slog.Info("📋 Lista de espera no Redis", "addr", opts.Addr)
		return repository.NewRedisWaitlistStore(rdb), func() { rdb.Close() }, nil
	default:
		slog.Info("📋 Lista de espera em arquivo", "path", cfg.FilePath)
		return repository.NewFileWaitlistStore(cfg.FilePath), func() {}, nil
	}
}

// newMailer devolve nil (interface nula) quando não há credenciais de e-mail.
func newMailer(ctx context.Context, cfg *config.Config) (mailer.Mailer, error) {
	if !cfg.MailConfigured() {
		slog.Warn("Envio de e-mail não configurado: mensagens de contato serão apenas registradas no log")
		return nil, nil
	}
	switch cfg.Mail.Provider {
	case "ses":
		sesClient, err := mailer.NewSESClient(ctx, cfg.Mail.SESRegion, cfg.Mail.SESAccessKeyID, cfg.Mail.SESSecretAccessKey)
		if err != nil {
			return nil, err
		}
		slog.Info("📧 E-mails via Amazon SES", "region", cfg.Mail.SESRegion)
		return mailer.NewSESMailer(sesClient), nil
	default:
		slog.Info("📧 E-mails via SMTP", "host", cfg.Mail.SMTPHost)
		return mailer.NewSMTPMailer(cfg.Mail.SMTPHost, cfg.Mail.SMTPPort, cfg.Mail.SMTPUsername, cfg.Mail.SMTPPassword), nil
	}
}
