package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"coastal-quiz-service/internal/app"
	"coastal-quiz-service/internal/auth"
	"coastal-quiz-service/internal/config"
	"coastal-quiz-service/internal/domain"
	"coastal-quiz-service/internal/gateway"
	"coastal-quiz-service/internal/infra/memory"
	pgloader "coastal-quiz-service/internal/infra/postgres"
	redisinfra "coastal-quiz-service/internal/infra/redis"
	"coastal-quiz-service/internal/notify"
	"coastal-quiz-service/internal/quiz"
	"coastal-quiz-service/internal/stats"
	"coastal-quiz-service/internal/threat"
	transport "coastal-quiz-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the coastal quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	redisTTL := config.Duration(cfg.Redis.TTL, 30*time.Minute)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	var loader memory.BankLoader = memory.NewStaticBankLoader(quiz.DefaultBank())
	if pool != nil {
		loader = pgloader.NewBankLoader(pool)
	}

	bankTTL := config.Duration(cfg.Bank.TTL, 10*time.Minute)
	var bankRepo app.BankRepository
	if redisClient != nil {
		bankRepo = redisinfra.NewBankRepository(redisClient, loader, bankTTL)
	} else {
		bankRepo = memory.NewBankRepository(loader, bankTTL)
	}

	var sessions app.SessionRepository
	if redisClient != nil {
		sessions = redisinfra.NewSessionStore(redisClient, redisTTL)
	} else {
		sessions = memory.NewSessionStore()
	}

	aggregator := stats.NewAggregator()
	notices := notify.NewStore()
	seedNotifications(notices)

	service := app.NewQuizService(sessions, bankRepo, aggregator, notices)
	handler := transport.NewHandler(service, notices)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	handler.Register(mux)

	pollCtx, stopPoller := context.WithCancel(ctx)
	defer stopPoller()

	if cfg.Gateway.BaseURL != "" {
		backend := gateway.NewClient(cfg.Gateway.BaseURL, config.Duration(cfg.Gateway.Timeout, 15*time.Second))

		var tokens auth.TokenStore = auth.NewMemoryTokenStore()
		if cfg.Auth.TokenFile != "" {
			tokens = auth.NewFileTokenStore(cfg.Auth.TokenFile)
		}
		sessionMgr := auth.NewManager(backend, tokens)
		if err := sessionMgr.Restore(ctx); err != nil {
			log.Printf("restore auth session: %v", err)
		}
		if user, ok := sessionMgr.User(); ok {
			log.Printf("restored session for %s", user.Email)
		}
		transport.NewActionsHandler(backend, sessionMgr).Register(mux)

		poller := threat.NewPoller(backend, notices, config.Duration(cfg.Threat.PollInterval, 5*time.Minute))
		go poller.Run(pollCtx)
	}

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting coastal quiz service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}
	stopPoller()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// seedNotifications populates the store with the startup samples shown on
// first load of the dashboard.
func seedNotifications(store *notify.Store) {
	now := time.Now()
	store.Seed(domain.Notification{
		ID:        "1",
		Title:     "Storm Warning Issued",
		Message:   "Tropical storm warning issued for coastal areas. Please monitor updates.",
		Type:      domain.NotificationWarning,
		Timestamp: now.Add(-2 * time.Hour),
		Read:      false,
		Priority:  domain.PriorityHigh,
	})
	store.Seed(domain.Notification{
		ID:        "2",
		Title:     "System Maintenance",
		Message:   "Scheduled maintenance will occur tonight from 2-4 AM. Minimal disruption expected.",
		Type:      domain.NotificationInfo,
		Timestamp: now.Add(-4 * time.Hour),
		Read:      false,
		Priority:  domain.PriorityMedium,
	})
	store.Seed(domain.Notification{
		ID:        "3",
		Title:     "New Alert Zone Added",
		Message:   "Alert zone \"North Bay Area\" has been added to the monitoring system.",
		Type:      domain.NotificationSuccess,
		Timestamp: now.Add(-6 * time.Hour),
		Read:      true,
		Priority:  domain.PriorityLow,
	})
}
