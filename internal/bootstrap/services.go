package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/technova/careers-api/config"
	"github.com/technova/careers-api/internal/adapters/filestore"
	"github.com/technova/careers-api/internal/core"
	"github.com/technova/careers-api/internal/data"
	httpx "github.com/technova/careers-api/internal/http"
	"github.com/technova/careers-api/internal/observability/metrics"
	"github.com/technova/careers-api/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Applications *service.ApplicationService
	Contacts     *service.ContactService
	Jobs         *service.JobListingService

	Files   *filestore.LocalStore
	Limiter core.RateLimiter
	// limiterRun is the in-memory limiter's eviction loop, nil for other backends.
	limiterRun func(ctx context.Context) error
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config *config.AppConfig
	DB     *sql.DB
	// RedisClient is required only for the redis rate limit backend.
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// serviceRepositories groups data adapters backing service ports; no business rules here.
type serviceRepositories struct {
	Applications *data.ApplicationRepo
	Contacts     *data.ContactMessageRepo
	Jobs         *data.JobListingRepo
}

func buildRepositories(db *sql.DB) serviceRepositories {
	return serviceRepositories{
		Applications: data.NewApplicationRepo(db),
		Contacts:     data.NewContactMessageRepo(db),
		Jobs:         data.NewJobListingRepo(),
	}
}

// NewServices builds the adapters and the submission pipelines.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service config is required")
	}
	if deps.DB == nil {
		return ServiceContainer{}, errors.New("database is required")
	}
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	files, err := newFileStore(cfg.Uploads, logger)
	if err != nil {
		return ServiceContainer{}, err
	}
	mail, err := newMailer(cfg.Mail, logger)
	if err != nil {
		return ServiceContainer{}, err
	}
	limiter, err := newRateLimiter(cfg.RateLimit, deps.RedisClient, logger)
	if err != nil {
		return ServiceContainer{}, err
	}

	notifyDeps := service.NotifierDeps{Mailer: mail, Recorder: metrics.NewRecorder()}
	// Assigned only when non-nil so the interface never holds a typed nil.
	if chat := newChatNotifier(cfg.Observability, cfg.HTTP.BaseURL, logger); chat != nil {
		notifyDeps.Chat = chat
	}
	pipeline := service.PipelineConfig{
		StaffEmail:    cfg.Mail.StaffTo,
		NotifyTimeout: cfg.Mail.Timeout,
		Logger:        logger,
	}
	if pipeline.StaffEmail == "" {
		logger.Warn("MAIL_TO not set, staff notifications are disabled")
	}

	repos := buildRepositories(deps.DB)
	return ServiceContainer{
		Applications: service.NewApplicationService(service.ApplicationServiceOptions{
			Stores: service.ApplicationStores{Applications: repos.Applications, Files: files, Jobs: repos.Jobs},
			Notify: notifyDeps,
			Config: pipeline,
		}),
		Contacts: service.NewContactService(service.ContactServiceOptions{
			Repo:   repos.Contacts,
			Notify: notifyDeps,
			Config: pipeline,
		}),
		Jobs:       service.NewJobListingService(repos.Jobs),
		Files:      files,
		Limiter:    limiter.limiter,
		limiterRun: limiter.run,
	}, nil
}

// ServiceOrchestrationConfig contains the runtime inputs of RunServicesWithShutdown.
type ServiceOrchestrationConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	Logger   *slog.Logger
}

// RunServicesWithShutdown serves HTTP until SIGINT or SIGTERM, then shuts down gracefully.
func RunServicesWithShutdown(ctx context.Context, cfg *ServiceOrchestrationConfig) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return runServices(ctx, cfg)
}

// runServices runs the HTTP server and limiter maintenance until ctx is done or one of them fails.
func runServices(ctx context.Context, cfg *ServiceOrchestrationConfig) error {
	if cfg == nil || cfg.Config == nil {
		return errors.New("service orchestration config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config

	handler := buildHTTPHandler(httpHandlerConfig{
		Logger: logger,
		Services: httpx.RouterServices{
			Applications: cfg.Services.Applications,
			Contacts:     cfg.Services.Contacts,
			Jobs:         cfg.Services.Jobs,
			SubmitLimit: httpx.RateLimitConfig{
				Limiter:    cfg.Services.Limiter,
				TrustProxy: appCfg.HTTP.TrustProxy,
				Logger:     logger,
			},
			Limits:     httpx.BodyLimits{JSONBytes: appCfg.HTTP.MaxJSONBytes, UploadBytes: appCfg.Uploads.MaxBytes},
			UploadsDir: uploadsDir(cfg.Services, appCfg),
			Logger:     logger,
		},
		HTTP:    appCfg.HTTP,
		Metrics: appCfg.Observability.MetricsEnabled,
	})

	ln, err := listen(ctx, appCfg.HTTP.Addr, appCfg.HTTP.MaxConnections)
	if err != nil {
		return err
	}
	srv := newServer(appCfg.HTTP.Addr, handler)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return serveHTTP(gctx, srv, ln, appCfg.HTTP.ShutdownTimeout, logger)
	})
	if run := cfg.Services.limiterRun; run != nil {
		g.Go(func() error {
			if err := run(gctx); err != nil {
				return fmt.Errorf("rate limiter janitor: %w", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("service error", "error", err)
		return err
	}
	logger.Info("all services stopped")
	return nil
}

func uploadsDir(services ServiceContainer, cfg *config.AppConfig) string {
	if services.Files != nil {
		return services.Files.Dir()
	}
	return cfg.Uploads.Dir
}
