package bootstrap

import (
	"context"
	"database/sql"
	"io"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"

	googleauth "careercraft-backend/internal/auth"
	"careercraft-backend/internal/events"
	"careercraft-backend/internal/feedback"
	"careercraft-backend/internal/guidance"
	"careercraft-backend/internal/interview"
	"careercraft-backend/internal/jobsearch"
	"careercraft-backend/internal/llm"
	"careercraft-backend/internal/llm/gemini"
	"careercraft-backend/internal/llm/openai"
	"careercraft-backend/internal/resumes"
	"careercraft-backend/internal/session"
	"careercraft-backend/internal/shared/auth"
	"careercraft-backend/internal/shared/config"
	"careercraft-backend/internal/shared/server"
	"careercraft-backend/internal/shared/storage/db"
	"careercraft-backend/internal/shared/storage/kv"
	"careercraft-backend/internal/shared/telemetry"
	"careercraft-backend/internal/users"
)

// App holds shared dependencies and the assembled router.
type App struct {
	Config    config.Config
	Router    *gin.Engine
	DB        *sql.DB
	Store     kv.Store
	LLM       llm.Completer
	Events    events.Publisher
	Signer    *auth.Signer
	Autosaver *resumes.Autosaver

	Sessions  *session.Service
	Resumes   *resumes.Service
	Guidance  *guidance.Service
	JobSearch *jobsearch.Service
	Interview *interview.Service
	Feedback  *feedback.Service
	Users     *users.Service

	closers []io.Closer
}

type buildOptions struct {
	completer llm.Completer
	publisher events.Publisher
	store     kv.Store
}

// Option overrides a dependency Build would otherwise derive from config.
type Option func(*buildOptions)

// WithCompleter replaces the configured language model.
func WithCompleter(c llm.Completer) Option {
	return func(o *buildOptions) { o.completer = c }
}

// WithPublisher replaces the configured event publisher.
func WithPublisher(p events.Publisher) Option {
	return func(o *buildOptions) { o.publisher = p }
}

// WithStore replaces the configured slot store.
func WithStore(s kv.Store) Option {
	return func(o *buildOptions) { o.store = s }
}

// Build prepares dependencies and wires the router.
func Build(cfg config.Config, opts ...Option) (*App, error) {
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()
	app := &App{Config: cfg}

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.DB = sqlDB

	app.Store = o.store
	if app.Store == nil {
		if app.Store, err = app.buildStore(ctx); err != nil {
			return nil, err
		}
	}

	app.LLM = o.completer
	if app.LLM == nil {
		if app.LLM, err = buildCompleter(ctx, cfg); err != nil {
			return nil, err
		}
	}

	app.Events = o.publisher
	if app.Events == nil {
		app.Events = app.buildPublisher()
	}

	production := cfg.Env == "production"
	app.Signer, err = auth.NewSigner(cfg.JWTSecret, cfg.SessionTTL, production)
	if err != nil {
		return nil, err
	}

	var (
		userRepo      users.Repo
		interviewRepo interview.Repo
		feedbackRepo  feedback.Repo
	)
	if app.DB != nil {
		userRepo = &users.PGRepo{DB: app.DB}
		interviewRepo = &interview.PGRepo{DB: app.DB}
		feedbackRepo = &feedback.PGRepo{DB: app.DB}
	} else {
		userRepo = users.NewMemoryRepo()
		interviewRepo = interview.NewMemoryRepo()
		feedbackRepo = feedback.NewMemoryRepo()
	}

	app.Users = users.NewService(userRepo)
	app.Sessions = &session.Service{Store: app.Store, Signer: app.Signer, Users: app.Users, Events: app.Events}
	app.Resumes = resumes.NewService(app.Store, app.Events)
	app.Guidance = guidance.NewService(app.LLM)
	app.JobSearch = jobsearch.NewService(app.LLM)
	app.Interview = interview.NewService(interviewRepo, app.LLM, app.Events)
	app.Feedback = feedback.NewService(feedbackRepo)
	app.Autosaver = &resumes.Autosaver{Svc: app.Resumes, Interval: cfg.AutosaveInterval}

	googleAuth := googleauth.NewGoogleService(googleauth.GoogleOptions{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.GoogleRedirectURL,
		UIRedirect:   cfg.UIRedirectURL,
		SecureCookie: production,
	}, app.Sessions)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           cfg,
		Sessions:         app.Sessions,
		SessionHandler:   session.NewHandler(app.Sessions, production),
		GoogleAuth:       googleAuth,
		FeedbackHandler:  feedback.NewHandler(app.Feedback),
		ResumeHandler:    resumes.NewHandler(app.Resumes),
		GuidanceHandler:  guidance.NewHandler(app.Guidance),
		JobSearchHandler: jobsearch.NewHandler(app.JobSearch),
		InterviewHandler: interview.NewHandler(app.Interview),
		UserHandler:      users.NewHandler(app.Users),
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":      cfg.Env,
		"storage":  cfg.StorageBackend,
		"llm":      cfg.LLMProvider,
		"database": app.DB != nil,
	})
	return app, nil
}

// Close releases broker and cache connections. The database pool is shared
// across the process and left open.
func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.StorageBackend == "postgres" && !cfg.IsDevLike() {
			return nil, errors.New("DATABASE_URL is required")
		}
		return nil, nil
	}

	var (
		sqlDB *sql.DB
		err   error
	)
	if db.IsLambdaRuntime() {
		sqlDB, err = db.Shared(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.LambdaOptions()))
	} else {
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.ServerOptions()))
	}
	if err == nil {
		err = db.Migrate(ctx, sqlDB)
	}
	if err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.database_unavailable", map[string]any{"err": err})
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func (a *App) buildStore(ctx context.Context) (kv.Store, error) {
	cfg := a.Config
	switch cfg.StorageBackend {
	case "postgres":
		if a.DB == nil {
			telemetry.Warn("bootstrap.slot_store_fallback", map[string]any{"wanted": "postgres"})
			return kv.NewMemory(), nil
		}
		return kv.NewPostgres(a.DB), nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return nil, errors.Wrap(err, "ping redis")
		}
		a.closers = append(a.closers, client)
		return kv.NewRedis(client, ""), nil
	case "file":
		return kv.NewFile(cfg.LocalStoreDir), nil
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, errors.New("STORAGE_BACKEND=s3 requires S3_BUCKET")
		}
		return kv.NewS3(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return kv.NewMemory(), nil
	}
}

func buildCompleter(ctx context.Context, cfg config.Config) (llm.Completer, error) {
	switch cfg.LLMProvider {
	case "openai":
		if strings.TrimSpace(cfg.OpenAIAPIKey) == "" {
			telemetry.Warn("bootstrap.llm_unconfigured", map[string]any{"provider": "openai"})
			return llm.Unconfigured{Provider: "openai"}, nil
		}
		return openai.NewClient(cfg.OpenAIAPIKey, cfg.LLMModel, "", cfg.LLMTimeout)
	default:
		if strings.TrimSpace(cfg.GeminiAPIKey) == "" {
			telemetry.Warn("bootstrap.llm_unconfigured", map[string]any{"provider": "gemini"})
			return llm.Unconfigured{Provider: "gemini"}, nil
		}
		return gemini.New(ctx, gemini.Options{
			APIKey:  cfg.GeminiAPIKey,
			Model:   cfg.LLMModel,
			Timeout: cfg.LLMTimeout,
		})
	}
}

func (a *App) buildPublisher() events.Publisher {
	url := strings.TrimSpace(a.Config.RabbitMQURL)
	if url == "" {
		return events.Nop{}
	}
	pub, err := events.DialAMQP(url)
	if err != nil {
		telemetry.Warn("bootstrap.events_unavailable", map[string]any{"err": err})
		return events.Nop{}
	}
	a.closers = append(a.closers, pub)
	return pub
}
