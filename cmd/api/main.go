package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/afero"

	_ "github.com/jhoicas/fedrita-api/docs"
	"github.com/jhoicas/fedrita-api/internal/application/auth"
	"github.com/jhoicas/fedrita-api/internal/application/authctx"
	"github.com/jhoicas/fedrita-api/internal/application/ports"
	"github.com/jhoicas/fedrita-api/internal/application/profile"
	"github.com/jhoicas/fedrita-api/internal/application/session"
	"github.com/jhoicas/fedrita-api/internal/application/usecase"
	"github.com/jhoicas/fedrita-api/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/fedrita-api/internal/infrastructure/pdf"
	"github.com/jhoicas/fedrita-api/internal/infrastructure/postgres"
	"github.com/jhoicas/fedrita-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/fedrita-api/internal/interfaces/http"
	"github.com/jhoicas/fedrita-api/pkg/config"
	"github.com/jhoicas/fedrita-api/pkg/logger"
)

// @title        Fedrita API
// @version      1.0
// @description  Panel de gestión de salones Fedrita.
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
		App:   cfg.App.Name,
	})
	zl := log.Zerolog()
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	if cfg.DB.Migrate {
		version, err := postgres.RunMigrations(cfg.DB.ConnectionString())
		if err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Uint("version", version).Msg("migraciones aplicadas")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB, zl)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	checks := map[string]httpRouter.Pinger{"postgres": pool}

	// Almacenes de los clientes: Redis si está configurado, si no memoria (solo desarrollo).
	var (
		revoked ports.RevocationStore
		kvFor   func(clientID string) ports.KeyValueStore
	)
	if cfg.Redis.URL != "" {
		rdb, err := cache.Connect(ctx, cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer rdb.Close()
		revoked = cache.NewRedisRevocationStore(rdb)
		kvFor = func(clientID string) ports.KeyValueStore {
			return cache.NewRedisKV(rdb, cache.ClientPrefix(clientID))
		}
		checks["redis"] = redisPinger(rdb)
	} else {
		log.Warn().Msg("REDIS_URL vacío: sesiones de clientes en memoria")
		mem := cache.NewMemory()
		revoked = cache.NewMemoryRevocationStore(mem)
		kvFor = func(clientID string) ports.KeyValueStore {
			return cache.NewMemoryKV(mem, cache.ClientPrefix(clientID))
		}
	}

	bucket, err := storage.NewDiskBucketStore(cfg.Storage.Dir, cfg.Storage.PublicBase)
	if err != nil {
		log.Fatal().Err(err).Msg("bucket de archivos")
	}

	identityRepo := postgres.NewIdentityRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	salonRepo := postgres.NewSalonRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	appointmentRepo := postgres.NewAppointmentRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	statsRepo := postgres.NewStatsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(identityRepo, revoked, auth.JWTConfig{
		Secret:   cfg.JWT.Secret,
		Lifetime: cfg.JWT.Lifetime(),
		Issuer:   cfg.JWT.Issuer,
	})
	resolver := profile.NewResolver(companyRepo, salonRepo, zl)

	// Un contexto de autenticación por cliente, sobre su espacio clave/valor.
	registry := authctx.NewRegistry(ctx, func(clientID string) *authctx.Context {
		clientLog := log.ForClient(clientID)
		store := session.NewStore(authUC, kvFor(clientID), clientLog, session.Options{Lifetime: cfg.JWT.Lifetime()})
		return authctx.New(store, resolver, clientLog)
	}, cfg.Auth.ContextIdleTTL, zl)
	go registry.Run(ctx, time.Minute)
	defer registry.CloseAll()

	companyUC := usecase.NewCompanyUseCase(companyRepo, bucket, zl)
	salonUC := usecase.NewSalonUseCase(salonRepo)
	employeeUC := usecase.NewEmployeeUseCase(txRunner, salonRepo, employeeRepo, authUC, zl)
	appointmentUC := usecase.NewAppointmentUseCase(txRunner, salonRepo, employeeRepo, appointmentRepo)
	clientUC := usecase.NewClientUseCase(clientRepo)
	dashboardUC := usecase.NewDashboardUseCase(statsRepo)
	agendaUC := usecase.NewAgendaUseCase(appointmentRepo, infrapdf.NewMarotoAgendaGenerator(), cfg.App.Location())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    storage.MaxObjectSize + 1<<20,
		ErrorHandler: httpRouter.ErrorHandler(zl),
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Fedrita API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Contexts:      registry,
		CompanyUC:     companyUC,
		SalonUC:       salonUC,
		EmployeeUC:    employeeUC,
		AppointmentUC: appointmentUC,
		ClientUC:      clientUC,
		DashboardUC:   dashboardUC,
		AgendaUC:      agendaUC,
		Files:         afero.NewHttpFs(bucket.FS()),
		Checks:        checks,
		InitWait:      cfg.Auth.InitWait,
		CookieSecure:  cfg.HTTP.CookieSecure,
		Log:           zl,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	stop()

	log.Info().Msg("aplicación detenida")
}

func redisPinger(rdb *redis.Client) httpRouter.PingFunc {
	return func(ctx context.Context) error {
		return rdb.Ping(ctx).Err()
	}
}
