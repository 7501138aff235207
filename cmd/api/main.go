package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/timeclock-go/internal/config"
	appHTTP "github.com/cmlabs-hris/timeclock-go/internal/handler/http"
	"github.com/cmlabs-hris/timeclock-go/internal/pkg/cron"
	"github.com/cmlabs-hris/timeclock-go/internal/pkg/database"
	"github.com/cmlabs-hris/timeclock-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/timeclock-go/internal/pkg/kv"
	"github.com/cmlabs-hris/timeclock-go/internal/pkg/sse"
	"github.com/cmlabs-hris/timeclock-go/internal/pkg/storage"
	"github.com/cmlabs-hris/timeclock-go/internal/repository/snapshot"
	attendanceService "github.com/cmlabs-hris/timeclock-go/internal/service/attendance"
	serviceAuth "github.com/cmlabs-hris/timeclock-go/internal/service/auth"
	dashboardService "github.com/cmlabs-hris/timeclock-go/internal/service/dashboard"
	employeeService "github.com/cmlabs-hris/timeclock-go/internal/service/employee"
	"github.com/cmlabs-hris/timeclock-go/internal/service/master"
	"github.com/cmlabs-hris/timeclock-go/internal/service/store"
	"golang.org/x/sync/errgroup"
)

const (
	appName    = "timeclock"
	appVersion = "v1.0.0"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})).With(
		slog.String("app", appName),
		slog.String("env", cfg.App.Env),
	))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	substrate, closeSubstrate, err := openSubstrate(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeSubstrate()

	policy, err := cfg.AttendancePolicy()
	if err != nil {
		return err
	}

	hub := sse.NewHub()
	directoryStore, err := store.New(ctx, snapshot.NewSnapshotRepository(substrate),
		store.WithLocation(cfg.Location()),
		store.WithPublisher(hub),
	)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	authService := serviceAuth.NewAuthService(directoryStore, JWTService)
	employeeSvc := employeeService.NewEmployeeService(directoryStore)
	attendanceSvc := attendanceService.NewAttendanceService(directoryStore)
	masterService := master.NewMasterService(directoryStore)
	dashboardSvc := dashboardService.NewDashboardService(directoryStore, policy)

	router := appHTTP.NewRouter(appHTTP.RouterOptions{
		AppName:        appName,
		Version:        appVersion,
		Env:            cfg.App.Env,
		LogLevel:       cfg.SlogLevel(),
		AllowedOrigins: cfg.App.AllowedOrigins,
	}, JWTService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authService),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Master:     appHTTP.NewMasterHandler(masterService),
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc, JWTService, hub),
	})

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(dashboardSvc, hub).RegisterJobs(scheduler, cfg.Attendance.DigestInterval)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Server running", "addr", server.Addr, "storage", cfg.Storage.Type, "timezone", cfg.App.Timezone)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return scheduler.Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// openSubstrate connects the configured key-value backend. The returned
// function releases its connections.
func openSubstrate(ctx context.Context, cfg *config.Config) (kv.Store, func(), error) {
	switch cfg.Storage.Type {
	case config.StorageFile:
		files, err := storage.NewLocalStorage(cfg.Storage.BasePath)
		if err != nil {
			return nil, nil, fmt.Errorf("open file storage: %w", err)
		}
		return kv.NewFile(files), func() {}, nil

	case config.StoragePostgres:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
			MaxConns:       10,
			ConnectTimeout: 5 * time.Second,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("connect database: %w", err)
		}
		return kv.NewPostgres(db), db.Close, nil

	case config.StorageRedis:
		rdb, err := kv.NewRedisClient(ctx, cfg.Storage.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		return kv.NewRedis(rdb, cfg.Storage.KeyPrefix), func() { _ = rdb.Close() }, nil

	default:
		slog.Warn("Using in-memory storage; state is lost on restart")
		return kv.NewMemory(), func() {}, nil
	}
}
