package main

import (
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"net"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // localhost-only ${PPROF_PORT}
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	application "relay/internal/app"
	"relay/internal/handlers/rest/health_get"
	"relay/internal/handlers/rest/order_update_post"
	"relay/internal/handlers/rest/payment_click_post"
	"relay/internal/handlers/rest/payment_payme_post"
	"relay/internal/handlers/rest/root_get"
	"relay/internal/handlers/rest/send_message_post"
	"relay/internal/pkg/config"
	"relay/internal/pkg/dotenv"
	"relay/internal/pkg/middlewares/api_key"
	"relay/internal/pkg/middlewares/cors"
	"relay/internal/pkg/middlewares/graceful_shutdown"
	"relay/internal/pkg/middlewares/metrics"
	"relay/internal/pkg/middlewares/rate_limiter"
	"relay/internal/pkg/middlewares/timeout"
	"relay/internal/pkg/postgres"
	"relay/internal/pkg/telegram"
	"relay/pkg/logger"
	"relay/pkg/logger/zap_adapter"
	"relay/pkg/token_bucket"
)

func main() {
	zapLogger, err := zap_adapter.NewZapAdapter()
	if err != nil {
		stdlog.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() {
		if err := zapLogger.Sync(); err != nil {
			stdlog.Printf("failed to sync logger: %v", err)
		}
	}()

	var appLogger logger.Logger = zapLogger
	mainLog := appLogger.With()

	mainLog.Info("starting relay application")

	if err := dotenv.Load(); err != nil {
		mainLog.Error("failed to load .env file", logger.NewField("error", err))
		return
	}

	cfg, err := config.Load()
	if err != nil {
		mainLog.Error("load config", logger.NewField("error", err))
		return
	}

	err = run(context.Background(), cfg, appLogger)
	if err != nil {
		mainLog.Error("application failed", logger.NewField("error", err))
		return
	}
}

//nolint:contextcheck // ongoingCtx и shutdownCtx намеренно наследуются от context.Background(), это часть graceful shutdown
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	const (
		shutdownPeriod      = 15 * time.Second
		shutdownHardPeriod  = 3 * time.Second
		readinessDrainDelay = 5 * time.Second
	)

	// https://victoriametrics.com/blog/go-graceful-shutdown/#b-use-basecontext-to-provide-a-global-context-to-all-connections
	var isShuttingDown atomic.Bool

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	runLog := log.With()

	pool, err := postgres.NewConnPool(ctx, log, &cfg.Database)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, log, pool); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}

	if err := telegram.UseLogger(log); err != nil {
		return fmt.Errorf("telegram logger: %w", err)
	}

	sender, err := telegram.NewSender(ctx, log, &cfg.Telegram)
	if err != nil {
		return fmt.Errorf("telegram sender: %w", err)
	}

	businessApp, err := application.InitializeApplication(ctx, log, pool, pgxv5.DefaultCtxGetter, sender, cfg)
	if err != nil {
		return fmt.Errorf("business logic: %w", err)
	}

	// ongoingCtx используется для BaseContext и не должен отменяться при SIGTERM.
	// Он отменяется только после server.Shutdown() для завершения in-flight запросов.
	ongoingCtx, stopOngoingGracefully := context.WithCancel(context.Background())
	defer stopOngoingGracefully()

	// основной http сервер
	server := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: cors.Middleware(initRouter(log, &isShuttingDown, businessApp, cfg.Server)),
		BaseContext: func(_ net.Listener) context.Context {
			return ongoingCtx
		},

		ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// pprof http сервер
	var pprofServer *http.Server
	if cfg.Server.PprofEnabled {
		pprofServer = &http.Server{
			Addr:    net.JoinHostPort(cfg.Server.Host, cfg.Server.PprofPort),
			Handler: initPprofRouter(log, &isShuttingDown),
			BaseContext: func(_ net.Listener) context.Context {
				return ongoingCtx
			},

			ReadHeaderTimeout: 5 * time.Second, // Slowloris DoS gosec G112
			ReadTimeout:       60 * time.Second,
			WriteTimeout:      60 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}

	// Слушатели: HTTP, long polling Telegram и опционально pprof.
	// Падение любого из них отменяет listenersCtx и запускает остановку остальных.
	listeners, listenersCtx := errgroup.WithContext(ctx)

	listeners.Go(func() error {
		runLog.Info("server starting", logger.NewField("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	})

	listeners.Go(func() error {
		if err := businessApp.Poller.Start(listenersCtx); err != nil {
			return fmt.Errorf("telegram poller: %w", err)
		}
		return nil
	})

	if pprofServer != nil {
		listeners.Go(func() error {
			runLog.Info("pprof server starting", logger.NewField("addr", pprofServer.Addr))
			if err := pprofServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("pprof server: %w", err)
			}
			return nil
		})
	}

	<-listenersCtx.Done()
	if ctx.Err() != nil {
		runLog.Info("Shutdown signal received")
	} else {
		runLog.Warn("listener failed, shutting down")
	}

	stop()
	isShuttingDown.Store(true)

	time.Sleep(readinessDrainDelay)
	runLog.Info("draining requests")

	// shutdownCtx должен быть независим от ctx, который уже отменен на этом этапе.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownPeriod)
	defer cancel()

	var pprofShutdownErr error
	err = server.Shutdown(shutdownCtx)
	if pprofServer != nil {
		pprofShutdownErr = pprofServer.Shutdown(shutdownCtx)
		if pprofShutdownErr != nil {
			runLog.Error("pprof server shutdown error", logger.NewField("error", pprofShutdownErr))
		} else {
			runLog.Info("pprof server stopped")
		}
	}

	stopOngoingGracefully()
	if err != nil || pprofShutdownErr != nil {
		runLog.Info("Graceful shutdown timeout, forcing close")
		time.Sleep(shutdownHardPeriod)
	}

	businessApp.BackgroundWorkers.Wait()

	if err := listeners.Wait(); err != nil {
		return err
	}

	runLog.Info("Server stopped")
	return nil
}

func initRouter(log logger.Logger, isShuttingDown *atomic.Bool, app *application.Application, cfg config.HTTPServer) http.Handler {
	router := mux.NewRouter()

	// health отвечает сам во время остановки, поэтому стоит до graceful_shutdown
	router.Handle("/health", health_get.New(log, isShuttingDown)).Methods("GET", "HEAD")

	routes := router.NewRoute().Subrouter()
	routes.Use(graceful_shutdown.Middleware(isShuttingDown))

	routes.Use(timeout.Middleware(cfg.RequestTimeout))
	routes.Use(metrics.Middleware(log))
	routes.Use(rate_limiter.Middleware(log, cfg.RateLimiterQPS, token_bucket.NewTokenBucket(cfg.RateLimiterQPS, float64(cfg.RateLimiterBurst))))
	routes.Handle("/metrics", promhttp.Handler())

	routes.Handle("/", root_get.New(log)).Methods("GET")

	payments := routes.PathPrefix("/api/payment").Subrouter()
	payments.Handle("/click/callback", payment_click_post.New(log, app.Payments)).Methods("POST")
	payments.Handle("/payme/callback", payment_payme_post.New(log, app.Payments)).Methods("POST")

	protected := routes.PathPrefix("/api").Subrouter()
	protected.Use(api_key.Middleware(log, cfg.APISecretKey))
	protected.Handle("/order-update", order_update_post.New(log, app.Notifications)).Methods("POST")
	protected.Handle("/send-message", send_message_post.New(log, app.Notifications)).Methods("POST")

	return router
}

func initPprofRouter(log logger.Logger, isShuttingDown *atomic.Bool) http.Handler {
	router := mux.NewRouter()

	router.Handle("/health", health_get.New(log, isShuttingDown)).Methods("GET", "HEAD")
	router.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return router
}
