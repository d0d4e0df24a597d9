package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/labstack/echo"
	echo_middleware "github.com/labstack/echo/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"orderbridge/config"
	"orderbridge/httputils"
	"orderbridge/services/orders"
)

var (
	VERSION = "dev"

	envFileF            = flag.String("env-file", ".env", "Path to the fallback env file.")
	onLoggerDebugLevelF = flag.Bool("logger-debug-level", false, "Enable debug level logger.")
)

func main() {
	var wg sync.WaitGroup
	flag.Parse()
	level := "INFO"
	if *onLoggerDebugLevelF {
		level = "DEBUG"
	}
	defaultLogger(level)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		cancel()
	}()

	zap.L().Info("Starting order intake gateway...",
		zap.String("version", VERSION),
	)
	defer func() { zap.L().Info("Done.") }()

	// Platform-injected environment first, static .env file second. Missing
	// secrets are reported here but surface per request as configuration
	// errors, so probes and metrics stay reachable on a broken deployment.
	cfg, err := config.Resolve(config.EnvSource{}, config.NewFileSource(*envFileF))
	if err != nil {
		zap.L().Warn("Configuration incomplete", zap.Error(err))
	}

	svc := orders.NewService(cfg)

	portWeb := os.Getenv("PORT")
	if portWeb == "" {
		portWeb = "8080"
	}
	zap.L().Debug("WEB - get port to listen", zap.String("got_port", portWeb))

	e := echo.New()

	e.Use(echo_middleware.CORSWithConfig(echo_middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{
			echo.GET,
			echo.POST,
			echo.OPTIONS,
		},
	}))

	e.Use(echo_middleware.Recover())

	e.Use(echo_middleware.Logger())
	e.Use(echo_middleware.BodyLimit("64K"))

	e.POST("/api/create-order", svc.Handler())
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	if portDebug := os.Getenv("DEBUG_PORT"); portDebug != "" {
		debugServer := &http.Server{Addr: ":" + portDebug, Handler: httputils.DebugMux()}
		wg.Add(1)
		go func() {
			defer wg.Done()
			zap.L().Info("start debug mux", zap.String("address", ":"+portDebug))
			if err := debugServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				zap.L().Error("failed run debug mux", zap.Error(err))
			}
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-ctx.Done()
			if err := debugServer.Close(); err != nil {
				zap.L().Error("failed close debug mux", zap.Error(err))
			}
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		zap.L().Info("start order intake server",
			zap.String("address", ":"+portWeb),
			zap.Strings("paths", []string{
				"/api/create-order",
				"/healthz",
			}),
		)
		if err := e.Start(":" + portWeb); err != nil {
			zap.L().Error("failed run order intake server", zap.Error(err))
		}
	}()
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		Ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		if err := e.Shutdown(Ctx); err != nil {
			zap.L().Error("failed shutdown order intake server", zap.Error(err))
		}
		if err := e.Close(); err != nil {
			zap.L().Error("failed close order intake server", zap.Error(err))
		}
		zap.L().Debug("success shutdown order intake server")
	}()
	wg.Wait()
}

// Configure configure zap logger.
//
// Available values of level:
// - DEBUG
// - INFO
// - WARN
// - ERROR
// - DPANIC
// - PANIC
// - FATAL
func defaultLogger(levelSet string) {
	level := zapcore.InfoLevel
	if err := level.Set(levelSet); err != nil {
		panic(err)
	}
	config := zap.NewDevelopmentConfig()
	config.Level.SetLevel(level)
	l, err := config.Build(zap.AddStacktrace(zap.ErrorLevel))
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(l)
	zap.RedirectStdLog(l.Named("stdlog"))
}
