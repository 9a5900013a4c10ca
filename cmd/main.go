package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/postline/postline-auth/internal/api/http/apictx"
	"github.com/postline/postline-auth/internal/api/http/handler"
	"github.com/postline/postline-auth/internal/api/http/middleware"
	"github.com/postline/postline-auth/internal/api/http/router"
	"github.com/postline/postline-auth/internal/config"
	"github.com/postline/postline-auth/internal/identity"
	"github.com/postline/postline-auth/internal/logger"
	"github.com/postline/postline-auth/internal/model"
	"github.com/postline/postline-auth/internal/password"
	"github.com/postline/postline-auth/internal/repository/postgres"
	"github.com/postline/postline-auth/internal/server"
	"github.com/postline/postline-auth/internal/service"
	"github.com/postline/postline-auth/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel)

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err)
	}
	defer db.Close()

	accountRepo := postgres.NewAccountRepository(db)
	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.AccessTTL, cfg.JWT.RefreshTTL)
	tokenService := service.NewTokenService(tokenManager, accountRepo, logger)

	googleProvider := identity.NewGoogle(identity.Config{
		ClientID:     cfg.Google.ClientID,
		ClientSecret: cfg.Google.ClientSecret,
		RedirectURL:  cfg.Google.RedirectURL,
		AuthURL:      cfg.Google.AuthURL,
		TokenURL:     cfg.Google.TokenURL,
		UserInfoURL:  cfg.Google.UserInfoURL,
	}, logger)

	sessionService := service.NewSession(accountRepo, password.NewBcrypt(0), googleProvider, tokenService, logger)

	ctxManager := apictx.NewManager()
	authHandler := handler.NewAuth(sessionService, tokenService, ctxManager, logger)
	gate := middleware.NewAuthenticate(tokenService, ctxManager, logger)
	logging := middleware.NewLogging(logger)

	mux := router.New(authHandler, gate, logging, logger).Register()
	httpServer := server.NewHTTPServer(mux, fmt.Sprintf(":%s", cfg.HTTP.Port))

	var sl model.SecurityLayer
	if cfg.HTTP.EnableHTTPS {
		sl = server.NewTLSListener(cfg.HTTP.CertFileName, cfg.HTTP.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address())
		err := s.Start(sl)
		if err != nil {
			logger.Error("failed to start server", "error", err)
		}
	}(httpServer)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", httpServer.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
