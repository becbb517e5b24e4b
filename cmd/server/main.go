package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/reuben-baek/relation-save/config"
	"github.com/reuben-baek/relation-save/data"
	"github.com/reuben-baek/relation-save/infra"
	"github.com/reuben-baek/relation-save/service"
	"github.com/reuben-baek/relation-save/web"
	"github.com/sirupsen/logrus"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}
	setupLogging(cfg.Log)

	strategy, err := service.ParseStrategy(cfg.Strategy)
	if err != nil {
		logrus.Fatalf("default strategy: %v", err)
	}

	db, err := infra.OpenDatabase(cfg.Database)
	if err != nil {
		logrus.Fatalf("open database: %v", err)
	}
	if cfg.Database.AutoMigrate {
		if err := infra.Migrate(db); err != nil {
			logrus.Fatalf("migrate: %v", err)
		}
	}

	transactionManager := data.NewGormTransactionManager(db)
	repositories := infra.NewRepositories(transactionManager)

	gin.SetMode(cfg.Server.Mode)
	router := web.NewRouter(web.Services{
		Products:    service.NewProductService(transactionManager, repositories.Products, repositories.Categories, strategy),
		People:      service.NewPersonService(transactionManager, repositories.People, repositories.Departments, strategy),
		Categories:  service.NewCategoryService(transactionManager, repositories.Categories),
		Departments: service.NewDepartmentService(transactionManager, repositories.Departments),
	})

	server := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logrus.Infof("listening on %s, default strategy [%s]", cfg.Server.Addr, cfg.Strategy)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("serve: %v", err)
		}
	}()

	<-ctx.Done()
	logrus.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("shutdown: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func setupLogging(cfg config.Log) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logrus.Warnf("unknown log level %q, using info", cfg.Level)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	if cfg.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}
