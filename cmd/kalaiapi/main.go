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

	"go.uber.org/zap"

	"github.com/kalai-medical/kalaiapi/config"
	"github.com/kalai-medical/kalaiapi/internal/adminapi"
	"github.com/kalai-medical/kalaiapi/internal/app"
	"github.com/kalai-medical/kalaiapi/internal/auth"
	"github.com/kalai-medical/kalaiapi/internal/catalog"
	"github.com/kalai-medical/kalaiapi/internal/publicapi"
	"github.com/kalai-medical/kalaiapi/internal/webserver"
	"github.com/kalai-medical/kalaiapi/internal/whatsapp"
)

var (
	cfile  = flag.String("c", "/etc/kalaiapi.yml", "config file")
	initdb = flag.Bool("initdb", false, "drop and recreate the database schema, then exit")
	seed   = flag.Bool("seed", false, "load catalog fixtures into empty collections, then exit")
)

func main() {
	flag.Parse()

	cfg := config.LoadConfig(*cfile)
	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initdb {
		application.InitDb()
		zap.S().Info("database schema recreated")
	}
	if *seed {
		application.SeedCatalog()
	}
	if *initdb || *seed {
		return
	}

	db := application.DB()
	products := catalog.NewProducts(db)
	treatments := catalog.NewTreatments(db)
	verifier := auth.NewVerifier(cfg.Admin.Username, cfg.Admin.Password)
	tokens := auth.NewTokenService(cfg.Web.Secret)
	links := whatsapp.NewLinkBuilder(cfg.Whatsapp.Number)

	ws := webserver.New(cfg)
	adminapi.New(verifier, tokens, products, treatments).Register(ws.Group("/api/admin"))
	publicapi.New(products, treatments, links).Register(ws.Group("/api/public"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := ws.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.S().Fatalf("web server error: %v", err)
		}
	}()

	<-ctx.Done()
	zap.S().Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := ws.Shutdown(shutdownCtx); err != nil {
		zap.S().Errorf("shutdown error: %v", err)
	}
}
