package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "brooksportal/internal/config"
	"brooksportal/internal/db"
	api "brooksportal/internal/http"
	"brooksportal/internal/storage"
	"brooksportal/internal/utils"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}
	utils.InitLogger(env.GinMode)

	intconfig.ConnectDB(env.DBDSN)
	defer intconfig.CloseDB()

	if err := db.EnsureSchema(intconfig.DB); err != nil {
		log.Fatalf("schema bootstrap failed: %v", err)
	}

	ref := intconfig.LoadReference(env.ReferenceFile)

	store, err := storage.NewDiskStore(env.SignatureDir, env.PublicBaseURL)
	if err != nil {
		log.Fatalf("signature store init failed: %v", err)
	}

	r := api.NewRouter(env, ref, store)

	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Infof("server listening on %s", env.AppAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown failed: %v", err)
	}

	log.Info("server stopped")
}
