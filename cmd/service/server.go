package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront/config"
	"storefront/internal/api"
	"storefront/internal/gql"
	"storefront/internal/logger"
	"storefront/internal/service"
	"storefront/internal/upstream"
)

func main() {
	configs, err := config.LoadConfigs()
	if err != nil {
		logrus.Fatal(err)
	}
	log := logger.New(configs.Log.Level, configs.Log.Format)
	gin.SetMode(gin.ReleaseMode)

	client, err := upstream.NewClient(configs.Upstream, log)
	if err != nil {
		log.Fatal(err)
	}
	products := service.NewProductService(client)

	schema, err := gql.NewSchema(products)
	if err != nil {
		log.Fatalf("building graphql schema: %v", err)
	}

	srv := &http.Server{
		Addr:    configs.ServerCfg.Addr(),
		Handler: api.SetupRouter(schema, products, log),
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("shutdown")
	}
}
