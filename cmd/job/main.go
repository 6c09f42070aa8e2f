package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"storefront/config"
	"storefront/internal/awswrapper"
	"storefront/internal/database"
	"storefront/internal/logger"
	"storefront/internal/service"
	"storefront/internal/upstream"
)

const BATCH_SIZE = 2000

// The job takes one snapshot of the upstream catalog and stores it in
// Postgres and as a JSON Lines object in S3.
func main() {
	start := time.Now()

	configs, err := config.LoadConfigs()
	if err != nil {
		logrus.Fatal(err)
	}
	log := logger.New(configs.Log.Level, configs.Log.Format)

	if err := configs.Database.Validate(); err != nil {
		log.Fatal(err)
	}
	if err := configs.S3.Validate(); err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := upstream.NewClient(configs.Upstream, log)
	if err != nil {
		log.Fatal(err)
	}
	products, err := service.NewProductService(client).ListProducts(ctx)
	if err != nil {
		log.Fatal(err)
	}
	log.WithField("count", len(products)).Info("fetched products")

	db, err := database.NewConnection(configs.Database)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()
	if err := database.InitDB(db); err != nil {
		log.Fatal(err)
	}

	s3Client, err := configs.S3.NewS3Client()
	if err != nil {
		log.Fatal(err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := database.NewProductStore(db).UpsertProductsInBatches(gctx, products, BATCH_SIZE, start)
		if err != nil {
			return err
		}
		log.WithField("rows", n).Info("stored products in postgres")
		return nil
	})
	g.Go(func() error {
		key := awswrapper.SnapshotKey(start)
		if err := s3Client.PutProducts(gctx, key, products); err != nil {
			return err
		}
		log.WithField("key", key).Info("stored products in s3")
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}

	log.WithField("duration", time.Since(start)).Info("snapshot complete")
}
