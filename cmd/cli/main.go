package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/trustcart/internal/buildinfo"
	"github.com/dmitrijs2005/trustcart/internal/client/cli"
	"github.com/dmitrijs2005/trustcart/internal/client/client"
	"github.com/dmitrijs2005/trustcart/internal/client/config"
	"github.com/dmitrijs2005/trustcart/internal/client/media"
	"github.com/dmitrijs2005/trustcart/internal/client/notify"
	"github.com/dmitrijs2005/trustcart/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/trustcart/internal/client/services"
	"github.com/dmitrijs2005/trustcart/internal/client/session"
	"github.com/dmitrijs2005/trustcart/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.New(os.Stderr, cfg.LogLevel)

	db, err := client.InitDatabase(ctx, cfg.DBPath)
	if err != nil {
		log.Fatalf("error initializing database: %v", err)
	}
	defer db.Close()

	tokens := metadata.NewTokenStore(db)
	api, err := client.NewHTTPClient(cfg.APIBaseURL, tokens,
		client.WithTimeout(cfg.RequestTimeout),
		client.WithLogger(logger),
	)
	if err != nil {
		log.Fatalf("api client: %v", err)
	}

	sess := session.New(api, tokens, logger)
	images := media.NewLoader(cfg.S3)
	notifier := notify.NewConsole(os.Stdout)

	app := cli.NewApp(cli.Deps{
		Session:   sess,
		Account:   services.NewAccountService(api, sess, images, notifier, cfg.ProfileURL),
		Catalog:   services.NewCatalogService(api),
		Admin:     services.NewAdminService(api, sess, images, notifier),
		Reviews:   services.NewReviewService(api, sess, notifier),
		Notifier:  notifier,
		Logger:    logger,
		LastEmail: tokens.LastEmail,
		Timeout:   cfg.RequestTimeout,
		In:        os.Stdin,
		Out:       os.Stdout,
	})

	app.Run(ctx)

}
