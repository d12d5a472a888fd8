package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/eventadmin/internal/client/cli"
	"github.com/dmitrijs2005/eventadmin/internal/client/config"
	"github.com/dmitrijs2005/eventadmin/internal/logging"
)

func main() {

	ctx := context.Background()
	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.NewTextLogger(os.Stderr, cfg.LogLevel)
	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)

}
