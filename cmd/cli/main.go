package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/qrtrack/internal/buildinfo"
	"github.com/dmitrijs2005/qrtrack/internal/client/cli"
	"github.com/dmitrijs2005/qrtrack/internal/client/config"
	"github.com/dmitrijs2005/qrtrack/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()

	app, err := cli.NewApp(cfg, logging.NewDefault())
	if err != nil {
		log.Fatalf("%v", err)
		return
	}

	app.Run(ctx)
}
