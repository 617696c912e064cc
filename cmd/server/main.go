package main

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/dmitrijs2005/gophblog/internal/server"
	"github.com/dmitrijs2005/gophblog/internal/server/config"
	"github.com/spf13/pflag"
)

func main() {
	cfg, err := config.LoadConfig(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			config.PrintUsage(os.Stdout)
			return
		}
		log.Fatalf("config error: %v", err)
	}

	ctx := context.Background()
	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
