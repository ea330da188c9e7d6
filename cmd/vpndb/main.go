package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/vpndb/internal/client/app"
	"github.com/dmitrijs2005/vpndb/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := app.NewApp(ctx, cfg)

	if err != nil {
		log.Fatalf("%v", err)
		return
	}
	defer app.Close()

	// the store cannot be used on an unknown schema
	if err := app.Migrate(ctx); err != nil {
		app.Close()
		log.Fatalf("migration failed: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Printf("%v", err)
	}

}
