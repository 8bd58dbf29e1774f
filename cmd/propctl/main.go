package main

import (
	"context"
	"log"
	"os"

	"github.com/propertyplus/propclient/internal/app"
	"github.com/propertyplus/propclient/internal/term"
)

func main() {
	cfg := app.LoadConfig()

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}()

	ui := term.NewUI(os.Stdin, os.Stdout)
	term.New(ui, application.Client, application.Logger).Run(context.Background())
}
