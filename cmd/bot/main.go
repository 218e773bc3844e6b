package main

import (
	"flag"
	"log"
	"os"

	"bookshop-bot/internal/app"

	"github.com/joho/godotenv"
)

func main() {
	configPath := flag.String("config", "./config/config.yaml", "path to the configuration file")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	// Secrets may live in a .env file next to the binary; a missing
	// file is fine when the environment is set directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: could not load .env: %v", err)
	}

	if _, err := os.Stat(*configPath); os.IsNotExist(err) {
		log.Fatalf("configuration file not found: %s", *configPath)
	}

	if err := app.Run(*configPath, *verbose); err != nil {
		log.Fatal(err)
	}
}
