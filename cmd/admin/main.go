package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	// ========================================
	// LOAD ENVIRONMENT VARIABLES
	// ========================================
	// .env for local development; production uses the real environment
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("⚠️  No .env file found, using system environment variables")
	}

	if err := newRootCmd(newApp()).Execute(); err != nil {
		os.Exit(1)
	}
}
