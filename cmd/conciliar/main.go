package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"

	"github.com/Gms006/Drogarias/internal/commands"
)

func main() {
	if err := godotenv.Load(); err == nil {
		log.Debug("loaded .env")
	}

	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
