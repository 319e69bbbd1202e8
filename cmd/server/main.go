package main

import (
	"github.com/joho/godotenv"

	"paysched/internal/app/server"
)

func main() {
	// Missing .env is fine; environment variables win either way.
	_ = godotenv.Load()
	server.Run()
}
