package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/tpdash/tp-dashboard-backend/internal/app"
)

func main() {
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, relying on process environment")
	}

	theApp, err := app.New()
	if err != nil {
		fmt.Printf("Failed to start: %v\n", err)
		os.Exit(1)
	}
	defer theApp.Log.Sync()

	if err := theApp.Run(); err != nil {
		theApp.Log.Error("HTTP server exited", "error", err)
		os.Exit(1)
	}
}
