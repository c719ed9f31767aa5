package main

import (
	"os"

	"ecotrack/internal/app"
)

func main() {
	application := app.New()
	os.Exit(application.Run())
}
