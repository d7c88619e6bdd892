package main

import (
	"log"

	"fortune_wheel/internal/app"
)

func main() {
	a := app.NewApp()

	if err := a.Run(); err != nil {
		log.Fatalf("failed to run app: %v", err)
	}
}
