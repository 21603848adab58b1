package main

import (
	"log"

	"github.com/MrSnakeDoc/askgrace/internal/app"
)

func main() {
	a, err := app.New()
	if err != nil {
		log.Fatalf("askgrace failed to start: %v", err)
	}
	if err := a.Run(); err != nil {
		log.Fatalf("askgrace stopped with error: %v", err)
	}
}
