// Command main recomputes the denormalized engagement counters from their
// source-of-truth rows. Run it after a counter drifted, for example when a
// request reported an inconsistent state.
package main

import (
	"log"

	"clipstream/internal/config"
	"clipstream/internal/database"
	"clipstream/internal/seed"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Reconciling engagement counters...")
	if err := seed.ReconcileCounters(db); err != nil {
		log.Fatalf("Reconcile failed: %v", err)
	}
	log.Println("All counters match their source rows.")
}
