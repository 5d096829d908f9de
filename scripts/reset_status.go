package main

import (
	"flag"
	"log"

	"codequest/resume-validator/internal/config"
	"codequest/resume-validator/internal/repositories"
)

// Admin escape hatch: force a registration out of a stuck Processing state so
// the candidate's spinner clears and they can upload again.
func main() {
	userID := flag.String("user", "", "registration ID to reset")
	flag.Parse()

	if *userID == "" {
		log.Fatal("❌ -user is required")
	}

	cfg := config.Load()

	db, err := config.InitDatabase(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize database: %v", err)
	}

	regRepo := repositories.NewRegistrationRepository(db)

	log.Printf("Resetting status for user %s...\n", *userID)
	if err := regRepo.ForceReject(*userID, "System Reset: Please upload again."); err != nil {
		log.Fatalf("❌ Failed to reset user: %v", err)
	}

	log.Println("✅ User status reset successfully.")
}
