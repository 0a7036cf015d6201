package main

import (
	"flag"
	"log"
	"os"

	"github.com/plateful/recipe-api/config"
	"github.com/plateful/recipe-api/internal/database"
	"github.com/plateful/recipe-api/internal/service"
)

func main() {
	email := flag.String("email", "", "email address for the superuser")
	name := flag.String("name", "", "display name")
	flag.Parse()

	password := os.Getenv("SUPERUSER_PASSWORD")
	if *email == "" || password == "" {
		log.Fatal("both -email and the SUPERUSER_PASSWORD environment variable are required")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	authService := service.NewAuthService(db, cfg.JWTSecret)
	user, err := authService.RegisterSuperuser(*email, password, *name)
	if err != nil {
		log.Fatalf("Failed to create superuser: %v", err)
	}
	log.Printf("Created superuser %s (%s)", user.Email, user.ID)
}
