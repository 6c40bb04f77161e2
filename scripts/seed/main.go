// seed populates a fresh database with a default admin account and
// demo content for local development.
//
// Usage: go run ./scripts/seed
//
// Configuration comes from config.yaml plus the usual environment
// variables; JWT_SECRET must be set because config loading requires it.
// Existing rows are left alone: the admin is skipped when the email is
// already taken, and demo content is only inserted into empty tables.
package main

import (
	"context"
	"errors"
	"log"

	"github.com/joho/godotenv"

	"github.com/escotech/escotech-api/pkg/apperrors"
	"github.com/escotech/escotech-api/pkg/auth"
	"github.com/escotech/escotech-api/pkg/config"
	"github.com/escotech/escotech-api/pkg/database"
	"github.com/escotech/escotech-api/pkg/models"
	"github.com/escotech/escotech-api/pkg/repositories"
)

const (
	adminEmail    = "admin@escotech.rw"
	adminPassword = "admin123"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml", "seed")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := database.NewConnection(ctx, cfg.Database.ConnectionString(), 2)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	seedAdmin(ctx, repositories.NewAdminRepository(db))
	seedServices(ctx, repositories.NewServiceRepository(db))
	seedTeam(ctx, repositories.NewTeamMemberRepository(db))

	log.Println("Seeding complete")
}

func seedAdmin(ctx context.Context, admins repositories.AdminRepository) {
	hash, err := auth.HashPassword(adminPassword)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	admin := &models.Admin{
		Email:    adminEmail,
		Password: hash,
		Name:     "ESCOtech Admin",
	}

	if err := admins.Create(ctx, admin); err != nil {
		if errors.Is(err, apperrors.ErrEmailTaken) {
			log.Printf("Admin %s already exists, skipping", adminEmail)
			return
		}
		log.Fatalf("Failed to create admin: %v", err)
	}

	log.Printf("Created admin %s (password: %s)", adminEmail, adminPassword)
}

func seedServices(ctx context.Context, services repositories.ServiceRepository) {
	existing, err := services.Find(ctx)
	if err != nil {
		log.Fatalf("Failed to check services: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("Services table not empty, skipping demo services")
		return
	}

	demo := []*models.Service{
		{
			Title:       "Residential Construction",
			Description: "Complete home construction from foundation to finishing, tailored to your plans and budget.",
			Features:    []string{"Architectural design", "Structural works", "Interior finishing"},
			Icon:        "home",
			Order:       1,
		},
		{
			Title:       "Commercial Construction",
			Description: "Office blocks, retail spaces and industrial facilities built to schedule.",
			Features:    []string{"Project management", "Steel structures", "Fit-out works"},
			Icon:        "building",
			Order:       2,
		},
		{
			Title:       "Renovation & Remodeling",
			Description: "Modernize existing buildings with minimal disruption to occupants.",
			Features:    []string{"Structural assessment", "Interior remodeling", "Facade upgrades"},
			Icon:        "tools",
			Order:       3,
		},
	}

	for _, s := range demo {
		if err := services.Create(ctx, s); err != nil {
			log.Fatalf("Failed to create service %q: %v", s.Title, err)
		}
	}

	log.Printf("Created %d demo services", len(demo))
}

func seedTeam(ctx context.Context, team repositories.TeamMemberRepository) {
	existing, err := team.Find(ctx)
	if err != nil {
		log.Fatalf("Failed to check team members: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("Team table not empty, skipping demo team")
		return
	}

	demo := []*models.TeamMember{
		{
			Name:        "Jean Bosco Niyonzima",
			Role:        "Chief Executive Officer",
			Description: "Founder with two decades in construction and energy services across East Africa.",
			Image:       "https://res.cloudinary.com/demo/image/upload/v1/escotech/team/ceo.jpg",
			Order:       0,
			IsCEO:       true,
		},
		{
			Name:        "Aline Uwase",
			Role:        "Head of Engineering",
			Description: "Leads structural design and site supervision on all active projects.",
			Image:       "https://res.cloudinary.com/demo/image/upload/v1/escotech/team/engineering.jpg",
			Order:       1,
		},
	}

	for _, m := range demo {
		if err := team.Create(ctx, m); err != nil {
			log.Fatalf("Failed to create team member %q: %v", m.Name, err)
		}
	}

	log.Printf("Created %d demo team members", len(demo))
}
