package main

import (
	"log"
	"os"
	"time"

	"mentorlink-be/internal/entity"
	"mentorlink-be/internal/mapper"
	"mentorlink-be/pkg/database"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding demo users...")

	userMapper := mapper.NewUserMapper()
	now := time.Now()

	users := []entity.User{
		{
			Id:        uuid.New(),
			FullName:  "Alice Tan",
			Email:     "alice.learner@example.com",
			Role:      entity.RoleLearner,
			Topics:    []string{"calculus", "linear algebra"},
			Bio:       "First-year engineering student brushing up on math.",
			CreatedAt: now,
		},
		{
			Id:        uuid.New(),
			FullName:  "Bob Hartono",
			Email:     "bob.educator@example.com",
			Role:      entity.RoleEducator,
			Skills:    []string{"calculus", "differential equations", "physics"},
			Bio:       "Ten years teaching university mathematics.",
			CreatedAt: now,
		},
		{
			Id:        uuid.New(),
			FullName:  "Citra Dewi",
			Email:     "citra.educator@example.com",
			Role:      entity.RoleEducator,
			Skills:    []string{"english literature", "academic writing"},
			Bio:       "Writing coach focused on essays and theses.",
			CreatedAt: now,
		},
		{
			Id:        uuid.New(),
			FullName:  "Dimas Putra",
			Email:     "dimas.educator@example.com",
			Role:      entity.RoleEducator,
			Skills:    []string{"python", "data structures", "algorithms"},
			Bio:       "Software engineer mentoring CS fundamentals.",
			CreatedAt: now,
		},
	}

	seeded := 0
	for i := range users {
		m := userMapper.ToModel(&users[i])
		result := db.Where("email = ?", m.Email).FirstOrCreate(m)
		if result.Error != nil {
			color.Red("  failed: %s (%v)", m.Email, result.Error)
			continue
		}
		if result.RowsAffected > 0 {
			color.Green("  created: %s [%s]", m.Email, m.Role)
			seeded++
		} else {
			color.Yellow("  exists:  %s", m.Email)
		}
	}

	color.Cyan("Done. %d new users seeded.", seeded)
}
