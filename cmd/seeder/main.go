package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/openpitch/pickup/internal/database"
	"github.com/openpitch/pickup/internal/timeslot"
)

type seedField struct {
	id   string
	name string
	city string
}

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"DB_NAME":        "pickup.db",
		"MIGRATIONS_DIR": "./migrations",
	}
	for key := range config {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		}
	}
	return config
}

func main() {
	log.Info("Starting database seeder...")
	cfg := loadConfig()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], os.Getenv("TURSO_PRIMARY_URL"), os.Getenv("TURSO_AUTH_TOKEN"), cfg["MIGRATIONS_DIR"])
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	seedFields := []seedField{
		{id: "field-riverside", name: "Riverside Pitch", city: "Copenhagen"},
		{id: "field-harbor", name: "Harbor Turf", city: "Copenhagen"},
		{id: "field-north", name: "North Commons", city: "Aarhus"},
	}
	windows := []timeslot.TimeSlot{
		{StartTime: "08:00", EndTime: "10:00"},
		{StartTime: "10:00", EndTime: "12:00"},
		{StartTime: "16:00", EndTime: "18:00"},
		{StartTime: "18:00", EndTime: "20:00"},
	}

	tx, err := db.Begin()
	if err != nil {
		log.Fatalf("Failed to begin transaction: %s", err)
	}

	const days = 7
	inserted := 0
	today := time.Now()
	for d := 0; d < days; d++ {
		date := today.AddDate(0, 0, d).Format(timeslot.DateLayout)
		for _, f := range seedFields {
			for i, w := range windows {
				// Mark a deterministic subset as taken so every day shows a
				// mix of full, partial and available fields.
				available := 1
				if (d+i)%3 == 0 {
					available = 0
				}
				_, err := tx.Exec(`
					INSERT OR IGNORE INTO field_slots (id, field_id, field_name, field_city, date, start_time, end_time, is_available)
					VALUES (?, ?, ?, ?, ?, ?, ?, ?);`,
					fmt.Sprintf("%s-%s-%d", f.id, date, i),
					f.id, f.name, f.city, date, w.StartTime, w.EndTime, available,
				)
				if err != nil {
					tx.Rollback()
					log.Fatalf("Failed to insert field slot: %s", err)
				}
				inserted++
			}
		}
	}
	log.Info("Seeded field slots", "count", inserted)

	seedUsers := []struct {
		id, name string
	}{
		{"user-1", "Seeder Player A"},
		{"user-2", "Seeder Player B"},
		{"user-3", "Seeder Player C"},
	}
	for i, u := range seedUsers {
		date := today.AddDate(0, 0, i+1).Format(timeslot.DateLayout)
		_, err := tx.Exec(`
			INSERT INTO user_availability (id, user_id, user_name, user_avatar, date, time_slots_json, is_recurring, preferred_fields_json, max_distance, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);`,
			uuid.NewString(), u.id, u.name, "",
			date,
			`[{"start_time":"18:00","end_time":"20:00"}]`,
			0,
			`["field-riverside"]`,
			10.0,
			time.Now().Unix(),
		)
		if err != nil {
			tx.Rollback()
			log.Fatalf("Failed to insert availability record for %s: %s", u.name, err)
		}
	}
	log.Info("Seeded availability records", "count", len(seedUsers))

	if err := tx.Commit(); err != nil {
		log.Fatalf("Failed to commit transaction: %s", err)
	}

	log.Info("Seeding complete.")
}
