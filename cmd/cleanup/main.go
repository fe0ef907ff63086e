package main

import (
	"log"
	"os"
	"time"

	"agentcrm/internal/database"
)

// Удаляет завершённые сессии старше 30 дней. Запускается по крону.
func main() {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	db, err := database.Connect(databaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	cutoff := time.Now().AddDate(0, 0, -30)

	res := db.Exec(`DELETE FROM sessions WHERE status <> ? AND updated_at < ?`, "active", cutoff)
	if res.Error != nil {
		log.Fatalf("cleanup sessions failed: %v", res.Error)
	}

	log.Printf("session cleanup completed: sessions=%d", res.RowsAffected)
}
