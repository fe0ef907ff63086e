package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"agentcrm/internal/database"
	"agentcrm/internal/domain"
	"agentcrm/internal/repository"
)

func main() {
	gofakeit.Seed(time.Now().UnixNano())

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "crm.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM sessions")
	db.Exec("DELETE FROM leads")
	db.Exec("DELETE FROM agents")

	ctx := context.Background()
	agentRepo := repository.NewAgentRepository(db)
	leadRepo := repository.NewLeadRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	// ================== AGENTS ==================
	log.Println("Creating agents...")

	cities := []string{"Москва", "Казань", "Новосибирск", "Екатеринбург", "Омск"}
	hash, _ := bcrypt.GenerateFromPassword([]byte("demo123"), bcrypt.DefaultCost)

	agents := make([]*domain.Agent, 0, 5)
	for i := 0; i < 5; i++ {
		a := &domain.Agent{
			ID:            uuid.NewString(),
			FirstName:     gofakeit.FirstName(),
			LastName:      gofakeit.LastName(),
			Phone:         fmt.Sprintf("+7 999 %03d-%02d-%02d", rand.Intn(1000), rand.Intn(100), rand.Intn(100)),
			Email:         gofakeit.Email(),
			Login:         fmt.Sprintf("agent%d", i+1),
			PasswordHash:  string(hash),
			City:          cities[i%len(cities)],
			ReferralLinks: []string{gofakeit.URL()},
		}
		if err := agentRepo.Create(ctx, a); err != nil {
			log.Fatal("agent create failed:", err)
		}
		agents = append(agents, a)
		log.Printf("Agent created: %s / demo123", a.Login)
	}

	// ================== LEADS ==================
	log.Println("Creating leads...")

	statuses := []string{"new", "in_progress", "closed"}
	sources := []string{"site", "consultation", "landing", "telegram"}
	now := time.Now()

	for i := 0; i < 40; i++ {
		createdAt := now.Add(-time.Duration(i) * time.Hour)
		l := &domain.Lead{
			ID:        uuid.NewString(),
			Source:    sources[rand.Intn(len(sources))],
			FirstName: gofakeit.FirstName(),
			LastName:  gofakeit.LastName(),
			Status:    statuses[rand.Intn(len(statuses))],
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		}
		if rand.Intn(2) == 0 {
			l.Phone = fmt.Sprintf("+7999%07d", rand.Intn(10000000))
		} else {
			l.Telegram = "@" + gofakeit.Username()
		}
		if rand.Intn(3) > 0 {
			l.AgentID = agents[rand.Intn(len(agents))].ID
		}
		if rand.Intn(3) == 0 {
			l.Comment = gofakeit.Sentence(6)
		}
		if rand.Intn(4) == 0 {
			l.PreferredTime = "после 18:00"
		}
		if err := leadRepo.Create(ctx, l); err != nil {
			log.Fatal("lead create failed:", err)
		}
	}

	// ================== SESSIONS ==================
	log.Println("Creating sessions...")

	for _, a := range agents[:3] {
		s := &domain.Session{
			ID:        uuid.NewString(),
			AgentID:   a.ID,
			ContextAI: fmt.Sprintf("Рабочая сессия агента %s. Демо-контекст для стенда.", a.DisplayName()),
			Status:    domain.SessionStatusActive,
		}
		if err := sessionRepo.Create(ctx, s); err != nil {
			log.Fatal("session create failed:", err)
		}
	}

	log.Println("Seed complete")
}
