package repository

import (
	"context"
	"time"

	"agentcrm/internal/domain"

	"gorm.io/gorm"
)

type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

type sessionModel struct {
	ID         string    `gorm:"column:id;primaryKey"`
	AgentID    string    `gorm:"column:id_agent"`
	LeadID     *string   `gorm:"column:id_lead"`
	ContextAI  string    `gorm:"column:context_ai"`
	AIResponse *string   `gorm:"column:ai_response"`
	Status     string    `gorm:"column:status"`
	CreatedAt  time.Time `gorm:"column:created_at"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (sessionModel) TableName() string { return "sessions" }

func toDomainSession(m sessionModel) *domain.Session {
	return &domain.Session{
		ID:         m.ID,
		AgentID:    m.AgentID,
		LeadID:     stringValue(m.LeadID),
		ContextAI:  m.ContextAI,
		AIResponse: stringValue(m.AIResponse),
		Status:     m.Status,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func toSessionModel(s *domain.Session) sessionModel {
	return sessionModel{
		ID:         s.ID,
		AgentID:    s.AgentID,
		LeadID:     nullableString(s.LeadID),
		ContextAI:  s.ContextAI,
		AIResponse: nullableString(s.AIResponse),
		Status:     s.Status,
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func (r *SessionRepository) Create(ctx context.Context, s *domain.Session) error {
	m := toSessionModel(s)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*s = *toDomainSession(m)
	return nil
}

func (r *SessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	var m sessionModel
	tx := r.db.WithContext(ctx).Where("id = ?", id).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainSession(m), nil
}

type SessionFilter struct {
	AgentID string
	Status  string
	Limit   int
	Offset  int
}

func (r *SessionRepository) List(ctx context.Context, f SessionFilter) ([]domain.Session, error) {
	q := r.db.WithContext(ctx).Model(&sessionModel{}).Order("created_at DESC")
	if f.AgentID != "" {
		q = q.Where("id_agent = ?", f.AgentID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	var models []sessionModel
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}

	sessions := make([]domain.Session, 0, len(models))
	for _, m := range models {
		sessions = append(sessions, *toDomainSession(m))
	}
	return sessions, nil
}

// SessionUpdate описывает частичное обновление: nil-поле не трогаем,
// пустой LeadID отвязывает лид (NULL в базе).
type SessionUpdate struct {
	Status *string
	LeadID *string
}

func (r *SessionRepository) Update(ctx context.Context, id string, upd SessionUpdate) (*domain.Session, error) {
	fields := map[string]interface{}{}
	if upd.Status != nil {
		fields["status"] = *upd.Status
	}
	if upd.LeadID != nil {
		fields["id_lead"] = nullableString(*upd.LeadID)
	}

	if len(fields) > 0 {
		tx := r.db.WithContext(ctx).Model(&sessionModel{}).Where("id = ?", id).Updates(fields)
		if tx.Error != nil {
			return nil, tx.Error
		}
	}

	return r.GetByID(ctx, id)
}
