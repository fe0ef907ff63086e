package repository

import (
	"context"
	"time"

	"agentcrm/internal/domain"

	"gorm.io/gorm"
)

type LeadRepository struct {
	db *gorm.DB
}

func NewLeadRepository(db *gorm.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

type leadModel struct {
	ID            string    `gorm:"column:id;primaryKey"`
	Source        string    `gorm:"column:source"`
	FirstName     string    `gorm:"column:first_name"`
	LastName      string    `gorm:"column:last_name"`
	MiddleName    *string   `gorm:"column:middle_name"`
	Phone         *string   `gorm:"column:phone"`
	Telegram      *string   `gorm:"column:telegram"`
	Email         *string   `gorm:"column:email"`
	PreferredTime *string   `gorm:"column:preferred_time"`
	Comment       *string   `gorm:"column:comment"`
	AgentID       *string   `gorm:"column:id_agent"`
	Status        string    `gorm:"column:status"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (leadModel) TableName() string { return "leads" }

func toDomainLead(m leadModel) *domain.Lead {
	return &domain.Lead{
		ID:            m.ID,
		Source:        m.Source,
		FirstName:     m.FirstName,
		LastName:      m.LastName,
		MiddleName:    stringValue(m.MiddleName),
		Phone:         stringValue(m.Phone),
		Telegram:      stringValue(m.Telegram),
		Email:         stringValue(m.Email),
		PreferredTime: stringValue(m.PreferredTime),
		Comment:       stringValue(m.Comment),
		AgentID:       stringValue(m.AgentID),
		Status:        m.Status,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

func toLeadModel(l *domain.Lead) leadModel {
	return leadModel{
		ID:            l.ID,
		Source:        l.Source,
		FirstName:     l.FirstName,
		LastName:      l.LastName,
		MiddleName:    nullableString(l.MiddleName),
		Phone:         nullableString(l.Phone),
		Telegram:      nullableString(l.Telegram),
		Email:         nullableString(l.Email),
		PreferredTime: nullableString(l.PreferredTime),
		Comment:       nullableString(l.Comment),
		AgentID:       nullableString(l.AgentID),
		Status:        l.Status,
		CreatedAt:     l.CreatedAt,
		UpdatedAt:     l.UpdatedAt,
	}
}

func (r *LeadRepository) Create(ctx context.Context, l *domain.Lead) error {
	m := toLeadModel(l)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*l = *toDomainLead(m)
	return nil
}

func (r *LeadRepository) GetByID(ctx context.Context, id string) (*domain.Lead, error) {
	var m leadModel
	tx := r.db.WithContext(ctx).Where("id = ?", id).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainLead(m), nil
}

type LeadFilter struct {
	Status  string
	AgentID string
	Limit   int
	Offset  int
}

func (r *LeadRepository) List(ctx context.Context, f LeadFilter) ([]domain.Lead, error) {
	q := r.db.WithContext(ctx).Model(&leadModel{}).Order("created_at DESC")
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.AgentID != "" {
		q = q.Where("id_agent = ?", f.AgentID)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	var models []leadModel
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}

	leads := make([]domain.Lead, 0, len(models))
	for _, m := range models {
		leads = append(leads, *toDomainLead(m))
	}
	return leads, nil
}

// ListByAgent возвращает последние limit лидов, назначенных агенту.
func (r *LeadRepository) ListByAgent(ctx context.Context, agentID string, limit int) ([]domain.Lead, error) {
	return r.List(ctx, LeadFilter{AgentID: agentID, Limit: limit})
}

// LeadUpdate описывает частичное обновление: nil-поле не трогаем,
// пустой AgentID снимает назначение (NULL в базе).
type LeadUpdate struct {
	Status  *string
	AgentID *string
}

func (r *LeadRepository) Update(ctx context.Context, id string, upd LeadUpdate) (*domain.Lead, error) {
	fields := map[string]interface{}{}
	if upd.Status != nil {
		fields["status"] = *upd.Status
	}
	if upd.AgentID != nil {
		fields["id_agent"] = nullableString(*upd.AgentID)
	}

	if len(fields) > 0 {
		tx := r.db.WithContext(ctx).Model(&leadModel{}).Where("id = ?", id).Updates(fields)
		if tx.Error != nil {
			return nil, tx.Error
		}
	}

	return r.GetByID(ctx, id)
}
