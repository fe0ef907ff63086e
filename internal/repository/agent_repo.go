package repository

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"agentcrm/internal/domain"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type AgentRepository struct {
	db *gorm.DB
}

func NewAgentRepository(db *gorm.DB) *AgentRepository {
	return &AgentRepository{db: db}
}

type agentModel struct {
	ID              string         `gorm:"column:id;primaryKey"`
	FirstName       string         `gorm:"column:first_name"`
	LastName        string         `gorm:"column:last_name"`
	MiddleName      *string        `gorm:"column:middle_name"`
	Phone           string         `gorm:"column:phone"`
	Email           *string        `gorm:"column:email"`
	Login           *string        `gorm:"column:login;uniqueIndex"`
	PasswordHash    *string        `gorm:"column:password_hash"`
	Website         *string        `gorm:"column:website"`
	TelegramChannel *string        `gorm:"column:telegram_channel"`
	TelegramBot     *string        `gorm:"column:telegram_bot"`
	City            *string        `gorm:"column:city"`
	BankDetails     *string        `gorm:"column:bank_details"`
	ReferralLinks   datatypes.JSON `gorm:"column:referral_links"`
	CreatedAt       time.Time      `gorm:"column:created_at"`
	UpdatedAt       time.Time      `gorm:"column:updated_at"`
}

func (agentModel) TableName() string { return "agents" }

func toDomainAgent(m agentModel) *domain.Agent {
	var links []string
	if len(m.ReferralLinks) > 0 {
		_ = json.Unmarshal(m.ReferralLinks, &links)
	}

	return &domain.Agent{
		ID:              m.ID,
		FirstName:       m.FirstName,
		LastName:        m.LastName,
		MiddleName:      stringValue(m.MiddleName),
		Phone:           m.Phone,
		Email:           stringValue(m.Email),
		Login:           stringValue(m.Login),
		PasswordHash:    stringValue(m.PasswordHash),
		Website:         stringValue(m.Website),
		TelegramChannel: stringValue(m.TelegramChannel),
		TelegramBot:     stringValue(m.TelegramBot),
		City:            stringValue(m.City),
		BankDetails:     stringValue(m.BankDetails),
		ReferralLinks:   links,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

func toAgentModel(a *domain.Agent) agentModel {
	return agentModel{
		ID:              a.ID,
		FirstName:       a.FirstName,
		LastName:        a.LastName,
		MiddleName:      nullableString(a.MiddleName),
		Phone:           a.Phone,
		Email:           nullableString(a.Email),
		Login:           nullableString(a.Login),
		PasswordHash:    nullableString(a.PasswordHash),
		Website:         nullableString(a.Website),
		TelegramChannel: nullableString(a.TelegramChannel),
		TelegramBot:     nullableString(a.TelegramBot),
		City:            nullableString(a.City),
		BankDetails:     nullableString(a.BankDetails),
		ReferralLinks:   marshalLinks(a.ReferralLinks),
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// marshalLinks сериализует список ссылок; пустой список хранится как NULL.
func marshalLinks(links []string) datatypes.JSON {
	if len(links) == 0 {
		return nil
	}
	b, err := json.Marshal(links)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}

func nullableString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (r *AgentRepository) Create(ctx context.Context, a *domain.Agent) error {
	m := toAgentModel(a)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*a = *toDomainAgent(m)
	return nil
}

func (r *AgentRepository) GetByID(ctx context.Context, id string) (*domain.Agent, error) {
	var m agentModel
	tx := r.db.WithContext(ctx).Where("id = ?", id).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainAgent(m), nil
}

type AgentFilter struct {
	City   string
	Limit  int
	Offset int
}

func (r *AgentRepository) List(ctx context.Context, f AgentFilter) ([]domain.Agent, error) {
	q := r.db.WithContext(ctx).Model(&agentModel{}).Order("created_at DESC")
	if f.City != "" {
		q = q.Where("city = ?", f.City)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	if f.Offset > 0 {
		q = q.Offset(f.Offset)
	}

	var models []agentModel
	if err := q.Find(&models).Error; err != nil {
		return nil, err
	}

	agents := make([]domain.Agent, 0, len(models))
	for _, m := range models {
		agents = append(agents, *toDomainAgent(m))
	}
	return agents, nil
}

// AgentUpdate описывает частичное обновление: nil-поле не трогаем.
type AgentUpdate struct {
	FirstName       *string
	LastName        *string
	MiddleName      *string
	Phone           *string
	Email           *string
	Website         *string
	TelegramChannel *string
	TelegramBot     *string
	City            *string
	BankDetails     *string
	ReferralLinks   *[]string
}

func (r *AgentRepository) Update(ctx context.Context, id string, upd AgentUpdate) (*domain.Agent, error) {
	fields := map[string]interface{}{}
	if upd.FirstName != nil {
		fields["first_name"] = *upd.FirstName
	}
	if upd.LastName != nil {
		fields["last_name"] = *upd.LastName
	}
	if upd.MiddleName != nil {
		fields["middle_name"] = nullableString(*upd.MiddleName)
	}
	if upd.Phone != nil {
		fields["phone"] = *upd.Phone
	}
	if upd.Email != nil {
		fields["email"] = nullableString(*upd.Email)
	}
	if upd.Website != nil {
		fields["website"] = nullableString(*upd.Website)
	}
	if upd.TelegramChannel != nil {
		fields["telegram_channel"] = nullableString(*upd.TelegramChannel)
	}
	if upd.TelegramBot != nil {
		fields["telegram_bot"] = nullableString(*upd.TelegramBot)
	}
	if upd.City != nil {
		fields["city"] = nullableString(*upd.City)
	}
	if upd.BankDetails != nil {
		fields["bank_details"] = nullableString(*upd.BankDetails)
	}
	if upd.ReferralLinks != nil {
		fields["referral_links"] = marshalLinks(*upd.ReferralLinks)
	}

	if len(fields) > 0 {
		tx := r.db.WithContext(ctx).Model(&agentModel{}).Where("id = ?", id).Updates(fields)
		if tx.Error != nil {
			return nil, tx.Error
		}
	}

	return r.GetByID(ctx, id)
}

// Delete удаляет агента вместе с зависимыми записями в одной транзакции:
// сессии уходят каскадом, лиды остаются без назначенного агента.
func (r *AgentRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id_agent = ?", id).Delete(&sessionModel{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&leadModel{}).Where("id_agent = ?", id).Update("id_agent", nil).Error; err != nil {
			return err
		}

		res := tx.Where("id = ?", id).Delete(&agentModel{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *AgentRepository) ExistsByLogin(ctx context.Context, login string) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&agentModel{}).Where("login = ?", login).Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}

// FindByCredential ищет агента по логину, email или телефону — все три
// считаются равноправными идентификаторами при входе.
func (r *AgentRepository) FindByCredential(ctx context.Context, identifier string) (*domain.Agent, error) {
	var m agentModel
	tx := r.db.WithContext(ctx).
		Where("login = ? OR email = ? OR phone = ?", identifier, identifier, identifier).
		First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainAgent(m), nil
}

func (r *AgentRepository) Count(ctx context.Context) (int64, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&agentModel{}).Count(&cnt)
	if tx.Error != nil {
		return 0, tx.Error
	}
	return cnt, nil
}
