package lead

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"agentcrm/internal/apperrors"
	"agentcrm/internal/domain"
	"agentcrm/internal/pkg/contact"
	"agentcrm/internal/repository"
)

type Service struct {
	leads  LeadRepository
	events EventNotifier
}

func NewService(leads LeadRepository, events EventNotifier) *Service {
	return &Service{leads: leads, events: events}
}

// Create нормализует обе формы интейка и копит ошибки по полям —
// клиент получает полную карту, а не первую попавшуюся ошибку.
func (s *Service) Create(ctx context.Context, req CreateLeadRequest) (*domain.Lead, error) {
	l := &domain.Lead{
		Source:        strings.TrimSpace(req.Source),
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		MiddleName:    strings.TrimSpace(req.MiddleName),
		Phone:         strings.TrimSpace(req.Phone),
		Telegram:      strings.TrimSpace(req.Telegram),
		Email:         strings.TrimSpace(req.Email),
		PreferredTime: strings.TrimSpace(req.PreferredTime),
		Comment:       strings.TrimSpace(req.Comment),
		AgentID:       strings.TrimSpace(req.AgentID),
	}

	// name разбирается, только если явные firstName/lastName не заданы
	if l.FirstName == "" && l.LastName == "" && req.Name != "" {
		first, last, middle := contact.ParseName(req.Name)
		l.FirstName, l.LastName = first, last
		if l.MiddleName == "" {
			l.MiddleName = middle
		}
	}

	// contacts разбирается, только если явные phone/telegram не заданы
	if l.Phone == "" && l.Telegram == "" && strings.TrimSpace(req.Contacts) != "" {
		l.Phone, l.Telegram = contact.ParseContacts(req.Contacts)
	}

	errs := map[string]string{}
	if l.Source == "" {
		errs["source"] = "source is required"
	}
	if l.FirstName == "" {
		errs["firstName"] = "first name is required"
	}
	if l.LastName == "" {
		errs["lastName"] = "last name is required"
	}
	if l.Phone == "" && l.Telegram == "" {
		errs["contacts"] = "phone or telegram contact is required"
	}
	if l.Phone != "" && !contact.ValidPhone(l.Phone) {
		errs["phone"] = "invalid phone format"
	}
	if len(errs) > 0 {
		return nil, apperrors.NewValidation(errs)
	}

	l.ID = uuid.NewString()
	l.Status = domain.LeadStatusNew

	if err := s.leads.Create(ctx, l); err != nil {
		return nil, err
	}

	if s.events != nil {
		s.events.LeadCreated(l)
	}

	return l, nil
}

func (s *Service) List(ctx context.Context, f repository.LeadFilter) ([]domain.Lead, error) {
	return s.leads.List(ctx, f)
}

// Patch применяет частичное обновление; нужен хотя бы один из {status, idAgent}.
// Пустой idAgent после trim снимает назначение.
func (s *Service) Patch(ctx context.Context, id string, req UpdateLeadRequest) (*domain.Lead, error) {
	if req.Status == nil && req.AgentID == nil {
		return nil, apperrors.NewValidation(map[string]string{
			"fields": "at least one of status or idAgent must be provided",
		})
	}

	upd := repository.LeadUpdate{}
	if req.Status != nil {
		status := strings.TrimSpace(*req.Status)
		upd.Status = &status
	}
	if req.AgentID != nil {
		agentID := strings.TrimSpace(*req.AgentID)
		upd.AgentID = &agentID
	}

	updated, err := s.leads.Update(ctx, id, upd)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	if s.events != nil {
		s.events.LeadUpdated(updated)
	}

	return updated, nil
}
