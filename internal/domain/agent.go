package domain

import (
	"strings"
	"time"
)

type Agent struct {
	ID              string    `json:"id"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	MiddleName      string    `json:"middleName,omitempty"`
	Phone           string    `json:"phone"`
	Email           string    `json:"email,omitempty"`
	Login           string    `json:"login,omitempty"`
	PasswordHash    string    `json:"-"`
	Website         string    `json:"website,omitempty"`
	TelegramChannel string    `json:"telegramChannel,omitempty"`
	TelegramBot     string    `json:"telegramBot,omitempty"`
	City            string    `json:"city,omitempty"`
	BankDetails     string    `json:"bankDetails,omitempty"`
	ReferralLinks   []string  `json:"referralLinks,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// DisplayName собирает ФИО в порядке "Фамилия Имя Отчество".
func (a *Agent) DisplayName() string {
	parts := []string{a.LastName, a.FirstName}
	if a.MiddleName != "" {
		parts = append(parts, a.MiddleName)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}
