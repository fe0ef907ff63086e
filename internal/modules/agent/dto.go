package agent

// CreateAgentRequest — данные нового агента. Логин и пароль опциональны:
// агент без пароля не сможет входить в систему.
type CreateAgentRequest struct {
	FirstName       string   `json:"firstName" validate:"required"`
	LastName        string   `json:"lastName" validate:"required"`
	MiddleName      string   `json:"middleName"`
	Phone           string   `json:"phone" validate:"required"`
	Email           string   `json:"email"`
	Login           string   `json:"login"`
	Password        string   `json:"password"`
	Website         string   `json:"website"`
	TelegramChannel string   `json:"telegramChannel"`
	TelegramBot     string   `json:"telegramBot"`
	City            string   `json:"city"`
	BankDetails     string   `json:"bankDetails"`
	ReferralLinks   []string `json:"referralLinks"`
}

// UpdateAgentRequest — частичное обновление; логин и пароль через эту
// операцию не меняются.
type UpdateAgentRequest struct {
	FirstName       *string   `json:"firstName"`
	LastName        *string   `json:"lastName"`
	MiddleName      *string   `json:"middleName"`
	Phone           *string   `json:"phone"`
	Email           *string   `json:"email"`
	Website         *string   `json:"website"`
	TelegramChannel *string   `json:"telegramChannel"`
	TelegramBot     *string   `json:"telegramBot"`
	City            *string   `json:"city"`
	BankDetails     *string   `json:"bankDetails"`
	ReferralLinks   *[]string `json:"referralLinks"`
}
