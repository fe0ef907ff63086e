package session

import (
	"fmt"
	"strings"
	"time"

	"agentcrm/internal/domain"
)

// briefingLeadLimit — сколько последних лидов попадает в контекст сессии.
const briefingLeadLimit = 50

// cityTimezones сопоставляет город агента с часовым поясом IANA.
// Неизвестный город считается московским.
var cityTimezones = map[string]string{
	"москва":          "Europe/Moscow",
	"санкт-петербург": "Europe/Moscow",
	"казань":          "Europe/Moscow",
	"нижний новгород": "Europe/Moscow",
	"калининград":     "Europe/Kaliningrad",
	"самара":          "Europe/Samara",
	"екатеринбург":    "Asia/Yekaterinburg",
	"челябинск":       "Asia/Yekaterinburg",
	"омск":            "Asia/Omsk",
	"новосибирск":     "Asia/Novosibirsk",
	"красноярск":      "Asia/Krasnoyarsk",
	"иркутск":         "Asia/Irkutsk",
	"владивосток":     "Asia/Vladivostok",
}

// localTimeFor форматирует местное время агента для промпта.
func localTimeFor(city string, now time.Time) string {
	name, ok := cityTimezones[strings.ToLower(strings.TrimSpace(city))]
	if !ok {
		name = "Europe/Moscow"
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		// в контейнере без tzdata остаёмся на московском смещении
		loc = time.FixedZone("MSK", 3*60*60)
	}
	return now.In(loc).Format("02.01.2006 15:04")
}

func buildPrompt(agent *domain.Agent, leads []domain.Lead, localTime string) string {
	var b strings.Builder
	b.WriteString("Ты — ассистент страхового агента в CRM. Составь короткий брифинг для рабочей сессии: с чего начать и кому позвонить в первую очередь.\n")
	fmt.Fprintf(&b, "Агент: %s. Местное время: %s.\n", agent.DisplayName(), localTime)
	if len(leads) == 0 {
		b.WriteString("Назначенных клиентов нет.\n")
		return b.String()
	}
	fmt.Fprintf(&b, "Клиенты в работе (%d):\n", len(leads))
	for _, l := range leads {
		b.WriteString("- " + clientLine(l) + "\n")
	}
	return b.String()
}

func clientLine(l domain.Lead) string {
	name := strings.TrimSpace(l.LastName + " " + l.FirstName)
	if name == "" {
		name = "без имени"
	}
	contactInfo := l.Phone
	if contactInfo == "" {
		contactInfo = l.Telegram
	}
	if contactInfo == "" {
		contactInfo = "контакт не указан"
	}
	return fmt.Sprintf("%s, %s, статус: %s", name, contactInfo, l.Status)
}

// fallbackContext — детерминированный текст на случай недоступной генерации.
func fallbackContext(agent *domain.Agent, clientCount int) string {
	return fmt.Sprintf("Рабочая сессия агента %s. Клиентов в работе: %d. Брифинг сформирован без ИИ: начните с самых свежих заявок.",
		agent.DisplayName(), clientCount)
}
