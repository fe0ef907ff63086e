package contact

import (
	"regexp"
	"strings"
	"unicode"
)

// ParseName разбивает свободное ФИО по пробелам: один токен — имя,
// два — имя и фамилия, три и больше — первый токен имя, последний фамилия,
// всё между ними отчество. Никакого locale-aware разбора.
func ParseName(fullName string) (firstName, lastName, middleName string) {
	tokens := strings.Fields(fullName)
	switch len(tokens) {
	case 0:
		return "", "", ""
	case 1:
		return tokens[0], "", ""
	case 2:
		return tokens[0], tokens[1], ""
	default:
		return tokens[0], tokens[len(tokens)-1], strings.Join(tokens[1:len(tokens)-1], " ")
	}
}

// ParseContacts classifies a free-form contact string as either a phone or a
// telegram handle. Exactly one of the two results is non-empty for non-empty
// input.
func ParseContacts(contacts string) (phone, telegram string) {
	v := strings.TrimSpace(contacts)
	if v == "" {
		return "", ""
	}
	if strings.HasPrefix(v, "@") || strings.Contains(v, "t.me/") || strings.Contains(v, "telegram.me/") {
		return "", v
	}
	return v, ""
}

// ValidPhone reports whether phone consists solely of decimal digits after
// ignoring spaces, hyphens, parentheses and plus signs, with at least 10
// digits remaining.
func ValidPhone(phone string) bool {
	digits := 0
	for _, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case unicode.IsSpace(r) || r == '-' || r == '(' || r == ')' || r == '+':
			continue
		default:
			return false
		}
	}
	return digits >= 10
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether email is empty or looks like an address.
// Намеренно мягкая проверка, не полный RFC.
func ValidEmail(email string) bool {
	if email == "" {
		return true
	}
	return emailPattern.MatchString(email)
}
