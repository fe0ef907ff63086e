package contact

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseName(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		first  string
		last   string
		middle string
	}{
		{"empty", "", "", "", ""},
		{"spaces only", "   ", "", "", ""},
		{"single token", "Иван", "Иван", "", ""},
		{"two tokens", "Иван Иванов", "Иван", "Иванов", ""},
		{"three tokens", "Иван Иванович Иванов", "Иван", "Иванов", "Иванович"},
		{"four tokens", "Анна Мария Петровна Смирнова", "Анна", "Смирнова", "Мария Петровна"},
		{"extra whitespace", "  Иван   Иванов  ", "Иван", "Иванов", ""},
		{"latin", "John Smith", "John", "Smith", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last, middle := ParseName(tt.input)
			require.Equal(t, tt.first, first)
			require.Equal(t, tt.last, last)
			require.Equal(t, tt.middle, middle)
		})
	}
}

func TestParseContacts(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		phone    string
		telegram string
	}{
		{"at handle", "@ivanov", "", "@ivanov"},
		{"tme link", "https://t.me/ivanov", "", "https://t.me/ivanov"},
		{"telegram.me link", "telegram.me/ivanov", "", "telegram.me/ivanov"},
		{"plain phone", "+7 777 123 45 67", "+7 777 123 45 67", ""},
		{"digits", "87771234567", "87771234567", ""},
		{"trimmed handle", "  @ivanov  ", "", "@ivanov"},
		{"empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			phone, telegram := ParseContacts(tt.input)
			require.Equal(t, tt.phone, phone)
			require.Equal(t, tt.telegram, telegram)
		})
	}
}

func TestValidPhone(t *testing.T) {
	valid := []string{
		"+7 (777) 123-45-67",
		"87771234567",
		"8-777-123-45-67",
		"+77001234567",
		"1234567890",
	}
	for _, phone := range valid {
		require.True(t, ValidPhone(phone), "expected valid: %q", phone)
	}

	invalid := []string{
		"",
		"123456789",     // девять цифр
		"+7 777 123 45", // мало цифр после очистки
		"8777abc4567x",
		"phone",
		"8777123456 ext7a",
	}
	for _, phone := range invalid {
		require.False(t, ValidPhone(phone), "expected invalid: %q", phone)
	}
}

func TestValidEmail(t *testing.T) {
	require.True(t, ValidEmail(""))
	require.True(t, ValidEmail("ivan@mail.ru"))
	require.True(t, ValidEmail("ivan.petrov@corp.example.com"))

	require.False(t, ValidEmail("ivan"))
	require.False(t, ValidEmail("ivan@mail"))
	require.False(t, ValidEmail("ivan@@mail.ru"))
	require.False(t, ValidEmail("ivan mail@ru.com"))
}
