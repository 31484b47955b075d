package handlers

import (
	"strings"
	"unicode/utf8"

	"imovia/internal/models"
)

// Validation limits for user-submitted fields.
const (
	maxNameLen    = 200
	maxEmailLen   = 320
	maxPhoneLen   = 40
	maxSubjectLen = 300
	maxMessageLen = 5_000
	maxTitleLen   = 300
)

// validateContact checks contact form inputs and returns the first error found.
func validateContact(name, email, message string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "nome é obrigatório"
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "nome muito longo (máximo 200 caracteres)"
	}

	email = strings.TrimSpace(email)
	if email == "" {
		return "e-mail é obrigatório"
	}
	if utf8.RuneCountInString(email) > maxEmailLen {
		return "e-mail muito longo"
	}
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return "e-mail inválido"
	}

	message = strings.TrimSpace(message)
	if message == "" {
		return "mensagem é obrigatória"
	}
	if utf8.RuneCountInString(message) > maxMessageLen {
		return "mensagem muito longa (máximo 5.000 caracteres)"
	}

	return ""
}

// validateProperty checks a property write payload and returns the first
// error found. The catalog enforces its own rules; this guards against
// obviously broken submissions before the round trip.
func validateProperty(p *models.Property) string {
	if strings.TrimSpace(p.Title) == "" {
		return "título é obrigatório"
	}
	if utf8.RuneCountInString(p.Title) > maxTitleLen {
		return "título muito longo (máximo 300 caracteres)"
	}
	if p.Price < 0 {
		return "preço não pode ser negativo"
	}
	if p.PropertyType == "" {
		return "tipo é obrigatório"
	}
	if p.TransactionType == "" {
		return "transação é obrigatória"
	}
	return ""
}
