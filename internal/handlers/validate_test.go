package handlers

import (
	"strings"
	"testing"

	"imovia/internal/models"
)

func TestValidateContact(t *testing.T) {
	tests := []struct {
		name    string
		cName   string
		email   string
		message string
		wantOK  bool
	}{
		{name: "valid", cName: "Maria", email: "maria@example.com", message: "Olá", wantOK: true},
		{name: "empty name", cName: "", email: "a@b.com", message: "Olá", wantOK: false},
		{name: "whitespace name", cName: "   ", email: "a@b.com", message: "Olá", wantOK: false},
		{name: "empty email", cName: "Maria", email: "", message: "Olá", wantOK: false},
		{name: "email without at", cName: "Maria", email: "not-an-email", message: "Olá", wantOK: false},
		{name: "email at start", cName: "Maria", email: "@example.com", message: "Olá", wantOK: false},
		{name: "email at end", cName: "Maria", email: "maria@", message: "Olá", wantOK: false},
		{name: "empty message", cName: "Maria", email: "a@b.com", message: "", wantOK: false},
		{name: "name too long", cName: strings.Repeat("a", 201), email: "a@b.com", message: "Olá", wantOK: false},
		{name: "message too long", cName: "Maria", email: "a@b.com", message: strings.Repeat("m", 5001), wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := validateContact(tt.cName, tt.email, tt.message)
			if (msg == "") != tt.wantOK {
				t.Errorf("validateContact = %q, wantOK=%v", msg, tt.wantOK)
			}
		})
	}
}

func TestValidateProperty(t *testing.T) {
	valid := func() *models.Property {
		return &models.Property{
			Title:           "Casa no centro",
			Price:           100,
			PropertyType:    models.TypeHouse,
			TransactionType: models.TransactionSale,
		}
	}

	t.Run("valid", func(t *testing.T) {
		if msg := validateProperty(valid()); msg != "" {
			t.Errorf("expected valid, got %q", msg)
		}
	})

	t.Run("missing title", func(t *testing.T) {
		p := valid()
		p.Title = "  "
		if validateProperty(p) == "" {
			t.Error("expected error for blank title")
		}
	})

	t.Run("title too long", func(t *testing.T) {
		p := valid()
		p.Title = strings.Repeat("t", 301)
		if validateProperty(p) == "" {
			t.Error("expected error for overlong title")
		}
	})

	t.Run("negative price", func(t *testing.T) {
		p := valid()
		p.Price = -1
		if validateProperty(p) == "" {
			t.Error("expected error for negative price")
		}
	})

	t.Run("zero price allowed", func(t *testing.T) {
		p := valid()
		p.Price = 0
		if msg := validateProperty(p); msg != "" {
			t.Errorf("price 0 should pass (consulte-nos listings), got %q", msg)
		}
	})

	t.Run("missing type", func(t *testing.T) {
		p := valid()
		p.PropertyType = ""
		if validateProperty(p) == "" {
			t.Error("expected error for missing type")
		}
	})

	t.Run("missing transaction", func(t *testing.T) {
		p := valid()
		p.TransactionType = ""
		if validateProperty(p) == "" {
			t.Error("expected error for missing transaction")
		}
	})
}
