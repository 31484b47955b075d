// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"imovia/internal/models"
	"imovia/internal/store"
)

// Contact groups the contact form handlers.
type Contact struct {
	store *store.ContactStore
}

// NewContact creates a new Contact handler group.
func NewContact(contactStore *store.ContactStore) *Contact {
	return &Contact{store: contactStore}
}

// contactRequest is the public submission payload.
type contactRequest struct {
	Name       string  `json:"name"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone"`
	Subject    string  `json:"subject"`
	Message    string  `json:"message"`
	PropertyID *string `json:"propertyId"`
}

// Submit handles POST /api/contact.
func (c *Contact) Submit(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "corpo da requisição inválido")
		return
	}

	if msg := validateContact(req.Name, req.Email, req.Message); msg != "" {
		writeMessage(w, http.StatusBadRequest, msg)
		return
	}

	m := &models.ContactMessage{
		Name:       req.Name,
		Email:      req.Email,
		Phone:      req.Phone,
		Subject:    req.Subject,
		Message:    req.Message,
		PropertyID: req.PropertyID,
	}
	if err := c.store.Create(m); err != nil {
		slog.Error("contact create failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "erro interno")
		return
	}

	writeJSON(w, http.StatusCreated, itemEnvelope{Data: m, Message: "mensagem enviada"})
}

// AdminList handles GET /api/admin/messages (authenticated).
func (c *Contact) AdminList(w http.ResponseWriter, r *http.Request) {
	limit := parseInt(r.URL.Query().Get("limite"))

	messages, err := c.store.List(limit)
	if err != nil {
		slog.Error("contact list failed", "error", err)
		writeMessage(w, http.StatusInternalServerError, "erro interno")
		return
	}
	if messages == nil {
		messages = []models.ContactMessage{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"data": messages})
}
