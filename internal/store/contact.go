// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"imovia/internal/models"
)

// ContactStore handles persistence of contact form submissions.
type ContactStore struct {
	db *sql.DB
}

// NewContactStore creates a new ContactStore with the given database connection.
func NewContactStore(db *sql.DB) *ContactStore {
	return &ContactStore{db: db}
}

// Create inserts a contact message and fills in its generated ID and
// creation timestamp.
func (s *ContactStore) Create(m *models.ContactMessage) error {
	err := s.db.QueryRow(`
		INSERT INTO contact_messages (name, email, phone, subject, message, property_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, m.Name, m.Email, m.Phone, m.Subject, m.Message, m.PropertyID).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("create contact message: %w", err)
	}
	return nil
}

// List returns the most recent contact messages, newest first.
// A non-positive limit defaults to 50.
func (s *ContactStore) List(limit int) ([]models.ContactMessage, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.Query(`
		SELECT id, name, email, phone, subject, message, property_id, created_at
		FROM contact_messages ORDER BY created_at DESC LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	defer rows.Close()

	var messages []models.ContactMessage
	for rows.Next() {
		var m models.ContactMessage
		if err := rows.Scan(
			&m.ID, &m.Name, &m.Email, &m.Phone, &m.Subject,
			&m.Message, &m.PropertyID, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan contact message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// Delete removes a contact message by ID.
func (s *ContactStore) Delete(id uuid.UUID) error {
	_, err := s.db.Exec(`DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete contact message: %w", err)
	}
	return nil
}
