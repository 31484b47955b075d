// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the HTTP API: photo upload and listing for
// properties, the enriched catalog pass-through, contact submissions, and
// admin authentication.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response failed", "error", err)
	}
}

// writeMessage writes a JSON body carrying only a human-readable message.
// Used for both errors and simple acknowledgements.
func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// pageEnvelope is the list response shape the frontend consumes.
type pageEnvelope struct {
	Data  any `json:"data"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// itemEnvelope is the single-resource response shape.
type itemEnvelope struct {
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}
