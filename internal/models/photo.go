// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import "fmt"

// Photo represents an image stored on disk for exactly one listing.
// The file itself lives under the upload root; this struct carries the
// public metadata returned to API clients.
type Photo struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName,omitempty"`
	Size         int64  `json:"size,omitempty"`
	URL          string `json:"url"`
	Alt          string `json:"alt,omitempty"`
}

// HumanSize returns a human-readable file size string.
func (p *Photo) HumanSize() string {
	const (
		kb = 1024
		mb = 1024 * kb
	)
	switch {
	case p.Size >= mb:
		return fmt.Sprintf("%.1f MB", float64(p.Size)/float64(mb))
	case p.Size >= kb:
		return fmt.Sprintf("%.0f KB", float64(p.Size)/float64(kb))
	default:
		return fmt.Sprintf("%d B", p.Size)
	}
}
