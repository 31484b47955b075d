// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package ident sanitizes externally supplied listing identifiers before
// they are used to build filesystem paths.
package ident

import "regexp"

// unsafeChars matches every character that may not appear in a listing
// identifier. The surviving alphabet is [A-Za-z0-9_-], which is safe to
// join into a directory name without escaping.
var unsafeChars = regexp.MustCompile(`[^a-zA-Z0-9_-]`)

// Sanitize strips every unsafe character from the given identifier.
// It never fails; an input that reduces to the empty string must be
// rejected by the caller before any filesystem access.
func Sanitize(raw string) string {
	return unsafeChars.ReplaceAllString(raw, "")
}
