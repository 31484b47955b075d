// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import "net/http"

// SecureHeaders sets defensive headers on every response. The server
// hands out JSON and static files only, so framing is denied outright
// and the referrer stays within the origin.
func SecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()

		// Responses already carry explicit Content-Types; never sniff.
		h.Set("X-Content-Type-Options", "nosniff")

		// Neither the API nor the listing photos belong in an iframe.
		h.Set("X-Frame-Options", "DENY")

		h.Set("Referrer-Policy", "same-origin")

		// No handler uses device APIs.
		h.Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")

		next.ServeHTTP(w, r)
	})
}
