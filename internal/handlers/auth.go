// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"net/http"
)

// Login validates the submitted admin token and sets the admin cookie.
func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !a.gate.Login(w, body.Token) {
		writeError(w, http.StatusUnauthorized, "Invalid token")
		return
	}
	writeSuccess(w)
}

// Logout clears the admin cookie.
func (a *API) Logout(w http.ResponseWriter, _ *http.Request) {
	a.gate.Logout(w)
	writeSuccess(w)
}
