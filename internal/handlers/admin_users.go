// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"net/http"

	"khoborpress/internal/errs"
	"khoborpress/internal/middleware"
	"khoborpress/internal/models"
)

// ListUsers returns all accounts. Admin only.
func (h *Admin) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List()
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, users)
}

// CreateUser creates an account with an explicit role. Admin only; this
// is how editor and admin accounts come into existence.
func (h *Admin) CreateUser(w http.ResponseWriter, r *http.Request) {
	var in struct {
		FullName string      `json:"full_name"`
		Email    string      `json:"email"`
		Password string      `json:"password"`
		Role     models.Role `json:"role"`
	}
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}
	if in.FullName == "" || in.Email == "" || len(in.Password) < 8 {
		respondError(w, errs.Invalidf("full name, email, and a password of at least 8 characters are required"))
		return
	}

	user, err := h.users.Create(in.FullName, in.Email, in.Password, in.Role)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

// SetUserRole changes an account's role. Admin only; admins cannot change
// their own role, which keeps at least one admin reachable.
func (h *Admin) SetUserRole(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	sess := middleware.SessionFromCtx(r.Context())
	if sess != nil && sess.UserID == id {
		respondError(w, errs.Invalidf("cannot change your own role"))
		return
	}

	var in struct {
		Role models.Role `json:"role"`
	}
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}
	if err := h.users.SetRole(id, in.Role); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "role updated")
}

// SuspendUser blocks an account from signing in. Admin only.
func (h *Admin) SuspendUser(w http.ResponseWriter, r *http.Request) {
	h.setSuspension(w, r, true)
}

// UnsuspendUser restores a suspended account. Admin only.
func (h *Admin) UnsuspendUser(w http.ResponseWriter, r *http.Request) {
	h.setSuspension(w, r, false)
}

func (h *Admin) setSuspension(w http.ResponseWriter, r *http.Request, suspended bool) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	sess := middleware.SessionFromCtx(r.Context())
	if sess != nil && sess.UserID == id {
		respondError(w, errs.Invalidf("cannot suspend your own account"))
		return
	}

	if err := h.users.SetSuspended(id, suspended); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "user updated")
}

// ResetUser2FA clears an account's TOTP enrollment, forcing the user
// through setup on next login. Admin only.
func (h *Admin) ResetUser2FA(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := h.users.ResetTOTP(id); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "two-factor authentication reset")
}

// DeleteUser removes an account and its comments. Admin only.
func (h *Admin) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := urlID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	sess := middleware.SessionFromCtx(r.Context())
	if sess != nil && sess.UserID == id {
		respondError(w, errs.Invalidf("cannot delete your own account"))
		return
	}

	if err := h.users.Delete(id); err != nil {
		respondError(w, err)
		return
	}
	respondMessage(w, http.StatusOK, "user deleted")
}
