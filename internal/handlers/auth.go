package handlers

import (
	"encoding/base64"
	"log/slog"
	"net/http"

	"github.com/pquerna/otp/totp"
	qrcode "github.com/skip2/go-qrcode"

	"khoborpress/internal/errs"
	"khoborpress/internal/middleware"
	"khoborpress/internal/models"
	"khoborpress/internal/session"
	"khoborpress/internal/store"
)

// Auth groups all authentication-related HTTP handlers.
type Auth struct {
	sessions  *session.Store
	userStore *store.UserStore
}

// NewAuth creates a new Auth handler group.
func NewAuth(sessions *session.Store, userStore *store.UserStore) *Auth {
	return &Auth{
		sessions:  sessions,
		userStore: userStore,
	}
}

// Register creates a reader account. Panel accounts are created by admins
// through the user management endpoints, never here.
func (a *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var in struct {
		FullName string `json:"full_name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}
	if in.FullName == "" || in.Email == "" || len(in.Password) < 8 {
		respondError(w, errs.Invalidf("full name, email, and a password of at least 8 characters are required"))
		return
	}

	user, err := a.userStore.Create(in.FullName, in.Email, in.Password, models.RoleReader)
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, user)
}

// Login verifies credentials and opens a session. Panel users still owe a
// TOTP code before the admin routes open up; readers are done here.
func (a *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}

	user, err := a.userStore.FindByEmail(in.Email)
	if err != nil {
		slog.Error("login lookup failed", "error", err)
		respondError(w, err)
		return
	}
	if user == nil || !a.userStore.CheckPassword(user, in.Password) {
		respondJSON(w, http.StatusUnauthorized, errorBody{Error: "invalid email or password"})
		return
	}
	if user.IsSuspended {
		respondJSON(w, http.StatusForbidden, errorBody{Error: "account suspended"})
		return
	}

	// Readers never go through 2FA, so their session is complete at once.
	_, err = a.sessions.Create(r.Context(), w, &session.Data{
		UserID:    user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      user.Role,
		TwoFADone: !user.Role.IsModerator(),
	})
	if err != nil {
		slog.Error("session create failed", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"user":             user,
		"needs_2fa_setup":  user.Needs2FASetup(),
		"needs_2fa_verify": user.Role.IsModerator() && user.TOTPEnabled,
	})
}

// Me returns the authenticated user's profile.
func (a *Auth) Me(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		respondJSON(w, http.StatusUnauthorized, errorBody{Error: "authentication required"})
		return
	}

	user, err := a.userStore.FindByID(sess.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	if user == nil {
		notFound(w)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// TwoFASetup generates a fresh TOTP secret for the panel user and returns
// it with a QR code (base64 PNG) for authenticator apps.
func (a *Auth) TwoFASetup(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil || !sess.Role.IsModerator() {
		respondJSON(w, http.StatusForbidden, errorBody{Error: "forbidden"})
		return
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      "KhoborPress",
		AccountName: sess.Email,
	})
	if err != nil {
		slog.Error("totp generate failed", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
		return
	}

	if err := a.userStore.SetTOTPSecret(sess.UserID, key.Secret()); err != nil {
		slog.Error("save totp secret failed", "error", err)
		respondError(w, err)
		return
	}

	qrPNG, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		slog.Error("qr code generation failed", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"secret":  key.Secret(),
		"qr_png":  base64.StdEncoding.EncodeToString(qrPNG),
		"otp_url": key.URL(),
	})
}

// TwoFAVerify validates the TOTP code and completes authentication. On
// first-time setup it also enables TOTP on the account.
func (a *Auth) TwoFAVerify(w http.ResponseWriter, r *http.Request) {
	sess := middleware.SessionFromCtx(r.Context())
	if sess == nil {
		respondJSON(w, http.StatusUnauthorized, errorBody{Error: "authentication required"})
		return
	}

	var in struct {
		Code string `json:"code"`
	}
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}

	user, err := a.userStore.FindByID(sess.UserID)
	if err != nil || user == nil {
		slog.Error("user lookup for 2fa failed", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
		return
	}
	if user.TOTPSecret == nil {
		respondError(w, errs.Invalidf("two-factor setup has not started"))
		return
	}

	if !totp.Validate(in.Code, *user.TOTPSecret) {
		respondJSON(w, http.StatusUnauthorized, errorBody{Error: "invalid code"})
		return
	}

	if !user.TOTPEnabled {
		if err := a.userStore.EnableTOTP(user.ID); err != nil {
			respondError(w, err)
			return
		}
	}

	sess.TwoFADone = true
	if err := a.sessions.Update(r.Context(), r, sess); err != nil {
		slog.Error("session update failed", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
		return
	}

	respondMessage(w, http.StatusOK, "two-factor authentication complete")
}

// Logout destroys the session.
func (a *Auth) Logout(w http.ResponseWriter, r *http.Request) {
	a.sessions.Destroy(r.Context(), w, r)
	respondMessage(w, http.StatusOK, "logged out")
}
