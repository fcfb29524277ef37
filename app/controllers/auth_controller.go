package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"medisync/app/dto"
	jwtutil "medisync/app/jwt"
	"medisync/app/services"
	"medisync/app/session"
)

type AuthController struct {
	Users    *services.UserService
	Signer   *jwtutil.Signer
	Sessions *session.Store
}

func NewAuthController(users *services.UserService, signer *jwtutil.Signer, sessions *session.Store) *AuthController {
	return &AuthController{Users: users, Signer: signer, Sessions: sessions}
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req dto.RegisterRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	u, res, err := c.Users.Register(r.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		status := http.StatusBadRequest
		if !errors.Is(err, services.ErrMissingCredentials) && !errors.Is(err, services.ErrInvalidRole) {
			// unique violation or other storage failure
			status = http.StatusConflict
		}
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"username": u.Username,
		"role":     u.Role,
		"mirrored": res.OK,
	})
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	var req dto.LoginRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	if req.Username == "" || req.Password == "" {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"missing credentials"}`))
		return
	}
	u, err := c.Users.ValidateCredentials(req.Username, req.Password)
	if err != nil {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid credentials"}`))
		return
	}
	token, err := c.Signer.Sign(u.ID, u.Username, u.Role)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"token error"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(dto.TokenResponse{AccessToken: token})
}

// Logout revokes the presented token. Without a session store the
// token simply lives until its JWT expiry.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	authz := r.Header.Get("Authorization")
	token := strings.TrimPrefix(authz, "Bearer ")
	if c.Sessions != nil && token != "" {
		if err := c.Sessions.Revoke(r.Context(), token); err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}
