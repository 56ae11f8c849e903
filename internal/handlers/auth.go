package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/taskapp/apiserver/internal/auth"
	"github.com/taskapp/apiserver/internal/services"
	"github.com/taskapp/apiserver/internal/store"
	"github.com/taskapp/apiserver/types"
)

// AuthHandler provides registration, login, and the admin check
// endpoint.
type AuthHandler struct {
	authService *services.AuthService
	issuer      *auth.Issuer
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(authService *services.AuthService, issuer *auth.Issuer) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		issuer:      issuer,
	}
}

// AuthRouter registers auth routes on the given router.
func AuthRouter(r chi.Router, authService *services.AuthService, issuer *auth.Issuer) {
	handler := NewAuthHandler(authService, issuer)

	r.Post("/register", handler.Register)
	r.Post("/login", handler.Login)
	r.With(handler.RequireAuth, handler.RequireAdmin).Get("/admin", handler.Admin)
}

// RequireAuth verifies the bearer token and injects its claims into
// the request context. Absent token: 401. Bad or expired token: 403.
func (h *AuthHandler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, err := bearerToken(r)
		if err != nil {
			writeMsg(w, http.StatusUnauthorized, msgAccessDenied)
			return
		}

		claims, err := h.issuer.Verify(tokenString)
		if err != nil {
			writeMsg(w, http.StatusForbidden, msgInvalidToken)
			return
		}

		ctx := context.WithValue(r.Context(), contextClaimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin rejects callers whose token does not carry the admin
// role. It must run after RequireAuth.
func (h *AuthHandler) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, err := claimsFromContext(r.Context())
		if err != nil {
			writeMsg(w, http.StatusUnauthorized, msgAccessDenied)
			return
		}
		if claims.Role != types.RoleAdmin {
			writeMsg(w, http.StatusForbidden, msgAdminsOnly)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Register creates a new user account.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMsg(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	req.Username = strings.TrimSpace(req.Username)
	if req.Email == "" || req.Username == "" || req.Password == "" {
		writeMsg(w, http.StatusBadRequest, msgMissingFields)
		return
	}

	if _, err := h.authService.Register(r.Context(), req.Email, req.Username, req.Password); err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			writeMsg(w, http.StatusBadRequest, "El correo ya está registrado")
			return
		}
		writeMsg(w, http.StatusInternalServerError, msgServerError)
		return
	}

	writeMsg(w, http.StatusCreated, "Usuario registrado con éxito")
}

// Login verifies credentials and returns a session token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMsg(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		writeMsg(w, http.StatusBadRequest, msgMissingFields)
		return
	}

	user, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeMsg(w, http.StatusBadRequest, "Usuario no encontrado")
			return
		}
		if errors.Is(err, services.ErrInvalidCredentials) {
			writeMsg(w, http.StatusBadRequest, "Contraseña incorrecta")
			return
		}
		writeMsg(w, http.StatusInternalServerError, msgServerError)
		return
	}

	token, err := h.issuer.Issue(user)
	if err != nil {
		writeMsg(w, http.StatusInternalServerError, msgServerError)
		return
	}

	writeJSON(w, http.StatusOK, LoginResponse{
		Token:  token,
		UserID: user.ID,
		Role:   user.Role,
		Msg:    "Inicio de sesión exitoso",
	})
}

// Admin is the protected probe endpoint for the admin panel.
func (h *AuthHandler) Admin(w http.ResponseWriter, r *http.Request) {
	writeMsg(w, http.StatusOK, "Bienvenido, admin")
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
	Role   string `json:"role"`
	Msg    string `json:"msg"`
}
