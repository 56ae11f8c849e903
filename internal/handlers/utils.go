package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/taskapp/apiserver/internal/auth"
)

type contextKey string

const contextClaimsKey contextKey = "claims"

// User-facing messages, preserved from the deployed API.
const (
	msgServerError    = "Error en el servidor"
	msgMissingFields  = "Todos los campos son obligatorios"
	msgAccessDenied   = "Acceso denegado"
	msgInvalidToken   = "Token inválido o expirado"
	msgAdminsOnly     = "Acceso solo para administradores"
	msgInvalidRequest = "Solicitud inválida"
)

// MessageResponse is the `{"msg": ...}` payload used for every
// human-readable success or error message.
type MessageResponse struct {
	Msg string `json:"msg"`
}

func claimsFromContext(ctx context.Context) (*auth.Claims, error) {
	claims, ok := ctx.Value(contextClaimsKey).(*auth.Claims)
	if !ok || claims == nil {
		return nil, errors.New("missing claims")
	}
	return claims, nil
}

func bearerToken(r *http.Request) (string, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", errors.New("missing authorization")
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization")
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", errors.New("invalid authorization")
	}
	return token, nil
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeMsg(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageResponse{Msg: msg})
}
