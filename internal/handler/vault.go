package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dropdesk/dropdesk-go/internal/crypto"
	"github.com/dropdesk/dropdesk-go/internal/middleware"
	"github.com/dropdesk/dropdesk-go/internal/model"
	"github.com/dropdesk/dropdesk-go/internal/service"
)

// VaultHandler handles HTTP requests for supplier credential operations.
type VaultHandler struct {
	service *service.VaultService
}

// NewVaultHandler creates a new VaultHandler.
func NewVaultHandler(svc *service.VaultService) *VaultHandler {
	return &VaultHandler{service: svc}
}

// HandleListCredentials handles GET /api/v1/vault requests. Secrets are
// never part of the list payload.
func (h *VaultHandler) HandleListCredentials(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	creds, err := h.service.ListCredentials(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}
	if creds == nil {
		creds = []model.CredentialResponse{}
	}

	writeJSON(w, http.StatusOK, creds)
}

// HandleCreateCredential handles POST /api/v1/vault requests.
func (h *VaultHandler) HandleCreateCredential(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	var req model.CreateCredentialRequest
	if !decodeBody(w, r, 1<<20, &req) {
		return
	}

	resp, err := h.service.CreateCredential(r.Context(), userID, req)
	if err != nil {
		if errors.Is(err, service.ErrSupplierNameRequired) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// HandleSetSecret handles PUT /api/v1/vault/{credential_id}/secret requests.
func (h *VaultHandler) HandleSetSecret(w http.ResponseWriter, r *http.Request) {
	userID, credentialID, ok := h.credentialRequest(w, r)
	if !ok {
		return
	}

	var req model.SetSecretRequest
	if !decodeBody(w, r, 1<<20, &req) {
		return
	}

	if err := h.service.SetSecret(r.Context(), userID, credentialID, req); err != nil {
		switch {
		case errors.Is(err, service.ErrSecretRequired):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		case errors.Is(err, service.ErrCredentialNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleRevealSecret handles GET /api/v1/vault/{credential_id}/secret
// requests. An entry without a secret yields a null secret, not an
// error; an undecryptable one is a conflict the user resolves by
// re-entering the credential.
func (h *VaultHandler) HandleRevealSecret(w http.ResponseWriter, r *http.Request) {
	userID, credentialID, ok := h.credentialRequest(w, r)
	if !ok {
		return
	}

	resp, err := h.service.RevealSecret(r.Context(), userID, credentialID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCredentialNotFound):
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
		case errors.Is(err, service.ErrVaultUnreadable):
			writeJSON(w, http.StatusConflict, errorResponse(
				"secret cannot be decrypted with the current vault key; re-enter this credential"))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// HandleDeleteCredential handles DELETE /api/v1/vault/{credential_id} requests.
func (h *VaultHandler) HandleDeleteCredential(w http.ResponseWriter, r *http.Request) {
	userID, credentialID, ok := h.credentialRequest(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteCredential(r.Context(), userID, credentialID); err != nil {
		if errors.Is(err, service.ErrCredentialNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleGenerateSecret handles POST /api/v1/vault/generate requests.
func (h *VaultHandler) HandleGenerateSecret(w http.ResponseWriter, r *http.Request) {
	var req model.GenerateSecretRequest
	if !decodeBody(w, r, 1<<20, &req) {
		return
	}

	resp, err := h.service.GenerateSecret(req)
	if err != nil {
		if isGeneratorValidationError(err) {
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *VaultHandler) credentialRequest(w http.ResponseWriter, r *http.Request) (userID, credentialID int64, ok bool) {
	userID, ok = middleware.UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return 0, 0, false
	}

	credentialID, err := strconv.ParseInt(chi.URLParam(r, "credential_id"), 10, 64)
	if err != nil || credentialID <= 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid credential id"))
		return 0, 0, false
	}

	return userID, credentialID, true
}

func isGeneratorValidationError(err error) bool {
	return errors.Is(err, crypto.ErrSecretTooShort) ||
		errors.Is(err, crypto.ErrSecretTooLong) ||
		errors.Is(err, crypto.ErrNoCharacterClasses) ||
		errors.Is(err, crypto.ErrLengthBelowClasses)
}
