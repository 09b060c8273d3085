package http

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/saransh1220/notify-dispatch/internal/gateway/middleware"
	"github.com/saransh1220/notify-dispatch/internal/modules/settings/application"
	"github.com/saransh1220/notify-dispatch/internal/shared/utils"
)

type SettingsHandler struct {
	service *application.SettingsService
}

func NewSettingsHandler(service *application.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

func callerIdentity(r *http.Request) (uuid.UUID, string, bool) {
	userID, ok := r.Context().Value(middleware.ContextKeyUserId).(uuid.UUID)
	if !ok {
		return uuid.Nil, "", false
	}
	tenantID, _ := r.Context().Value(middleware.ContextKeyTenant).(string)
	return userID, tenantID, true
}

func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, tenantID, ok := callerIdentity(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	settings, err := h.service.Get(r.Context(), tenantID, userID)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to fetch settings", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, settings)
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, tenantID, ok := callerIdentity(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var in application.UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if in.Email != nil && *in.Email != "" && !utils.IsValidEmail(*in.Email) {
		utils.WriteError(w, http.StatusBadRequest, "invalid email address", nil)
		return
	}

	settings, err := h.service.Update(r.Context(), tenantID, userID, in)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to update settings", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, settings)
}
