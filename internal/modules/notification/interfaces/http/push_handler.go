package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/saransh1220/notify-dispatch/internal/modules/notification/application"
	"github.com/saransh1220/notify-dispatch/internal/modules/notification/domain"
	"github.com/saransh1220/notify-dispatch/internal/shared/utils"
)

type PushHandler struct {
	service *application.SubscriptionService
}

func NewPushHandler(service *application.SubscriptionService) *PushHandler {
	return &PushHandler{service: service}
}

type subscribeRequest struct {
	Endpoint  string                  `json:"endpoint"`
	Keys      domain.SubscriptionKeys `json:"keys"`
	UserAgent *string                 `json:"user_agent"`
	DeviceID  *string                 `json:"device_id"`
}

func (h *PushHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	userID, tenantID, ok := callerIdentity(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	sub, err := h.service.Save(r.Context(), tenantID, userID, req.Endpoint, req.Keys, req.UserAgent, req.DeviceID)
	if err != nil {
		if errors.Is(err, application.ErrInvalidSubscription) {
			utils.WriteError(w, http.StatusBadRequest, "invalid subscription", err)
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "failed to save subscription", err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, sub)
}

type unsubscribeRequest struct {
	Endpoint string `json:"endpoint"`
}

func (h *PushHandler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	userID, tenantID, ok := callerIdentity(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req unsubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Endpoint == "" {
		utils.WriteError(w, http.StatusBadRequest, "endpoint is required", err)
		return
	}

	removed, err := h.service.Remove(r.Context(), tenantID, userID, req.Endpoint)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to remove subscription", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]bool{"removed": removed})
}

func (h *PushHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, tenantID, ok := callerIdentity(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	subs, err := h.service.List(r.Context(), tenantID, userID)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to list subscriptions", err)
		return
	}
	if subs == nil {
		subs = []domain.PushSubscription{}
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"data": subs})
}
