package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/saransh1220/notify-dispatch/internal/gateway/middleware"
	"github.com/saransh1220/notify-dispatch/internal/modules/notification/application"
	"github.com/saransh1220/notify-dispatch/internal/modules/notification/domain"
	"github.com/saransh1220/notify-dispatch/internal/modules/notification/infrastructure/websocket"
	"github.com/saransh1220/notify-dispatch/internal/shared/utils"
)

type NotificationHandler struct {
	service *application.NotificationService
	hub     *websocket.Hub
}

func NewNotificationHandler(service *application.NotificationService, hub *websocket.Hub) *NotificationHandler {
	return &NotificationHandler{service: service, hub: hub}
}

func callerIdentity(r *http.Request) (uuid.UUID, string, bool) {
	userID, ok := r.Context().Value(middleware.ContextKeyUserId).(uuid.UUID)
	if !ok {
		return uuid.Nil, "", false
	}
	tenantID, _ := r.Context().Value(middleware.ContextKeyTenant).(string)
	return userID, tenantID, true
}

// Subscribe upgrades to a websocket scoped to the caller's own room.
func (h *NotificationHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := callerIdentity(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}
	websocket.ServeWs(h.hub, w, r, userID)
}

type createNotificationRequest struct {
	Title        string                  `json:"title"`
	Message      string                  `json:"message"`
	Type         domain.NotificationType `json:"type"`
	Priority     domain.Priority         `json:"priority"`
	EntityID     *uuid.UUID              `json:"entity_id"`
	EntityType   string                  `json:"entity_type"`
	Metadata     domain.Metadata         `json:"metadata"`
	EmailSubject *string                 `json:"email_subject"`
	HTMLContent  *string                 `json:"html_content"`
}

// Create is the trigger surface other platform modules call. The response
// reflects only the persisted record; delivery outcome never fails it.
func (h *NotificationHandler) Create(w http.ResponseWriter, r *http.Request) {
	_, tenantID, ok := callerIdentity(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	var req createNotificationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.Title == "" || req.Message == "" {
		utils.WriteError(w, http.StatusBadRequest, "title and message are required", nil)
		return
	}

	n, err := h.service.Create(r.Context(), tenantID, application.CreateInput{
		Title:        req.Title,
		Message:      req.Message,
		Type:         req.Type,
		Priority:     req.Priority,
		EntityID:     req.EntityID,
		EntityType:   req.EntityType,
		Metadata:     req.Metadata,
		EmailSubject: req.EmailSubject,
		HTMLContent:  req.HTMLContent,
	})
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to create notification", err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, n)
}

func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, tenantID, ok := callerIdentity(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	limit, offset := 20, 0
	if l := r.URL.Query().Get("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 {
			limit = v
		}
	}
	if o := r.URL.Query().Get("offset"); o != "" {
		if v, err := strconv.Atoi(o); err == nil && v >= 0 {
			offset = v
		}
	}

	notifications, err := h.service.List(r.Context(), tenantID, userID, "user", limit, offset)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to fetch notifications", err)
		return
	}
	if notifications == nil {
		notifications = []domain.Notification{}
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"data": notifications})
}

// GetByEntity serves another recipient-kind's notifications, e.g. for
// admin tooling reading a device's feed.
func (h *NotificationHandler) GetByEntity(w http.ResponseWriter, r *http.Request) {
	_, tenantID, ok := callerIdentity(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	entityID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid entity id", err)
		return
	}
	entityType := r.PathValue("type")

	notifications, err := h.service.List(r.Context(), tenantID, entityID, entityType, 50, 0)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to fetch notifications", err)
		return
	}
	if notifications == nil {
		notifications = []domain.Notification{}
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"data": notifications})
}

func (h *NotificationHandler) Get(w http.ResponseWriter, r *http.Request) {
	_, tenantID, ok := callerIdentity(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid notification id", err)
		return
	}

	n, err := h.service.GetByID(r.Context(), tenantID, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotificationNotFound) {
			utils.WriteError(w, http.StatusNotFound, "notification not found", nil)
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "failed to fetch notification", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, n)
}

func (h *NotificationHandler) MarkAsRead(w http.ResponseWriter, r *http.Request) {
	userID, tenantID, ok := callerIdentity(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid notification id", err)
		return
	}

	if err := h.service.MarkAsRead(r.Context(), tenantID, id, userID); err != nil {
		if errors.Is(err, domain.ErrNotificationNotFound) {
			utils.WriteError(w, http.StatusNotFound, "notification not found", nil)
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "failed to mark notification as read", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *NotificationHandler) MarkAllAsRead(w http.ResponseWriter, r *http.Request) {
	userID, tenantID, ok := callerIdentity(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	updated, err := h.service.MarkAllAsRead(r.Context(), tenantID, userID)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to mark notifications as read", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]int{"updated": updated})
}

func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, tenantID, ok := callerIdentity(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid notification id", err)
		return
	}

	if err := h.service.Delete(r.Context(), tenantID, id, userID); err != nil {
		if errors.Is(err, domain.ErrNotificationNotFound) {
			utils.WriteError(w, http.StatusNotFound, "notification not found", nil)
			return
		}
		utils.WriteError(w, http.StatusInternalServerError, "failed to delete notification", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *NotificationHandler) DeleteAll(w http.ResponseWriter, r *http.Request) {
	userID, tenantID, ok := callerIdentity(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	deleted, err := h.service.DeleteAll(r.Context(), tenantID, userID)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to delete notifications", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}

func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, tenantID, ok := callerIdentity(r)
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "unauthorized", nil)
		return
	}

	count, err := h.service.UnreadCount(r.Context(), tenantID, userID)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to get unread count", err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]int{"count": count})
}
