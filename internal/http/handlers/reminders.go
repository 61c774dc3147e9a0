package handlers

import (
	"net/http"
	"strings"
	"time"

	"petcare-backend/internal/models"
	"petcare-backend/internal/response"
	"petcare-backend/internal/services"
)

type ReminderHandler struct {
	reminders *services.ReminderService
}

func NewReminderHandler(reminders *services.ReminderService) *ReminderHandler {
	return &ReminderHandler{reminders: reminders}
}

func reminderJSON(rm *models.Reminder) map[string]any {
	return map[string]any{
		"id":          rm.ID,
		"title":       rm.Title,
		"type":        rm.Type,
		"due_date":    rm.DueDate.UTC(),
		"is_done":     rm.IsDone,
		"description": rm.Description,
		"profile_id":  rm.ProfileID,
	}
}

func (h *ReminderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Title       string    `json:"title"`
		Type        string    `json:"type"`
		DueDate     time.Time `json:"due_date"`
		Description string    `json:"description"`
		ProfileID   uint      `json:"profile_id"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" || in.Type == "" || in.DueDate.IsZero() || in.ProfileID == 0 {
		response.WriteErr(w, http.StatusBadRequest, "Título, tipo, fecha y perfil son requeridos")
		return
	}

	reminder, err := h.reminders.Create(services.ReminderCreate{
		Title:       in.Title,
		Type:        in.Type,
		DueDate:     in.DueDate,
		Description: in.Description,
		ProfileID:   in.ProfileID,
	})
	if err != nil {
		response.WriteAppErr(w, err, "Error al crear recordatorio")
		return
	}
	response.WriteJSON(w, http.StatusCreated, reminderJSON(reminder))
}

func (h *ReminderHandler) List(w http.ResponseWriter, r *http.Request) {
	reminders, err := h.reminders.List(queryInt(r, "offset", 0), queryInt(r, "limit", 100))
	if err != nil {
		response.WriteAppErr(w, err, "Error al listar recordatorios")
		return
	}
	out := make([]map[string]any, 0, len(reminders))
	for i := range reminders {
		out = append(out, reminderJSON(&reminders[i]))
	}
	response.WriteJSON(w, http.StatusOK, out)
}

func (h *ReminderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	reminder, err := h.reminders.GetByID(id)
	if err != nil {
		response.WriteAppErr(w, err, "Error buscando recordatorio")
		return
	}
	response.WriteJSON(w, http.StatusOK, reminderJSON(reminder))
}

func (h *ReminderHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var in struct {
		Title       *string    `json:"title"`
		Type        *string    `json:"type"`
		DueDate     *time.Time `json:"due_date"`
		IsDone      *bool      `json:"is_done"`
		Description *string    `json:"description"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}

	reminder, err := h.reminders.Update(id, services.ReminderUpdate{
		Title:       in.Title,
		Type:        in.Type,
		DueDate:     in.DueDate,
		IsDone:      in.IsDone,
		Description: in.Description,
	})
	if err != nil {
		response.WriteAppErr(w, err, "Error al actualizar recordatorio")
		return
	}
	response.WriteJSON(w, http.StatusOK, reminderJSON(reminder))
}

func (h *ReminderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.reminders.Delete(id); err != nil {
		response.WriteAppErr(w, err, "Error al borrar recordatorio")
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]string{"message": "Recordatorio eliminado"})
}
