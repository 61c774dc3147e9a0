package handlers

import (
	"net/http"
	"strings"
	"time"

	"petcare-backend/internal/models"
	"petcare-backend/internal/response"
	"petcare-backend/internal/services"
)

type ProfileHandler struct {
	profiles  *services.ProfileService
	reminders *services.ReminderService
}

func NewProfileHandler(profiles *services.ProfileService, reminders *services.ReminderService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, reminders: reminders}
}

func profileJSON(p *models.Profile) map[string]any {
	var birthday *string
	if p.Birthday != nil {
		s := p.Birthday.Format("2006-01-02")
		birthday = &s
	}
	return map[string]any{
		"id":       p.ID,
		"name":     p.Name,
		"gender":   p.Gender,
		"variety":  p.Variety,
		"birthday": birthday,
	}
}

func parseBirthday(w http.ResponseWriter, raw string) (*time.Time, bool) {
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		response.WriteErr(w, http.StatusBadRequest, "Fecha de nacimiento inválida (AAAA-MM-DD)")
		return nil, false
	}
	return &t, true
}

func (h *ProfileHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name     string `json:"name"`
		Gender   string `json:"gender"`
		Variety  string `json:"variety"`
		Birthday string `json:"birthday"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || in.Gender == "" || in.Variety == "" {
		response.WriteErr(w, http.StatusBadRequest, "Nombre, género y variedad son requeridos")
		return
	}
	birthday, ok := parseBirthday(w, in.Birthday)
	if !ok {
		return
	}

	profile, err := h.profiles.Create(services.ProfileCreate{
		Name:     in.Name,
		Gender:   in.Gender,
		Variety:  in.Variety,
		Birthday: birthday,
	})
	if err != nil {
		response.WriteAppErr(w, err, "Error al crear perfil")
		return
	}
	response.WriteJSON(w, http.StatusCreated, profileJSON(profile))
}

func (h *ProfileHandler) List(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.profiles.List(queryInt(r, "offset", 0), queryInt(r, "limit", 100))
	if err != nil {
		response.WriteAppErr(w, err, "Error al listar perfiles")
		return
	}
	out := make([]map[string]any, 0, len(profiles))
	for i := range profiles {
		out = append(out, profileJSON(&profiles[i]))
	}
	response.WriteJSON(w, http.StatusOK, out)
}

func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	profile, err := h.profiles.GetByID(id)
	if err != nil {
		response.WriteAppErr(w, err, "Error buscando perfil")
		return
	}
	response.WriteJSON(w, http.StatusOK, profileJSON(profile))
}

func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var in struct {
		Name     *string `json:"name"`
		Gender   *string `json:"gender"`
		Variety  *string `json:"variety"`
		Birthday *string `json:"birthday"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}

	update := services.ProfileUpdate{
		Name:    in.Name,
		Gender:  in.Gender,
		Variety: in.Variety,
	}
	if in.Birthday != nil {
		birthday, ok := parseBirthday(w, *in.Birthday)
		if !ok {
			return
		}
		update.Birthday = birthday
	}

	profile, err := h.profiles.Update(id, update)
	if err != nil {
		response.WriteAppErr(w, err, "Error al actualizar perfil")
		return
	}
	response.WriteJSON(w, http.StatusOK, profileJSON(profile))
}

func (h *ProfileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.profiles.Delete(id); err != nil {
		response.WriteAppErr(w, err, "Error al borrar perfil")
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]string{"message": "Perfil eliminado"})
}

// ListReminders devuelve los recordatorios de un perfil.
func (h *ProfileHandler) ListReminders(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if _, err := h.profiles.GetByID(id); err != nil {
		response.WriteAppErr(w, err, "Error buscando perfil")
		return
	}

	reminders, err := h.reminders.ListByProfile(id)
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
