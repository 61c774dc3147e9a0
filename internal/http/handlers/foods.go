package handlers

import (
	"net/http"
	"strings"

	"petcare-backend/internal/models"
	"petcare-backend/internal/response"
	"petcare-backend/internal/services"
)

type FoodHandler struct {
	foods *services.FoodService
}

func NewFoodHandler(foods *services.FoodService) *FoodHandler {
	return &FoodHandler{foods: foods}
}

func foodJSON(f *models.Food) map[string]any {
	return map[string]any{
		"id":          f.ID,
		"name":        f.Name,
		"brand":       f.Brand,
		"kcals_per_g": f.KcalsPerG,
		"price":       f.Price,
		"weight":      f.Weight,
		"description": f.Description,
	}
}

func (h *FoodHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name        string   `json:"name"`
		Brand       string   `json:"brand"`
		KcalsPerG   *float64 `json:"kcals_per_g"`
		Price       *float64 `json:"price"`
		Weight      *float64 `json:"weight"`
		Description string   `json:"description"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || in.Brand == "" {
		response.WriteErr(w, http.StatusBadRequest, "Nombre y marca son requeridos")
		return
	}

	food, err := h.foods.Create(services.FoodCreate{
		Name:        in.Name,
		Brand:       in.Brand,
		KcalsPerG:   in.KcalsPerG,
		Price:       in.Price,
		Weight:      in.Weight,
		Description: in.Description,
	})
	if err != nil {
		response.WriteAppErr(w, err, "Error al crear alimento")
		return
	}
	response.WriteJSON(w, http.StatusCreated, foodJSON(food))
}

func (h *FoodHandler) List(w http.ResponseWriter, r *http.Request) {
	foods, err := h.foods.List(queryInt(r, "offset", 0), queryInt(r, "limit", 100))
	if err != nil {
		response.WriteAppErr(w, err, "Error al listar alimentos")
		return
	}
	out := make([]map[string]any, 0, len(foods))
	for i := range foods {
		out = append(out, foodJSON(&foods[i]))
	}
	response.WriteJSON(w, http.StatusOK, out)
}

func (h *FoodHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	food, err := h.foods.GetByID(id)
	if err != nil {
		response.WriteAppErr(w, err, "Error buscando alimento")
		return
	}
	response.WriteJSON(w, http.StatusOK, foodJSON(food))
}

func (h *FoodHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var in struct {
		Name        *string  `json:"name"`
		Brand       *string  `json:"brand"`
		KcalsPerG   *float64 `json:"kcals_per_g"`
		Price       *float64 `json:"price"`
		Weight      *float64 `json:"weight"`
		Description *string  `json:"description"`
	}
	if !decodeJSON(w, r, &in) {
		return
	}

	food, err := h.foods.Update(id, services.FoodUpdate{
		Name:        in.Name,
		Brand:       in.Brand,
		KcalsPerG:   in.KcalsPerG,
		Price:       in.Price,
		Weight:      in.Weight,
		Description: in.Description,
	})
	if err != nil {
		response.WriteAppErr(w, err, "Error al actualizar alimento")
		return
	}
	response.WriteJSON(w, http.StatusOK, foodJSON(food))
}

func (h *FoodHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.foods.Delete(id); err != nil {
		response.WriteAppErr(w, err, "Error al borrar alimento")
		return
	}
	response.WriteJSON(w, http.StatusOK, map[string]string{"message": "Alimento eliminado"})
}
