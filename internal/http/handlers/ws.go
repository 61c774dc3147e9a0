package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"petcare-backend/internal/http/middleware"
	"petcare-backend/internal/response"
	"petcare-backend/internal/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const (
	feedInterval = 30 * time.Second
	feedWindow   = 24 * time.Hour
	writeWait    = 10 * time.Second
)

// FeedHandler empuja por websocket los recordatorios que vencen pronto.
type FeedHandler struct {
	auth      *middleware.Auth
	reminders *services.ReminderService
}

func NewFeedHandler(auth *middleware.Auth, reminders *services.ReminderService) *FeedHandler {
	return &FeedHandler{auth: auth, reminders: reminders}
}

// ReminderFeed autentica por header o query param "token" (los clientes
// websocket del navegador no pueden mandar headers) y mantiene la
// conexión empujando los recordatorios pendientes de las próximas 24h.
func (h *FeedHandler) ReminderFeed(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("token")
	if raw == "" {
		if auth := r.Header.Get("Authorization"); len(auth) > 7 && auth[:7] == "Bearer " {
			raw = auth[7:]
		}
	}
	if raw == "" {
		response.WriteErr(w, http.StatusUnauthorized, "Token requerido")
		return
	}
	userID, err := h.auth.Authenticate(raw)
	if err != nil {
		response.WriteAppErr(w, err, "Error validando token")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("Upgrade error:", err)
		return
	}
	defer conn.Close()

	log.Printf("Usuario %d conectado al feed de recordatorios", userID)

	// Lector solo para detectar el cierre del cliente.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(feedInterval)
	defer ticker.Stop()

	if err := h.pushDue(conn); err != nil {
		return
	}
	for {
		select {
		case <-done:
			log.Printf("Usuario %d salió del feed", userID)
			return
		case <-ticker.C:
			if err := h.pushDue(conn); err != nil {
				log.Println("Error al enviar feed:", err)
				return
			}
		}
	}
}

func (h *FeedHandler) pushDue(conn *websocket.Conn) error {
	due, err := h.reminders.ListDueBefore(time.Now().Add(feedWindow))
	if err != nil {
		return err
	}
	out := make([]map[string]any, 0, len(due))
	for i := range due {
		out = append(out, reminderJSON(&due[i]))
	}
	conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(map[string]any{
		"type":      "reminders_due",
		"reminders": out,
	})
}
