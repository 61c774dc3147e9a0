package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"petcare-backend/internal/config"
	"petcare-backend/internal/http/handlers"
	"petcare-backend/internal/http/middleware"
	"petcare-backend/internal/models"
	"petcare-backend/internal/services"
	"petcare-backend/pkg/security"
)

type testServer struct {
	mux  *http.ServeMux
	db   *gorm.DB
	auth *services.AuthService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := config.Open(dsn)
	if err != nil {
		t.Fatalf("error abriendo base de prueba: %v", err)
	}
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
	})

	signer, err := security.NewTokenSigner("test-secret", 50*time.Minute)
	if err != nil {
		t.Fatalf("error creando signer: %v", err)
	}

	authSvc := services.NewAuthService(db, signer, 50*time.Minute, 720*time.Hour)
	userSvc := services.NewUserService(db)
	profileSvc := services.NewProfileService(db)
	reminderSvc := services.NewReminderService(db)
	foodSvc := services.NewFoodService(db)
	authMw := middleware.NewAuth(signer)

	mux := http.NewServeMux()
	Routes(mux, Handlers{
		Auth:      handlers.NewAuthHandler(authSvc, userSvc),
		Users:     handlers.NewUserHandler(userSvc, authSvc),
		Profiles:  handlers.NewProfileHandler(profileSvc, reminderSvc),
		Reminders: handlers.NewReminderHandler(reminderSvc),
		Foods:     handlers.NewFoodHandler(foodSvc),
		Admin:     handlers.NewAdminHandler(authSvc, userSvc),
		Feed:      handlers.NewFeedHandler(authMw, reminderSvc),
	}, authMw)

	return &testServer{mux: mux, db: db, auth: authSvc}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("error serializando body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.mux.ServeHTTP(rec, req)

	var out map[string]any
	if rec.Body.Len() > 0 && rec.Body.Bytes()[0] == '{' {
		if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
			t.Fatalf("respuesta no es JSON: %v", err)
		}
	}
	return rec, out
}

func (ts *testServer) register(t *testing.T, username, email, password string) {
	t.Helper()
	rec, _ := ts.do(t, http.MethodPost, "/register", "", map[string]string{
		"username":         username,
		"email":            email,
		"password":         password,
		"confirm_password": password,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("registro falló: %d %s", rec.Code, rec.Body.String())
	}
}

func (ts *testServer) login(t *testing.T, username, password string) (string, string) {
	t.Helper()
	rec, body := ts.do(t, http.MethodPost, "/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login falló: %d %s", rec.Code, rec.Body.String())
	}
	access, _ := body["accessToken"].(string)
	refresh, _ := body["refreshToken"].(string)
	if access == "" || refresh == "" {
		t.Fatal("login no devolvió el par de tokens")
	}
	return access, refresh
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	rec, body := ts.do(t, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body["status"] != "ok" {
		t.Fatalf("expected status ok, got %v", body["status"])
	}
}

func TestRegister_Validation(t *testing.T) {
	ts := newTestServer(t)

	rec, _ := ts.do(t, http.MethodPost, "/register", "", map[string]string{
		"username": "ana", "email": "ana@test.com",
		"password": "secreta123", "confirm_password": "otra",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 con contraseñas distintas, got %d", rec.Code)
	}

	ts.register(t, "ana", "ana@test.com", "secreta123")

	rec, _ = ts.do(t, http.MethodPost, "/register", "", map[string]string{
		"username": "ana", "email": "otra@test.com",
		"password": "secreta123", "confirm_password": "secreta123",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 por username duplicado, got %d", rec.Code)
	}
}

func TestLogin_And_Me(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "bruno", "bruno@test.com", "secreta123")

	rec, _ := ts.do(t, http.MethodPost, "/login", "", map[string]string{
		"username": "bruno", "password": "incorrecta",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 con contraseña incorrecta, got %d", rec.Code)
	}

	access, _ := ts.login(t, "bruno", "secreta123")

	rec, _ = ts.do(t, http.MethodGet, "/users/me", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 sin token, got %d", rec.Code)
	}

	rec, body := ts.do(t, http.MethodGet, "/users/me", access, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", rec.Code, rec.Body.String())
	}
	if body["username"] != "bruno" {
		t.Fatalf("expected username bruno, got %v", body["username"])
	}
	if _, leaked := body["hashed_password"]; leaked {
		t.Fatal("la respuesta no debe exponer el hash")
	}
}

func TestUpdateMe_Partial(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "carla", "carla@test.com", "secreta123")
	access, _ := ts.login(t, "carla", "secreta123")

	rec, body := ts.do(t, http.MethodPatch, "/users/me", access, map[string]string{
		"email": "carla+nueva@test.com",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", rec.Code, rec.Body.String())
	}
	if body["email"] != "carla+nueva@test.com" {
		t.Fatalf("email no actualizado: %v", body["email"])
	}
	if body["username"] != "carla" {
		t.Fatalf("username no debía cambiar: %v", body["username"])
	}
}

func TestRefresh_RotationAndReuse(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "dario", "dario@test.com", "secreta123")
	_, refresh := ts.login(t, "dario", "secreta123")

	rec, body := ts.do(t, http.MethodPost, "/auth/refresh", "", map[string]string{
		"refreshToken": refresh,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 en refresh, got %d %s", rec.Code, rec.Body.String())
	}
	rotated, _ := body["refreshToken"].(string)
	if rotated == "" || rotated == refresh {
		t.Fatal("el refresh debía rotar el token")
	}

	// Reusar el token ya rotado revoca la familia completa.
	rec, _ = ts.do(t, http.MethodPost, "/auth/refresh", "", map[string]string{
		"refreshToken": refresh,
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 por reuso, got %d", rec.Code)
	}
	rec, _ = ts.do(t, http.MethodPost, "/auth/refresh", "", map[string]string{
		"refreshToken": rotated,
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 tras revocación en cadena, got %d", rec.Code)
	}
}

func TestLogout(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "elena", "elena@test.com", "secreta123")
	_, refresh := ts.login(t, "elena", "secreta123")

	rec, _ := ts.do(t, http.MethodPost, "/auth/logout", "", map[string]string{
		"refreshToken": refresh,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec, _ = ts.do(t, http.MethodPost, "/auth/refresh", "", map[string]string{
		"refreshToken": refresh,
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 tras logout, got %d", rec.Code)
	}

	// Logout con token desconocido sigue siendo 200.
	rec, _ = ts.do(t, http.MethodPost, "/auth/logout", "", map[string]string{
		"refreshToken": "token-desconocido",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 con token desconocido, got %d", rec.Code)
	}
}

func TestEmailVerificationFlow(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "fabian", "fabian@test.com", "secreta123")
	access, _ := ts.login(t, "fabian", "secreta123")

	rec, _ := ts.do(t, http.MethodPost, "/auth/verify/send", access, map[string]string{})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 al enviar código, got %d %s", rec.Code, rec.Body.String())
	}

	var user models.User
	if err := ts.db.Where("username = ?", "fabian").First(&user).Error; err != nil {
		t.Fatalf("error buscando usuario: %v", err)
	}
	code, err := ts.auth.GetLatestCode(user.ID, models.CodeTypeEmailVerification)
	if err != nil {
		t.Fatalf("error buscando código: %v", err)
	}

	rec, _ = ts.do(t, http.MethodPost, "/auth/verify/confirm", access, map[string]string{
		"code": "999999",
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 con código incorrecto, got %d", rec.Code)
	}

	rec, _ = ts.do(t, http.MethodPost, "/auth/verify/confirm", access, map[string]string{
		"code": code.Code,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 al confirmar, got %d %s", rec.Code, rec.Body.String())
	}

	rec, body := ts.do(t, http.MethodGet, "/users/me", access, nil)
	if rec.Code != http.StatusOK || body["is_verified"] != true {
		t.Fatalf("el usuario debía quedar verificado: %d %v", rec.Code, body["is_verified"])
	}

	// El código es de un solo uso.
	rec, _ = ts.do(t, http.MethodPost, "/auth/verify/confirm", access, map[string]string{
		"code": code.Code,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 al reusar código, got %d", rec.Code)
	}
}

func TestPasswordResetFlow(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "gina", "gina@test.com", "secreta123")

	// La respuesta no revela si el correo existe.
	recKnown, bodyKnown := ts.do(t, http.MethodPost, "/auth/password/forgot", "", map[string]string{
		"email": "gina@test.com",
	})
	recUnknown, bodyUnknown := ts.do(t, http.MethodPost, "/auth/password/forgot", "", map[string]string{
		"email": "nadie@test.com",
	})
	if recKnown.Code != http.StatusOK || recUnknown.Code != http.StatusOK {
		t.Fatalf("expected 200 en ambos, got %d y %d", recKnown.Code, recUnknown.Code)
	}
	if bodyKnown["message"] != bodyUnknown["message"] {
		t.Fatal("las respuestas deben ser idénticas exista o no el correo")
	}

	var user models.User
	if err := ts.db.Where("email = ?", "gina@test.com").First(&user).Error; err != nil {
		t.Fatalf("error buscando usuario: %v", err)
	}
	code, err := ts.auth.GetLatestCode(user.ID, models.CodeTypePasswordReset)
	if err != nil {
		t.Fatalf("error buscando código: %v", err)
	}

	rec, _ := ts.do(t, http.MethodPost, "/auth/password/reset", "", map[string]string{
		"email": "nadie@test.com", "code": code.Code, "new_password": "nueva123",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 con correo desconocido, got %d", rec.Code)
	}

	rec, _ = ts.do(t, http.MethodPost, "/auth/password/reset", "", map[string]string{
		"email": "gina@test.com", "code": code.Code, "new_password": "nueva123",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 al resetear, got %d %s", rec.Code, rec.Body.String())
	}

	rec, _ = ts.do(t, http.MethodPost, "/login", "", map[string]string{
		"username": "gina", "password": "secreta123",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("la contraseña vieja debía dejar de servir, got %d", rec.Code)
	}
	ts.login(t, "gina", "nueva123")
}

func TestChangePassword_RequiresCurrent(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "hugo", "hugo@test.com", "secreta123")
	access, _ := ts.login(t, "hugo", "secreta123")

	rec, _ := ts.do(t, http.MethodPost, "/users/me/password", access, map[string]string{
		"current_password": "incorrecta", "new_password": "nueva123",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 con contraseña actual incorrecta, got %d", rec.Code)
	}

	rec, _ = ts.do(t, http.MethodPost, "/users/me/password", access, map[string]string{
		"current_password": "secreta123", "new_password": "nueva123",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", rec.Code, rec.Body.String())
	}
	ts.login(t, "hugo", "nueva123")
}

func TestProfilesCRUD(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "irene", "irene@test.com", "secreta123")
	access, _ := ts.login(t, "irene", "secreta123")

	rec, _ := ts.do(t, http.MethodGet, "/profiles", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 sin token, got %d", rec.Code)
	}

	rec, body := ts.do(t, http.MethodPost, "/profiles", access, map[string]string{
		"name": "Firulais", "gender": "macho", "variety": "labrador", "birthday": "2020-05-10",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d %s", rec.Code, rec.Body.String())
	}
	profileID := body["id"].(float64)

	rec, _ = ts.do(t, http.MethodPost, "/profiles", access, map[string]string{
		"name": "Firulais", "gender": "macho", "variety": "labrador",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 por nombre duplicado, got %d", rec.Code)
	}

	rec, _ = ts.do(t, http.MethodPost, "/profiles", access, map[string]string{
		"name": "Rex", "gender": "macho", "variety": "boxer", "birthday": "no-es-fecha",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 por fecha inválida, got %d", rec.Code)
	}

	rec, body = ts.do(t, http.MethodPatch, fmt.Sprintf("/profiles/%d", int(profileID)), access, map[string]string{
		"variety": "golden",
	})
	if rec.Code != http.StatusOK || body["variety"] != "golden" {
		t.Fatalf("actualización parcial falló: %d %v", rec.Code, body["variety"])
	}
	if body["name"] != "Firulais" {
		t.Fatalf("el nombre no debía cambiar: %v", body["name"])
	}

	// Recordatorio colgado del perfil.
	rec, _ = ts.do(t, http.MethodPost, "/reminders", access, map[string]any{
		"title": "Vacuna anual", "type": "salud",
		"due_date": time.Now().Add(48 * time.Hour).Format(time.RFC3339),
		"profile_id": int(profileID),
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 creando recordatorio, got %d %s", rec.Code, rec.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/profiles/%d/reminders", int(profileID)), nil)
	req.Header.Set("Authorization", "Bearer "+access)
	listRec := httptest.NewRecorder()
	ts.mux.ServeHTTP(listRec, req)
	if listRec.Code != http.StatusOK {
		t.Fatalf("expected 200 listando recordatorios, got %d", listRec.Code)
	}
	var reminders []map[string]any
	if err := json.Unmarshal(listRec.Body.Bytes(), &reminders); err != nil {
		t.Fatalf("respuesta no es lista: %v", err)
	}
	if len(reminders) != 1 || reminders[0]["title"] != "Vacuna anual" {
		t.Fatalf("lista inesperada: %v", reminders)
	}

	rec, _ = ts.do(t, http.MethodDelete, fmt.Sprintf("/profiles/%d", int(profileID)), access, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 al borrar, got %d", rec.Code)
	}
	rec, _ = ts.do(t, http.MethodGet, fmt.Sprintf("/profiles/%d", int(profileID)), access, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 tras borrar, got %d", rec.Code)
	}
}

func TestRemindersValidation(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "julia", "julia@test.com", "secreta123")
	access, _ := ts.login(t, "julia", "secreta123")

	rec, _ := ts.do(t, http.MethodPost, "/reminders", access, map[string]any{
		"title": "Baño", "type": "higiene",
		"due_date":   time.Now().Add(time.Hour).Format(time.RFC3339),
		"profile_id": 999,
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 con perfil inexistente, got %d", rec.Code)
	}

	rec, _ = ts.do(t, http.MethodPost, "/reminders", access, map[string]any{
		"title": "", "type": "higiene",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 sin campos requeridos, got %d", rec.Code)
	}
}

func TestFoodsCRUD(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "kevin", "kevin@test.com", "secreta123")
	access, _ := ts.login(t, "kevin", "secreta123")

	rec, body := ts.do(t, http.MethodPost, "/foods", access, map[string]any{
		"name": "Croquetas Premium", "brand": "DogChow", "price": 25.5,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d %s", rec.Code, rec.Body.String())
	}
	foodID := int(body["id"].(float64))

	rec, _ = ts.do(t, http.MethodPost, "/foods", access, map[string]any{
		"name": "Croquetas Premium", "brand": "Otra",
	})
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 por nombre duplicado, got %d", rec.Code)
	}

	rec, body = ts.do(t, http.MethodPatch, fmt.Sprintf("/foods/%d", foodID), access, map[string]any{
		"price": 30.0,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d %s", rec.Code, rec.Body.String())
	}
	if body["brand"] != "DogChow" {
		t.Fatalf("la marca no debía cambiar: %v", body["brand"])
	}

	rec, _ = ts.do(t, http.MethodDelete, fmt.Sprintf("/foods/%d", foodID), access, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 al borrar, got %d", rec.Code)
	}
	rec, _ = ts.do(t, http.MethodDelete, fmt.Sprintf("/foods/%d", foodID), access, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 al borrar dos veces, got %d", rec.Code)
	}
}

func TestAdminCleanup_RequiresSuperuser(t *testing.T) {
	ts := newTestServer(t)
	ts.register(t, "lucia", "lucia@test.com", "secreta123")
	access, _ := ts.login(t, "lucia", "secreta123")

	rec, _ := ts.do(t, http.MethodPost, "/admin/cleanup", access, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 para usuario normal, got %d", rec.Code)
	}

	if err := ts.db.Model(&models.User{}).Where("username = ?", "lucia").
		Update("is_superuser", true).Error; err != nil {
		t.Fatalf("error promoviendo usuario: %v", err)
	}

	rec, body := ts.do(t, http.MethodPost, "/admin/cleanup", access, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 para superusuario, got %d %s", rec.Code, rec.Body.String())
	}
	if _, ok := body["refresh_tokens_deleted"]; !ok {
		t.Fatal("la respuesta debe incluir el conteo de tokens")
	}
	if _, ok := body["codes_deleted"]; !ok {
		t.Fatal("la respuesta debe incluir el conteo de códigos")
	}
}
