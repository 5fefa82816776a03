package handlers

import (
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/go-contacts-api/internal/models"
	"github.com/pribylovaa/go-contacts-api/internal/service"
	"github.com/pribylovaa/go-contacts-api/internal/transport/http/httperr"
)

// maxAvatarMemory — порог буферизации multipart в памяти (остальное — на диск).
const maxAvatarMemory = 8 << 20

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type subscriptionRequest struct {
	Subscription string `json:"subscription"`
}

type resendVerifyRequest struct {
	Email string `json:"email"`
}

// userResponse — публичный профиль; хэш пароля и сессионный токен наружу
// не отдаются никогда.
type userResponse struct {
	Email        string `json:"email"`
	Subscription string `json:"subscription"`
	AvatarURL    string `json:"avatarURL,omitempty"`
}

func publicProfile(u *models.User, withAvatar bool) userResponse {
	resp := userResponse{
		Email:        u.Email,
		Subscription: string(u.Subscription),
	}
	if withAvatar {
		resp.AvatarURL = u.AvatarURL
	}

	return resp
}

// Register — POST /auth/register.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var in registerRequest
	if err := decodeStrict(r, &in); err != nil {
		httperr.WriteError(w, r, errInvalidBody())
		return
	}

	user, err := h.svc.RegisterUser(r.Context(), in.Email, in.Password)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]userResponse{
		"user": publicProfile(user, true),
	})
}

// Login — POST /auth/login.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := decodeStrict(r, &in); err != nil {
		httperr.WriteError(w, r, errInvalidBody())
		return
	}

	token, user, err := h.svc.LoginUser(r.Context(), in.Email, in.Password)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, struct {
		Token string       `json:"token"`
		User  userResponse `json:"user"`
	}{
		Token: token,
		User:  publicProfile(user, false),
	})
}

// Logout — POST /auth/logout (защищённый).
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	if err := h.svc.LogoutUser(r.Context(), identity.ID); err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Current — GET /auth/current (защищённый).
// Ответ строится из уже разрешённого снимка идентичности, без похода в БД.
func (h *Handlers) Current(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, userResponse{
		Email:        identity.Email,
		Subscription: string(identity.Subscription),
	})
}

// UpdateSubscription — PATCH /auth/subscription (защищённый).
func (h *Handlers) UpdateSubscription(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	var in subscriptionRequest
	if err := decodeStrict(r, &in); err != nil {
		httperr.WriteError(w, r, errInvalidBody())
		return
	}

	user, err := h.svc.UpdateSubscription(r.Context(), identity.ID, in.Subscription)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, publicProfile(user, false))
}

// UpdateAvatar — PATCH /auth/avatars (защищённый, multipart/form-data).
// Разбирает форму, спулит файл поля "avatar" во временный каталог и передаёт
// путь сервису; дальнейший перенос в постоянное хранилище — не забота HTTP-слоя.
func (h *Handlers) UpdateAvatar(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxAvatarMemory); err != nil {
		httperr.WriteError(w, r, service.ErrMissingFile)
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		httperr.WriteError(w, r, service.ErrMissingFile)
		return
	}
	defer file.Close()

	tempPath, err := h.spoolUpload(file, header.Filename)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	url, err := h.svc.UpdateAvatar(r.Context(), identity.ID, tempPath, header.Filename)
	if err != nil {
		_ = os.Remove(tempPath)
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"avatarURL": url})
}

// VerifyEmail — GET /auth/verify/{verificationToken}.
func (h *Handlers) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "verificationToken")

	if err := h.svc.VerifyEmail(r.Context(), token); err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Verification successful"})
}

// ResendVerifyEmail — POST /auth/verify.
func (h *Handlers) ResendVerifyEmail(w http.ResponseWriter, r *http.Request) {
	var in resendVerifyRequest
	if err := decodeStrict(r, &in); err != nil || in.Email == "" {
		httperr.WriteError(w, r, errInvalidBody())
		return
	}

	if err := h.svc.ResendVerifyEmail(r.Context(), in.Email); err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Verification email sent"})
}

// spoolUpload сохраняет содержимое загрузки во временный файл и возвращает путь.
func (h *Handlers) spoolUpload(src io.Reader, originalName string) (string, error) {
	tmp, err := os.CreateTemp(h.tempDir, "upload-*"+filepath.Ext(originalName))
	if err != nil {
		return "", err
	}

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", err
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", err
	}

	return tmp.Name(), nil
}
