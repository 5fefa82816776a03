package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pribylovaa/go-contacts-api/internal/models"
	"github.com/pribylovaa/go-contacts-api/internal/service"
	"github.com/pribylovaa/go-contacts-api/internal/storage"
	"github.com/pribylovaa/go-contacts-api/internal/transport/http/httperr"
)

type createContactRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Favorite bool   `json:"favorite"`
}

type updateContactRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
	Favorite *bool   `json:"favorite"`
}

type favoriteRequest struct {
	Favorite *bool `json:"favorite"`
}

type contactResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Favorite bool   `json:"favorite"`
}

func contactOut(c *models.Contact) contactResponse {
	return contactResponse{
		ID:       c.ID,
		Name:     c.Name,
		Email:    c.Email,
		Phone:    c.Phone,
		Favorite: c.Favorite,
	}
}

// ListContacts — GET /contacts?page=&limit=&favorite= (защищённый).
func (h *Handlers) ListContacts(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	opts, err := listOptionsFromQuery(r)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	contacts, err := h.svc.ListContacts(r.Context(), identity.ID, opts)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	out := make([]contactResponse, 0, len(contacts))
	for i := range contacts {
		out = append(out, contactOut(&contacts[i]))
	}

	writeJSON(w, http.StatusOK, out)
}

// GetContact — GET /contacts/{id} (защищённый).
func (h *Handlers) GetContact(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	contact, err := h.svc.ContactByID(r.Context(), identity.ID, chi.URLParam(r, "id"))
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, contactOut(contact))
}

// CreateContact — POST /contacts (защищённый).
func (h *Handlers) CreateContact(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	var in createContactRequest
	if err := decodeStrict(r, &in); err != nil {
		httperr.WriteError(w, r, errInvalidBody())
		return
	}

	contact, err := h.svc.CreateContact(r.Context(), identity.ID, service.CreateContactInput{
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Favorite: in.Favorite,
	})
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, contactOut(contact))
}

// UpdateContact — PUT /contacts/{id} (защищённый).
func (h *Handlers) UpdateContact(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	var in updateContactRequest
	if err := decodeStrict(r, &in); err != nil {
		httperr.WriteError(w, r, errInvalidBody())
		return
	}

	contact, err := h.svc.UpdateContact(r.Context(), identity.ID, chi.URLParam(r, "id"), storage.ContactUpdate{
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Favorite: in.Favorite,
	})
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, contactOut(contact))
}

// UpdateContactFavorite — PATCH /contacts/{id}/favorite (защищённый).
func (h *Handlers) UpdateContactFavorite(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	var in favoriteRequest
	if err := decodeStrict(r, &in); err != nil || in.Favorite == nil {
		httperr.WriteError(w, r, errInvalidBody())
		return
	}

	contact, err := h.svc.UpdateContactFavorite(r.Context(), identity.ID, chi.URLParam(r, "id"), *in.Favorite)
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, contactOut(contact))
}

// DeleteContact — DELETE /contacts/{id} (защищённый).
// В ответ уходит снимок удалённой записи.
func (h *Handlers) DeleteContact(w http.ResponseWriter, r *http.Request) {
	identity, ok := callerIdentity(w, r)
	if !ok {
		return
	}

	contact, err := h.svc.RemoveContact(r.Context(), identity.ID, chi.URLParam(r, "id"))
	if err != nil {
		httperr.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, contactOut(contact))
}

// listOptionsFromQuery разбирает page/limit/favorite из query-параметров.
// Отсутствующие значения дают дефолты (page=1, limit=20), битые — 400.
func listOptionsFromQuery(r *http.Request) (service.ListContactsOptions, error) {
	var opts service.ListContactsOptions

	q := r.URL.Query()

	if raw := q.Get("page"); raw != "" {
		page, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || page == 0 {
			return opts, errInvalidBody()
		}
		opts.Page = page
	}

	if raw := q.Get("limit"); raw != "" {
		limit, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || limit == 0 {
			return opts, errInvalidBody()
		}
		opts.Limit = limit
	}

	if raw := q.Get("favorite"); raw != "" {
		favorite, err := strconv.ParseBool(raw)
		if err != nil {
			return opts, errInvalidBody()
		}
		opts.Favorite = &favorite
	}

	return opts, nil
}
