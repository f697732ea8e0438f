package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/aradsms/contactbook/internal/contactbook/app"
	"github.com/aradsms/contactbook/internal/contactbook/domain"
)

type ContactHandler struct {
	app      *app.Application
	logger   *slog.Logger
	validate *validator.Validate
}

func NewContactHandler(application *app.Application, logger *slog.Logger, validate *validator.Validate) *ContactHandler {
	return &ContactHandler{
		app:      application,
		logger:   logger,
		validate: validate,
	}
}

// RegisterRoutes mounts the contact and group endpoints on r.
func (h *ContactHandler) RegisterRoutes(r chi.Router) {
	r.Route("/contacts", func(r chi.Router) {
		r.Post("/", h.CreateContact)
		r.Get("/", h.ListContacts)
		r.Get("/count", h.CountContacts)
		r.Get("/{id}", h.GetContact)
		r.Put("/{id}", h.UpdateContact)
		r.Delete("/{id}", h.DeleteContact)
	})
	r.Route("/groups", func(r chi.Router) {
		r.Get("/", h.ListGroups)
		r.Get("/{id}", h.GetGroupSummary)
	})
}

func (h *ContactHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := h.decodeContact(w, r, "CreateContact")
	if !ok {
		return
	}

	ct, err := h.app.CreateContact(ctx, req.Name, req.PaternalSurname, req.MaternalSurname, req.Phone, req.GroupID)
	if err != nil {
		h.respondWithStoreError(w, r, err, "CreateContact")
		return
	}
	h.respondWithJSON(w, r, http.StatusCreated, ct)
}

// ListContacts serves the unfiltered listing, or one of the name/group filters.
// ?format=tuple switches the payload to positional arrays.
func (h *ContactHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	if q.Has("name") && q.Has("group_id") {
		h.respondWithError(w, r, http.StatusBadRequest, "name and group_id filters cannot be combined")
		return
	}

	var (
		contacts []domain.Contact
		err      error
	)
	switch {
	case q.Has("name"):
		contacts, err = h.app.SearchContacts(ctx, q.Get("name"))
	case q.Has("group_id"):
		groupID, perr := parseID(q.Get("group_id"))
		if perr != nil {
			h.respondWithError(w, r, http.StatusBadRequest, "group_id must be a positive integer")
			return
		}
		contacts, err = h.app.ListContactsInGroup(ctx, groupID)
	default:
		contacts, err = h.app.ListContacts(ctx)
	}
	if err != nil {
		h.respondWithStoreError(w, r, err, "ListContacts")
		return
	}

	switch q.Get("format") {
	case "", "json":
		h.respondWithJSON(w, r, http.StatusOK, ListContactsResponseDTO{Contacts: contacts, Count: len(contacts)})
	case "tuple":
		h.respondWithJSON(w, r, http.StatusOK, TupleContactsResponseDTO{Contacts: domain.Tuples(contacts), Count: len(contacts)})
	default:
		h.respondWithError(w, r, http.StatusBadRequest, fmt.Sprintf("unknown format %q", q.Get("format")))
	}
}

func (h *ContactHandler) CountContacts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	raw := r.URL.Query().Get("group_id")
	if raw == "" {
		n, err := h.app.CountContacts(ctx)
		if err != nil {
			h.respondWithStoreError(w, r, err, "CountContacts")
			return
		}
		h.respondWithJSON(w, r, http.StatusOK, CountResponseDTO{Count: n})
		return
	}

	groupID, err := parseID(raw)
	if err != nil {
		h.respondWithError(w, r, http.StatusBadRequest, "group_id must be a positive integer")
		return
	}
	n, err := h.app.CountContactsInGroup(ctx, groupID)
	if err != nil {
		h.respondWithStoreError(w, r, err, "CountContacts")
		return
	}
	h.respondWithJSON(w, r, http.StatusOK, CountResponseDTO{Count: n, GroupID: &groupID})
}

func (h *ContactHandler) GetContact(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	ct, err := h.app.GetContact(r.Context(), id)
	if err != nil {
		h.respondWithStoreError(w, r, err, "GetContact")
		return
	}
	h.respondWithJSON(w, r, http.StatusOK, ct)
}

func (h *ContactHandler) UpdateContact(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	req, ok := h.decodeContact(w, r, "UpdateContact")
	if !ok {
		return
	}

	ct := &domain.Contact{
		ID:              id,
		Name:            req.Name,
		PaternalSurname: req.PaternalSurname,
		MaternalSurname: req.MaternalSurname,
		Phone:           req.Phone,
		GroupID:         req.GroupID,
	}
	res, err := h.app.UpdateContact(r.Context(), ct)
	if err != nil {
		h.respondWithStoreError(w, r, err, "UpdateContact")
		return
	}
	h.respondWithWrite(w, r, id, res)
}

func (h *ContactHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	res, err := h.app.DeleteContact(r.Context(), id)
	if err != nil {
		h.respondWithStoreError(w, r, err, "DeleteContact")
		return
	}
	h.respondWithWrite(w, r, id, res)
}

func (h *ContactHandler) ListGroups(w http.ResponseWriter, r *http.Request) {
	groups, err := h.app.ListGroups(r.Context())
	if err != nil {
		h.respondWithStoreError(w, r, err, "ListGroups")
		return
	}
	h.respondWithJSON(w, r, http.StatusOK, ListGroupsResponseDTO{Groups: groups})
}

func (h *ContactHandler) GetGroupSummary(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}
	summary, err := h.app.GroupSummary(r.Context(), id)
	if err != nil {
		h.respondWithStoreError(w, r, err, "GetGroupSummary")
		return
	}
	h.respondWithJSON(w, r, http.StatusOK, summary)
}

// --- helpers ---

func (h *ContactHandler) decodeContact(w http.ResponseWriter, r *http.Request, op string) (ContactRequestDTO, bool) {
	ctx := r.Context()
	var req ContactRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "Failed to decode request body", "operation", op, "request_id", RequestIDFromContext(ctx), "error", err)
		h.respondWithError(w, r, http.StatusBadRequest, "Invalid request body")
		return req, false
	}
	if err := h.validate.StructCtx(ctx, req); err != nil {
		h.logger.WarnContext(ctx, "Validation failed", "operation", op, "request_id", RequestIDFromContext(ctx), "error", err)
		h.respondWithError(w, r, http.StatusBadRequest, fmt.Sprintf("Validation error: %s", err.Error()))
		return req, false
	}
	return req, true
}

func (h *ContactHandler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := parseID(chi.URLParam(r, "id"))
	if err != nil {
		h.respondWithError(w, r, http.StatusBadRequest, "id must be a positive integer")
		return 0, false
	}
	return id, true
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, fmt.Errorf("id %d out of range", id)
	}
	return id, nil
}

// respondWithWrite turns a zero-row update or delete into a 404; the store
// itself does not treat it as a failure.
func (h *ContactHandler) respondWithWrite(w http.ResponseWriter, r *http.Request, id int64, res domain.WriteResult) {
	if !res.Matched() {
		h.respondWithError(w, r, http.StatusNotFound, fmt.Sprintf("contact %d not found", id))
		return
	}
	h.respondWithJSON(w, r, http.StatusOK, WriteResponseDTO{ID: id, RowsAffected: res.RowsAffected})
}

func (h *ContactHandler) respondWithStoreError(w http.ResponseWriter, r *http.Request, err error, op string) {
	ctx := r.Context()
	logEntry := h.logger.With("operation", op, "request_id", RequestIDFromContext(ctx), "error", err)

	switch {
	case errors.Is(err, domain.ErrNotFound):
		logEntry.InfoContext(ctx, "Resource not found")
		h.respondWithError(w, r, http.StatusNotFound, "Resource not found")
	case errors.Is(err, domain.ErrConnection):
		logEntry.ErrorContext(ctx, "Store unavailable")
		h.respondWithError(w, r, http.StatusServiceUnavailable, "Store unavailable")
	default:
		logEntry.ErrorContext(ctx, "Store operation failed")
		h.respondWithError(w, r, http.StatusInternalServerError, "Internal server error")
	}
}

func (h *ContactHandler) respondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	h.respondWithJSON(w, r, status, ErrorResponseDTO{Error: message})
}

func (h *ContactHandler) respondWithJSON(w http.ResponseWriter, r *http.Request, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to encode response", "request_id", RequestIDFromContext(r.Context()), "error", err)
	}
}
