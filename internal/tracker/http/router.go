package http

import (
	"net/http"
	"time"

	commonhttp "github.com/AlibekovAA/exercise-tracker/internal/common/http"
	"github.com/AlibekovAA/exercise-tracker/internal/common/logger"
	"github.com/AlibekovAA/exercise-tracker/internal/tracker/coerce"
	"github.com/AlibekovAA/exercise-tracker/internal/tracker/domain"
	"github.com/AlibekovAA/exercise-tracker/internal/tracker/service"
)

type userResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type exerciseResponse struct {
	ID          string        `json:"id"`
	Username    string        `json:"username"`
	Description string        `json:"description"`
	Duration    coerce.Number `json:"duration"`
	Date        string        `json:"date"`
}

type logEntryResponse struct {
	Description string        `json:"description"`
	Duration    coerce.Number `json:"duration"`
	Date        string        `json:"date"`
}

type logResponse struct {
	ID       string             `json:"id"`
	Username string             `json:"username"`
	Count    int                `json:"count"`
	Log      []logEntryResponse `json:"log"`
}

type Options struct {
	StrictStatus   bool
	RequestTimeout time.Duration
}

type Handler struct {
	store      service.Store
	log        *logger.Logger
	errHandler *commonhttp.ErrorHandler
}

func NewHandler(store service.Store, log *logger.Logger, opts Options) http.Handler {
	h := &Handler{
		store:      store,
		log:        log,
		errHandler: commonhttp.NewErrorHandler(log, opts.StrictStatus),
	}
	withTimeout := commonhttp.WithTimeout(opts.RequestTimeout)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/users", withTimeout(h.createUser))
	mux.HandleFunc("GET /api/users", withTimeout(h.listUsers))
	mux.HandleFunc("POST /api/users/{id}/exercises", withTimeout(h.appendExercise))
	mux.HandleFunc("GET /api/users/{id}/logs", withTimeout(h.queryLog))
	return mux
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}

	user, err := h.store.CreateUser(r.Context(), body.text("username"))
	if err != nil {
		h.errHandler.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		h.errHandler.HandleError(w, r, err)
		return
	}

	resp := make([]userResponse, len(users))
	for i, u := range users {
		resp[i] = toUserResponse(u)
	}
	commonhttp.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) appendExercise(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}

	entry, err := h.store.AppendExercise(r.Context(), domain.ID(r.PathValue("id")), service.AppendExerciseInput{
		Description: body.text("description"),
		Duration:    body.get("duration"),
		Date:        body.get("date"),
	})
	if err != nil {
		h.errHandler.HandleError(w, r, err)
		return
	}

	commonhttp.WriteJSON(w, http.StatusOK, exerciseResponse{
		ID:          string(entry.ID),
		Username:    entry.Username,
		Description: entry.Exercise.Description,
		Duration:    entry.Exercise.Duration,
		Date:        entry.Exercise.Date,
	})
}

func (h *Handler) queryLog(w http.ResponseWriter, r *http.Request) {
	query := fromValues(r.URL.Query())

	view, err := h.store.QueryLog(r.Context(), domain.ID(r.PathValue("id")), service.LogQuery{
		From:  query.get("from"),
		To:    query.get("to"),
		Limit: query.get("limit"),
	})
	if err != nil {
		h.errHandler.HandleError(w, r, err)
		return
	}

	entries := make([]logEntryResponse, len(view.Log))
	for i, e := range view.Log {
		entries[i] = logEntryResponse{
			Description: e.Description,
			Duration:    e.Duration,
			Date:        e.Date,
		}
	}
	commonhttp.WriteJSON(w, http.StatusOK, logResponse{
		ID:       string(view.ID),
		Username: view.Username,
		Count:    view.Count,
		Log:      entries,
	})
}

func (h *Handler) readBody(w http.ResponseWriter, r *http.Request) (fields, bool) {
	body, err := readBody(r)
	if err == nil {
		return body, true
	}
	if isBodyTooLarge(err) {
		h.log.WithFields(r.Context(), logger.Fields{
			"path":   r.URL.Path,
			"action": "request_body_too_large",
		}).Warn("request rejected: body too large")
		commonhttp.WriteError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return nil, false
	}
	h.log.WithFields(r.Context(), logger.Fields{
		"path":   r.URL.Path,
		"action": "request_body_invalid",
	}).Warnf("request rejected: %v", err)
	h.errHandler.HandleError(w, r, err)
	return nil, false
}

func toUserResponse(u domain.Summary) userResponse {
	return userResponse{ID: string(u.ID), Username: u.Username}
}
