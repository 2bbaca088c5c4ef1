package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/Dan9191/bank-clients/internal/apperr"
	"github.com/Dan9191/bank-clients/internal/models"
	"github.com/Dan9191/bank-clients/internal/service"
)

// Pinger reports whether the backing storage is reachable
type Pinger func(ctx context.Context) error

type Handler struct {
	svc       *service.Service
	log       *logrus.Logger
	pageLimit int
	ping      Pinger
}

// NewHandler builds the HTTP handlers. ping may be nil when the storage has
// nothing to check.
func NewHandler(svc *service.Service, log *logrus.Logger, pageLimit int, ping Pinger) *Handler {
	if pageLimit <= 0 {
		pageLimit = 100
	}
	return &Handler{svc: svc, log: log, pageLimit: pageLimit, ping: ping}
}

type errorBody struct {
	Detail string              `json:"detail"`
	Errors []apperr.FieldError `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps service errors onto status codes. Unexpected errors are
// logged and reported without internals.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *apperr.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Detail: ve.Error(), Errors: ve.Fields})
	case errors.Is(err, apperr.ErrValidation), errors.Is(err, apperr.ErrInvalidReference):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Detail: err.Error()})
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Detail: err.Error()})
	case errors.Is(err, apperr.ErrConflict):
		writeJSON(w, http.StatusConflict, errorBody{Detail: err.Error()})
	case errors.Is(err, apperr.ErrUnavailable):
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Detail: err.Error()})
	default:
		h.log.WithError(err).WithField("path", r.URL.Path).Error("Request failed")
		writeJSON(w, http.StatusInternalServerError, errorBody{Detail: "internal server error"})
	}
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorBody{Detail: msg})
}

// decode reads a JSON body into dst. A value of the wrong JSON type is a
// validation error on that field; anything else unreadable is a bad request.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(dst)
	if err == nil {
		return true
	}
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		reason := fmt.Sprintf("must be of type %s", typeErr.Type)
		if typeErr.Type == reflect.TypeOf(models.Date{}) {
			reason = "must be a date in YYYY-MM-DD format"
		}
		h.writeError(w, r, apperr.Validation(typeErr.Field, reason))
		return false
	}
	badRequest(w, "invalid request body: "+err.Error())
	return false
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		badRequest(w, "invalid id")
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, key string, def int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperr.Validation(key, "must be an integer")
	}
	return n, nil
}

func queryBool(r *http.Request, key string) (bool, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apperr.Validation(key, "must be a boolean")
	}
	return b, nil
}

// Health reports liveness and storage reachability
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if h.ping != nil {
		if err := h.ping(r.Context()); err != nil {
			h.log.WithError(err).Warn("Health check failed")
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
