package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/AlibekovAA/exercise-tracker/internal/common/constants"
	commonerrors "github.com/AlibekovAA/exercise-tracker/internal/common/errors"
	"github.com/AlibekovAA/exercise-tracker/internal/common/httpmetrics"
	"github.com/AlibekovAA/exercise-tracker/internal/common/logger"
	"github.com/AlibekovAA/exercise-tracker/internal/observability/metrics"
)

// ErrorHandler writes every failure as {"error": message}. Unless strict,
// not-found and conflict errors are sent with status 200 and clients tell
// them apart by the error field alone.
type ErrorHandler struct {
	log    *logger.Logger
	strict bool
}

func NewErrorHandler(log *logger.Logger, strict bool) *ErrorHandler {
	return &ErrorHandler{log: log, strict: strict}
}

func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	ctx := r.Context()
	traceID := GetTraceID(ctx)

	if domainErr, ok := commonerrors.AsDomainError(err); ok {
		h.handleDomainError(w, r, domainErr)
		return
	}

	logFields := logger.Fields{
		"error":  err.Error(),
		"action": "unhandled_error",
	}
	if traceID != "" {
		w.Header().Set(TraceIDHeader, traceID)
	}

	h.log.WithFields(ctx, logFields).Errorf("unhandled error: %v", err)

	metrics.HTTPErrorsTotal.WithLabelValues(
		strconv.Itoa(http.StatusInternalServerError),
		httpmetrics.NormalizePath(r.URL.Path),
		r.Method,
	).Inc()

	WriteError(w, http.StatusInternalServerError, commonerrors.ErrInternalError.Message())
}

func (h *ErrorHandler) handleDomainError(w http.ResponseWriter, r *http.Request, err commonerrors.DomainError) {
	ctx := r.Context()
	traceID := GetTraceID(ctx)

	var domainErr commonerrors.DomainError = err
	if traceID != "" && err.TraceID() == "" {
		domainErr = err.WithTraceID(traceID)
	}

	status := h.StatusFor(domainErr)

	logFields := logger.Fields{
		"error_code": domainErr.Code(),
		"category":   string(domainErr.Category()),
		"status":     status,
		"action":     "domain_error",
	}

	if h.log.ShouldLog(logger.DEBUG) {
		h.log.WithFields(ctx, logFields).Debugf("domain error: %s", domainErr.Error())
	}

	metrics.DomainErrorsTotal.WithLabelValues(
		string(domainErr.Category()),
		domainErr.Code(),
		strconv.Itoa(status),
	).Inc()

	if status >= http.StatusBadRequest {
		metrics.HTTPErrorsTotal.WithLabelValues(
			strconv.Itoa(status),
			httpmetrics.NormalizePath(r.URL.Path),
			r.Method,
		).Inc()
	}

	if traceID != "" {
		w.Header().Set(TraceIDHeader, traceID)
	}

	WriteError(w, status, domainErr.Message())
}

func (h *ErrorHandler) StatusFor(err commonerrors.DomainError) int {
	if h.strict {
		return err.HTTPStatus()
	}
	switch err.Category() {
	case commonerrors.CategoryNotFound, commonerrors.CategoryConflict:
		return http.StatusOK
	default:
		return err.HTTPStatus()
	}
}

func GetTraceID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	traceID, ok := ctx.Value(constants.TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}
