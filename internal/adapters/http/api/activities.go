package api

import (
	"context"
	"net/http"

	"github.com/mergington/activities/internal/domain/types"
	"github.com/mergington/activities/pkg/logger"
)

// ActivityDependencies defines the catalog operations used by the handlers.
type ActivityDependencies interface {
	Activities(ctx context.Context) (map[string]types.Activity, error)
	Signup(ctx context.Context, activity, email string) (types.Message, error)
	Unregister(ctx context.Context, activity, email string) (types.Message, error)
}

// ActivitiesHandler handles catalog and roster requests.
type ActivitiesHandler struct {
	deps   ActivityDependencies
	logger logger.Logger
}

// NewActivitiesHandler creates a new activities handler.
func NewActivitiesHandler(deps ActivityDependencies, log logger.Logger) *ActivitiesHandler {
	return &ActivitiesHandler{deps: deps, logger: log}
}

// HandleList handles GET /activities requests.
func (h *ActivitiesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	const op = "api.list_activities"
	all, err := h.deps.Activities(r.Context())
	if err != nil {
		h.fail(r.Context(), w, NewKind(op, err))
		return
	}
	writeJSON(w, http.StatusOK, all)
}

// HandleSignup handles POST /activities/{activity_name}/signup?email= requests.
func (h *ActivitiesHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	const op = "api.signup"
	activity, email, err := rosterParams(r)
	if err != nil {
		h.fail(r.Context(), w, WrapKind(op, ErrBadRequest, err))
		return
	}
	msg, err := h.deps.Signup(r.Context(), activity, email)
	if err != nil {
		h.fail(r.Context(), w, NewKind(op, err))
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

// HandleUnregister handles DELETE /activities/{activity_name}/signup?email= requests.
func (h *ActivitiesHandler) HandleUnregister(w http.ResponseWriter, r *http.Request) {
	const op = "api.unregister"
	activity, email, err := rosterParams(r)
	if err != nil {
		h.fail(r.Context(), w, WrapKind(op, ErrBadRequest, err))
		return
	}
	msg, err := h.deps.Unregister(r.Context(), activity, email)
	if err != nil {
		h.fail(r.Context(), w, NewKind(op, err))
		return
	}
	writeJSON(w, http.StatusOK, msg)
}

// rosterParams extracts the unescaped activity name and the email query
// parameter. Only presence of the email key is checked; "?email=" is a value.
func rosterParams(r *http.Request) (string, string, error) {
	activity := r.PathValue("activity_name")
	query := r.URL.Query()
	if !query.Has("email") {
		return "", "", ErrMissingEmail
	}
	return activity, query.Get("email"), nil
}

func (h *ActivitiesHandler) fail(ctx context.Context, w http.ResponseWriter, err error) {
	status, detail := errorStatus(err)
	if status >= http.StatusInternalServerError && h.logger != nil {
		h.logger.Error(ctx, "request failed", logger.Error(err))
	}
	writeError(w, status, detail)
}
