// Copyright 2023 Canonical Ltd.

// Package hubhttp contains the HTTP handlers of the rhub API. The
// handlers parse requests, call into the hub and translate hub errors
// into HTTP responses. Callers are authenticated by a front-end proxy
// which passes the authenticated username in a request header.
package hubhttp

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"
	"github.com/juju/zaputil/zapctx"
	"go.uber.org/zap"

	"github.com/canonical/rhub/api/params"
	"github.com/canonical/rhub/internal/dbmodel"
	"github.com/canonical/rhub/internal/errors"
	"github.com/canonical/rhub/internal/hub"
	"github.com/canonical/rhub/internal/servermon"
)

// UserHeader is the request header carrying the authenticated username.
// The front-end proxy is trusted to have verified the identity.
const UserHeader = "X-Rhub-User"

// A Handler handles the rhub API requests.
type Handler struct {
	Hub *hub.Hub
}

// Routes returns the router serving the rhub API.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(h.authenticate)
	r.Route("/regions", func(r chi.Router) {
		r.Get("/", h.listRegions)
		r.Post("/", h.createRegion)
		r.Get("/usage", h.allRegionsUsage)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.getRegion)
			r.Patch("/", h.updateRegion)
			r.Delete("/", h.deleteRegion)
			r.Get("/usage", h.regionUsage)
			r.Get("/products", h.listRegionProducts)
			r.Post("/products", h.addRegionProduct)
			r.Delete("/products", h.removeRegionProduct)
		})
	})
	return r
}

// requestID attaches a unique ID to the request context logger and
// times the request.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := req.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		ctx := zapctx.WithFields(req.Context(), zap.String("request-id", id))
		defer servermon.DurationObserver(servermon.RequestDurationHistogram, req.URL.Path)()
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

type contextKey string

const userContextKey contextKey = "user"

// authenticate resolves the username passed by the front-end proxy into
// a user record with its group memberships and stores it in the request
// context.
func (h *Handler) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		name := req.Header.Get(UserHeader)
		if name == "" {
			writeError(w, req, errors.E(errors.CodeUnauthorized, "no user identity provided"))
			return
		}
		user := dbmodel.User{Name: name}
		if err := h.Hub.Database.GetUser(ctx, &user); err != nil {
			if errors.ErrorCode(err) == errors.CodeNotFound {
				err = errors.E(errors.CodeUnauthorized, "unknown user")
			}
			writeError(w, req, err)
			return
		}
		ctx = context.WithValue(ctx, userContextKey, &user)
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

// userFromContext returns the authenticated user stored in the context
// by the authenticate middleware.
func userFromContext(ctx context.Context) *dbmodel.User {
	u, _ := ctx.Value(userContextKey).(*dbmodel.User)
	return u
}

// writeError writes the HTTP response for the given error. Error codes
// map onto HTTP statuses, anything without a mapped code is reported as
// an internal server error.
func writeError(w http.ResponseWriter, req *http.Request, err error) {
	status := http.StatusInternalServerError
	switch errors.ErrorCode(err) {
	case errors.CodeNotFound:
		status = http.StatusNotFound
	case errors.CodeUnauthorized:
		status = http.StatusForbidden
	case errors.CodeAlreadyExists:
		status = http.StatusConflict
	case errors.CodeBadRequest:
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		zapctx.Error(req.Context(), "internal server error", zap.Error(err))
	}
	render.Status(req, status)
	render.JSON(w, req, params.Error{
		Message: err.Error(),
		Code:    string(errors.ErrorCode(err)),
	})
}
