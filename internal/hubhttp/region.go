// Copyright 2023 Canonical Ltd.

package hubhttp

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/canonical/rhub/api/params"
	"github.com/canonical/rhub/internal/db"
	"github.com/canonical/rhub/internal/errors"
)

// defaultPageLimit is the page size used when a list request does not
// specify one.
const defaultPageLimit = 50

// urlID returns the value of the "id" URL parameter.
func urlID(req *http.Request) (uint, error) {
	s := chi.URLParam(req, "id")
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, errors.E(errors.CodeBadRequest, fmt.Sprintf("invalid id %q", s))
	}
	return uint(v), nil
}

// queryBool returns the named boolean query parameter, or nil if it is
// not present.
func queryBool(req *http.Request, name string) (*bool, error) {
	s := req.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return nil, errors.E(errors.CodeBadRequest, fmt.Sprintf("invalid %s %q", name, s))
	}
	return &v, nil
}

// queryUint returns the named unsigned integer query parameter, or nil
// if it is not present.
func queryUint(req *http.Request, name string) (*uint, error) {
	s := req.URL.Query().Get(name)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return nil, errors.E(errors.CodeBadRequest, fmt.Sprintf("invalid %s %q", name, s))
	}
	u := uint(v)
	return &u, nil
}

// queryInt returns the named integer query parameter, or the given
// default if it is not present.
func queryInt(req *http.Request, name string, dflt int) (int, error) {
	s := req.URL.Query().Get(name)
	if s == "" {
		return dflt, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 {
		return 0, errors.E(errors.CodeBadRequest, fmt.Sprintf("invalid %s %q", name, s))
	}
	return v, nil
}

// regionFilter builds the region filter from the request query
// parameters.
func regionFilter(req *http.Request) (db.RegionFilter, error) {
	q := req.URL.Query()
	filter := db.RegionFilter{
		Name:           q.Get("name"),
		LocationName:   q.Get("location"),
		OwnerGroupName: q.Get("owner_group_name"),
		UsersGroupName: q.Get("users_group_name"),
	}
	var err error
	if filter.Enabled, err = queryBool(req, "enabled"); err != nil {
		return filter, err
	}
	if filter.ReservationsEnabled, err = queryBool(req, "reservations_enabled"); err != nil {
		return filter, err
	}
	if filter.OwnerGroupID, err = queryUint(req, "owner_group_id"); err != nil {
		return filter, err
	}
	if filter.UsersGroupID, err = queryUint(req, "users_group_id"); err != nil {
		return filter, err
	}
	return filter, nil
}

func (h *Handler) listRegions(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	u := userFromContext(ctx)

	filter, err := regionFilter(req)
	if err != nil {
		writeError(w, req, err)
		return
	}
	var sort []string
	if s := req.URL.Query().Get("sort"); s != "" {
		sort = strings.Split(s, ",")
	}
	page, err := queryInt(req, "page", 0)
	if err != nil {
		writeError(w, req, err)
		return
	}
	limit, err := queryInt(req, "limit", defaultPageLimit)
	if err != nil {
		writeError(w, req, err)
		return
	}

	resp, err := h.Hub.ListRegions(ctx, u, filter, sort, page, limit)
	if err != nil {
		writeError(w, req, err)
		return
	}
	render.JSON(w, req, resp)
}

func (h *Handler) createRegion(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	u := userFromContext(ctx)

	var body params.AddRegionRequest
	if err := render.DecodeJSON(req.Body, &body); err != nil {
		writeError(w, req, errors.E(errors.CodeBadRequest, err.Error()))
		return
	}
	region, err := h.Hub.CreateRegion(ctx, u, body)
	if err != nil {
		writeError(w, req, err)
		return
	}
	render.Status(req, http.StatusCreated)
	render.JSON(w, req, region)
}

func (h *Handler) getRegion(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	u := userFromContext(ctx)

	id, err := urlID(req)
	if err != nil {
		writeError(w, req, err)
		return
	}
	region, err := h.Hub.GetRegion(ctx, u, id)
	if err != nil {
		writeError(w, req, err)
		return
	}
	render.JSON(w, req, region)
}

func (h *Handler) updateRegion(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	u := userFromContext(ctx)

	id, err := urlID(req)
	if err != nil {
		writeError(w, req, err)
		return
	}
	var body params.UpdateRegionRequest
	if err := render.DecodeJSON(req.Body, &body); err != nil {
		writeError(w, req, errors.E(errors.CodeBadRequest, err.Error()))
		return
	}
	region, err := h.Hub.UpdateRegion(ctx, u, id, body)
	if err != nil {
		writeError(w, req, err)
		return
	}
	render.JSON(w, req, region)
}

func (h *Handler) deleteRegion(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	u := userFromContext(ctx)

	id, err := urlID(req)
	if err != nil {
		writeError(w, req, err)
		return
	}
	if err := h.Hub.DeleteRegion(ctx, u, id); err != nil {
		writeError(w, req, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listRegionProducts(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	u := userFromContext(ctx)

	id, err := urlID(req)
	if err != nil {
		writeError(w, req, err)
		return
	}
	filter := db.RegionProductFilter{
		ProductName: req.URL.Query().Get("name"),
	}
	if filter.Enabled, err = queryBool(req, "enabled"); err != nil {
		writeError(w, req, err)
		return
	}
	products, err := h.Hub.ListRegionProducts(ctx, u, id, filter)
	if err != nil {
		writeError(w, req, err)
		return
	}
	render.JSON(w, req, products)
}

func (h *Handler) addRegionProduct(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	u := userFromContext(ctx)

	id, err := urlID(req)
	if err != nil {
		writeError(w, req, err)
		return
	}
	var body params.AddRegionProductRequest
	if err := render.DecodeJSON(req.Body, &body); err != nil {
		writeError(w, req, errors.E(errors.CodeBadRequest, err.Error()))
		return
	}
	if err := h.Hub.AddRegionProduct(ctx, u, id, body); err != nil {
		writeError(w, req, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) removeRegionProduct(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	u := userFromContext(ctx)

	id, err := urlID(req)
	if err != nil {
		writeError(w, req, err)
		return
	}
	var body params.RemoveRegionProductRequest
	if err := render.DecodeJSON(req.Body, &body); err != nil {
		writeError(w, req, errors.E(errors.CodeBadRequest, err.Error()))
		return
	}
	if err := h.Hub.RemoveRegionProduct(ctx, u, id, body); err != nil {
		writeError(w, req, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) regionUsage(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	u := userFromContext(ctx)

	id, err := urlID(req)
	if err != nil {
		writeError(w, req, err)
		return
	}
	usage, err := h.Hub.RegionUsage(ctx, u, id)
	if err != nil {
		writeError(w, req, err)
		return
	}
	render.JSON(w, req, usage)
}

func (h *Handler) allRegionsUsage(w http.ResponseWriter, req *http.Request) {
	ctx := req.Context()
	u := userFromContext(ctx)

	usage, err := h.Hub.AllRegionsUsage(ctx, u)
	if err != nil {
		writeError(w, req, err)
		return
	}
	render.JSON(w, req, usage)
}
