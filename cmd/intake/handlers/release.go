package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dnk-music/intake/cmd/intake/middleware"
	"github.com/dnk-music/intake/cmd/intake/models"
	"github.com/dnk-music/intake/cmd/intake/service"
	"github.com/dnk-music/intake/common/logger"
)

// ReleaseHandler handles release-request endpoints
type ReleaseHandler struct {
	releases *service.ReleaseService
	delivery *service.DeliveryService
	docs     *service.DocsService
	log      *logger.Logger
}

// NewReleaseHandler creates a new release handler
func NewReleaseHandler(releases *service.ReleaseService, delivery *service.DeliveryService, docs *service.DocsService, log *logger.Logger) *ReleaseHandler {
	return &ReleaseHandler{
		releases: releases,
		delivery: delivery,
		docs:     docs,
		log:      log,
	}
}

// Submit creates a new pending release request
// POST /api/v1/releases
func (h *ReleaseHandler) Submit(c echo.Context) error {
	var req models.ReleaseRequest
	if err := decode(c, &req); err != nil {
		return err
	}

	user := middleware.CurrentUser(c)
	id, err := h.releases.Submit(c.Request().Context(), user.Username, &req)
	if err != nil {
		return httpError(err)
	}

	return respond(c, http.StatusCreated, map[string]string{"id": id})
}

// List returns the caller's requests; admins see everyone's
// GET /api/v1/releases?status=pending
func (h *ReleaseHandler) List(c echo.Context) error {
	user := middleware.CurrentUser(c)

	username := user.Username
	if user.IsAdmin {
		username = c.QueryParam("username")
	}

	requests, err := h.releases.List(c.Request().Context(), username, models.RequestStatus(c.QueryParam("status")))
	if err != nil {
		return httpError(err)
	}

	return respond(c, http.StatusOK, map[string]any{"requests": requests})
}

// Get returns one request
// GET /api/v1/releases/:id
func (h *ReleaseHandler) Get(c echo.Context) error {
	req, err := h.loadOwned(c)
	if err != nil {
		return err
	}

	return respond(c, http.StatusOK, req)
}

// Update merges the mutable fields of a request
// PATCH /api/v1/releases/:id
func (h *ReleaseHandler) Update(c echo.Context) error {
	if _, err := h.loadOwned(c); err != nil {
		return err
	}

	var patch models.ReleaseRequest
	if err := decode(c, &patch); err != nil {
		return err
	}

	merged, err := h.releases.Update(c.Request().Context(), c.Param("id"), &patch)
	if err != nil {
		return httpError(err)
	}

	return respond(c, http.StatusOK, merged)
}

// Delete removes a request
// DELETE /api/v1/releases/:id
func (h *ReleaseHandler) Delete(c echo.Context) error {
	if _, err := h.loadOwned(c); err != nil {
		return err
	}

	if err := h.releases.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}

	return c.NoContent(http.StatusNoContent)
}

// AddToDelivery runs the delivery-sheet assembly action
// POST /api/v1/releases/:id/delivery
func (h *ReleaseHandler) AddToDelivery(c echo.Context) error {
	snapshot, err := h.delivery.Run(c.Request().Context(), c.Param("id"))
	if err != nil {
		return httpError(err)
	}

	return respond(c, http.StatusOK, snapshot)
}

// AddToDocs runs the docs-sheet assembly action
// POST /api/v1/releases/:id/docs
func (h *ReleaseHandler) AddToDocs(c echo.Context) error {
	if err := h.docs.Run(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err)
	}

	return respond(c, http.StatusOK, map[string]string{"status": "ok"})
}

// loadOwned fetches the request and hides it from non-owners
func (h *ReleaseHandler) loadOwned(c echo.Context) (*models.ReleaseRequest, error) {
	req, err := h.releases.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return nil, httpError(err)
	}

	user := middleware.CurrentUser(c)
	if !user.IsAdmin && req.Username != user.Username {
		return nil, echo.NewHTTPError(http.StatusNotFound, "not found")
	}

	return req, nil
}
