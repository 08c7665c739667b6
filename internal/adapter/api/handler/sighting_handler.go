package handler

import (
	"reclaim/internal/usecase"
	"reclaim/pkg/response"

	"github.com/labstack/echo/v4"
)

type SightingHandler struct {
	sightingUseCase *usecase.SightingUseCase
}

func NewSightingHandler(sightingUseCase *usecase.SightingUseCase) *SightingHandler {
	return &SightingHandler{
		sightingUseCase: sightingUseCase,
	}
}

type reportSightingRequest struct {
	ItemID      string `json:"item_id" validate:"required"`
	Location    string `json:"location" validate:"required"`
	Description string `json:"description"`
	ContactInfo string `json:"contact_info"`
	PhotoURL    string `json:"photo_url"`
}

func (h *SightingHandler) ReportSighting(c echo.Context) error {
	var req reportSightingRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	reporterID := c.Get("uid").(string)

	sighting, err := h.sightingUseCase.ReportSighting(c.Request().Context(), reporterID, usecase.ReportSightingInput{
		ItemID:      req.ItemID,
		Location:    req.Location,
		Description: req.Description,
		ContactInfo: req.ContactInfo,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, sighting)
}

func (h *SightingHandler) ListByItem(c echo.Context) error {
	requesterID := c.Get("uid").(string)

	sightings, err := h.sightingUseCase.ListByItem(c.Request().Context(), c.Param("id"), requesterID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, sightings)
}

func (h *SightingHandler) ListMySightings(c echo.Context) error {
	reporterID := c.Get("uid").(string)

	sightings, err := h.sightingUseCase.ListByReporter(c.Request().Context(), reporterID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, sightings)
}

type sightingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed discarded"`
}

func (h *SightingHandler) SetStatus(c echo.Context) error {
	var req sightingStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	requesterID := c.Get("uid").(string)

	sighting, err := h.sightingUseCase.SetStatus(c.Request().Context(), c.Param("id"), requesterID, req.Status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, sighting)
}

func (h *SightingHandler) AdminSetStatus(c echo.Context) error {
	var req sightingStatusRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	sighting, err := h.sightingUseCase.AdminSetStatus(c.Request().Context(), c.Param("id"), req.Status)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, sighting)
}
