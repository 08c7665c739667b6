package handler

import (
	"reclaim/internal/domain/repository"
	"reclaim/internal/usecase"
	"reclaim/pkg/errors"
	"reclaim/pkg/response"
	"reclaim/pkg/utils"

	"github.com/labstack/echo/v4"
)

type ItemHandler struct {
	itemUseCase *usecase.ItemUseCase
}

func NewItemHandler(itemUseCase *usecase.ItemUseCase) *ItemHandler {
	return &ItemHandler{
		itemUseCase: itemUseCase,
	}
}

type itemRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Location    string `json:"location"`
	Status      string `json:"status" validate:"required,oneof=lost found"`
}

func (h *ItemHandler) CreateItem(c echo.Context) error {
	var req itemRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	ownerID := c.Get("uid").(string)

	item, err := h.itemUseCase.CreateItem(c.Request().Context(), ownerID, usecase.CreateItemInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		Status:      req.Status,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, item)
}

func (h *ItemHandler) GetItem(c echo.Context) error {
	item, err := h.itemUseCase.GetItem(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, item)
}

func (h *ItemHandler) ListItems(c echo.Context) error {
	params := utils.GetPaginationParams(c)

	filter := repository.ItemFilter{
		Status:   c.QueryParam("status"),
		Category: c.QueryParam("category"),
		Query:    c.QueryParam("q"),
	}

	items, total, err := h.itemUseCase.ListItems(c.Request().Context(), filter, params.Page, params.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, items, total, params.Page, params.PageSize)
}

func (h *ItemHandler) ListMyItems(c echo.Context) error {
	params := utils.GetPaginationParams(c)
	ownerID := c.Get("uid").(string)

	filter := repository.ItemFilter{
		OwnerID: ownerID,
		Status:  c.QueryParam("status"),
	}

	items, total, err := h.itemUseCase.ListItems(c.Request().Context(), filter, params.Page, params.PageSize)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, items, total, params.Page, params.PageSize)
}

func (h *ItemHandler) UpdateItem(c echo.Context) error {
	var req itemRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	ownerID := c.Get("uid").(string)

	item, err := h.itemUseCase.UpdateItem(c.Request().Context(), c.Param("id"), ownerID, usecase.CreateItemInput{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Location:    req.Location,
		Status:      req.Status,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, item)
}

func (h *ItemHandler) ResolveItem(c echo.Context) error {
	ownerID := c.Get("uid").(string)

	item, err := h.itemUseCase.ResolveItem(c.Request().Context(), c.Param("id"), ownerID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, item)
}

func (h *ItemHandler) DeleteItem(c echo.Context) error {
	ownerID := c.Get("uid").(string)

	if err := h.itemUseCase.DeleteItem(c.Request().Context(), c.Param("id"), ownerID); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"status": "deleted",
	})
}

func (h *ItemHandler) UploadItemPhoto(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("File is required", err))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.Error(c, errors.Internal("Failed to open uploaded file", err))
	}
	defer file.Close()

	ownerID := c.Get("uid").(string)
	contentType := fileHeader.Header.Get("Content-Type")

	photo, err := h.itemUseCase.UploadItemPhoto(c.Request().Context(), c.Param("id"), ownerID, file, contentType)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, photo)
}

func (h *ItemHandler) ListItemPhotos(c echo.Context) error {
	photos, err := h.itemUseCase.ListItemPhotos(c.Request().Context(), c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, photos)
}

func (h *ItemHandler) AdminDeleteItem(c echo.Context) error {
	if err := h.itemUseCase.AdminDeleteItem(c.Request().Context(), c.Param("id")); err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"status": "deleted",
	})
}

func (h *ItemHandler) Statistics(c echo.Context) error {
	stats, err := h.itemUseCase.Statistics(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, stats)
}

func (h *ItemHandler) PromptStaleResolutions(c echo.Context) error {
	ownerID := c.Get("uid").(string)

	prompted, err := h.itemUseCase.PromptStaleResolutions(c.Request().Context(), ownerID)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, map[string]interface{}{
		"prompted": prompted,
	})
}
