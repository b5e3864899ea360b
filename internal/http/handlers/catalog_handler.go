package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/research-hours/backend/internal/http/dto"
	"github.com/research-hours/backend/internal/services"
)

type CatalogHandler struct {
	catalogs *services.CatalogService
	log      *zap.Logger
}

func NewCatalogHandler(catalogs *services.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalogs: catalogs, log: log}
}

func (h *CatalogHandler) SearchJournals(c *fiber.Ctx) error {
	q := c.Query("q")
	if q == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "q is required"})
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	entries, err := h.catalogs.SearchJournals(c.Context(), q, limit)
	if err != nil {
		h.log.Error("search journals", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: entries})
}

func (h *CatalogHandler) SearchDomestic(c *fiber.Ctx) error {
	q := c.Query("q")
	if q == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "q is required"})
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	entries, err := h.catalogs.SearchDomestic(c.Context(), q, limit)
	if err != nil {
		h.log.Error("search domestic journals", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: entries})
}

// ImportJournals pulls an indexed-journal table into the catalog.
func (h *CatalogHandler) ImportJournals(c *fiber.Ctx) error {
	var req dto.CatalogImportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}
	if req.URL == "" || req.Index == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "url and index are required"})
	}

	res, err := h.catalogs.ImportJournals(c.Context(), req.URL, req.Index)
	if err != nil {
		h.log.Error("import journals", zap.String("url", req.URL), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: res})
}

// ImportDomestic pulls a council points table into the catalog.
func (h *CatalogHandler) ImportDomestic(c *fiber.Ctx) error {
	var req dto.CatalogImportRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}
	if req.URL == "" || req.Council == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "url and council are required"})
	}

	res, err := h.catalogs.ImportDomestic(c.Context(), req.URL, req.Council)
	if err != nil {
		h.log.Error("import domestic journals", zap.String("url", req.URL), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Error: err.Error()})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: res})
}
