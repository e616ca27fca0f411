package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Restobar-api/internal/application/dto"
	"github.com/jhoicas/Restobar-api/internal/application/inventory"
	"github.com/jhoicas/Restobar-api/internal/domain"
)

// InventoryHandler maneja consumos, ajustes y consultas del libro de inventario (protegido).
type InventoryHandler struct {
	intake        *inventory.IntakeUseCase
	queries       *inventory.QueryUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(intake *inventory.IntakeUseCase, queries *inventory.QueryUseCase, replenishment *inventory.ReplenishmentUseCase) *InventoryHandler {
	return &InventoryHandler{intake: intake, queries: queries, replenishment: replenishment}
}

func movementError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "insumo no encontrado"})
	case errors.Is(err, domain.ErrNegativeStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "conflicto de concurrencia, reintente"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// RegisterConsumption godoc
// @Summary      Registrar consumo de un insumo
// @Description  Descuenta stock por venta, merma, daño o vencimiento. El motivo
//
//	queda como anotación de auditoría en el asiento.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterConsumptionRequest  true  "item_id, quantity, reason, unit_cost opcional"
// @Success      201   {object}  dto.ItemSnapshotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/consumptions [post]
func (h *InventoryHandler) RegisterConsumption(c *fiber.Ctx) error {
	var in dto.RegisterConsumptionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	snap, err := h.intake.RegisterConsumption(c.Context(), inventory.ConsumptionInput{
		ItemID:    in.ItemID,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		UnitCost:  in.UnitCost,
		TotalCost: in.TotalCost,
		Note:      in.Note,
		ActorID:   GetUserID(c),
	})
	if err != nil {
		return movementError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSnapshotDTO(snap))
}

// RegisterAdjustment godoc
// @Summary      Registrar ajuste manual de stock
// @Description  ADD suma, SUBTRACT resta y SET fija el stock en un valor. Con
//
//	stock_take=true el asiento se marca como corrección por conteo físico.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterAdjustmentRequest  true  "item_id, mode, quantity"
// @Success      201   {object}  dto.ItemSnapshotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/adjustments [post]
func (h *InventoryHandler) RegisterAdjustment(c *fiber.Ctx) error {
	var in dto.RegisterAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	snap, err := h.intake.RegisterAdjustment(c.Context(), inventory.AdjustmentInput{
		ItemID:    in.ItemID,
		Mode:      in.Mode,
		Quantity:  in.Quantity,
		StockTake: in.StockTake,
		Note:      in.Note,
		ActorID:   GetUserID(c),
	})
	if err != nil {
		return movementError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toSnapshotDTO(snap))
}

// GetTransactionHistory godoc
// @Summary      Historial de movimientos de un insumo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id     path   string  true   "ID del insumo"
// @Param        limit  query  int     false  "Máximo de asientos (default 50, tope 500)"
// @Success      200  {array}   dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/transactions [get]
func (h *InventoryHandler) GetTransactionHistory(c *fiber.Ctx) error {
	itemID := c.Params("id")
	limit := c.QueryInt("limit")
	history, err := h.queries.GetTransactionHistory(c.Context(), itemID, limit)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "insumo no encontrado"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(history), "transactions": history})
}

// ListLowStock godoc
// @Summary      Insumos en o por debajo del stock mínimo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ItemSnapshotResponse
// @Router       /api/inventory/low-stock [get]
func (h *InventoryHandler) ListLowStock(c *fiber.Ctx) error {
	items, err := h.queries.ListLowStock(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(items), "items": items})
}

// GetMovementSummary godoc
// @Summary      Resumen de movimientos por tipo y motivo
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Asientos recientes a agregar (default 500)"
// @Success      200  {array}  dto.MovementSummaryDTO
// @Router       /api/inventory/summary [get]
func (h *InventoryHandler) GetMovementSummary(c *fiber.Ctx) error {
	limit := c.QueryInt("limit")
	summary, err := h.queries.GetMovementSummary(c.Context(), limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(summary), "summary": summary})
}

// GetReplenishmentList godoc
// @Summary      Lista de reposición sugerida
// @Description  Insumos bajo mínimo con cantidad sugerida para volver al stock
//
//	objetivo, ordenados por urgencia.
//
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ReplenishmentSuggestionDTO
// @Router       /api/inventory/replenishment-list [get]
func (h *InventoryHandler) GetReplenishmentList(c *fiber.Ctx) error {
	list, err := h.replenishment.GenerateReplenishmentList(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"total": len(list), "replenishments": list})
}
