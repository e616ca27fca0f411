package purchasing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restobar-api/internal/application/dto"
	appinv "github.com/jhoicas/Restobar-api/internal/application/inventory"
	"github.com/jhoicas/Restobar-api/internal/domain"
	"github.com/jhoicas/Restobar-api/internal/domain/entity"
	dominv "github.com/jhoicas/Restobar-api/internal/domain/inventory"
	"github.com/jhoicas/Restobar-api/internal/domain/repository"
)

// UseCase ciclo de vida de órdenes de compra: DRAFT → COMPLETED | CANCELLED.
// La aritmética de stock se delega por completo al motor de movimientos; esta
// capa solo es dueña de la máquina de estados y de la transacción que agrupa
// todas las líneas al completar.
type UseCase struct {
	txRunner     TxRunner
	engine       *appinv.Engine
	orderRepo    repository.PurchaseOrderRepository
	itemRepo     repository.ItemRepository
	supplierRepo repository.SupplierRepository
}

// NewUseCase construye el caso de uso de compras.
func NewUseCase(
	txRunner TxRunner,
	engine *appinv.Engine,
	orderRepo repository.PurchaseOrderRepository,
	itemRepo repository.ItemRepository,
	supplierRepo repository.SupplierRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		engine:       engine,
		orderRepo:    orderRepo,
		itemRepo:     itemRepo,
		supplierRepo: supplierRepo,
	}
}

// CreateOrder crea una orden en estado DRAFT. El consecutivo sale de la
// secuencia dedicada de la BD. Una orden DRAFT nunca toca stock.
func (uc *UseCase) CreateOrder(ctx context.Context, actorID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	items, err := uc.validateLines(in.Items)
	if err != nil {
		return nil, err
	}
	if in.SupplierID != "" {
		supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
		if err != nil {
			return nil, err
		}
		if supplier == nil {
			return nil, domain.ErrNotFound
		}
	}

	number, err := uc.orderRepo.NextOrderNumber()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	order := &entity.PurchaseOrder{
		ID:           uuid.New().String(),
		OrderNumber:  number,
		SupplierID:   in.SupplierID,
		Status:       entity.OrderStatusDraft,
		Notes:        in.Notes,
		ExpectedDate: in.ExpectedDate,
		CreatedBy:    actorID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, line := range items {
		line.PurchaseOrderID = order.ID
		order.Items = append(order.Items, line)
	}
	if err := uc.orderRepo.Create(order); err != nil {
		return nil, err
	}
	return toOrderResponse(order), nil
}

// UpdateOrder edita una orden DRAFT (proveedor, notas, fechas y líneas).
// Cualquier otro estado es rechazado con ErrInvalidState. El chequeo de estado
// y la reescritura comparten la transacción que bloquea la cabecera: una
// edición nunca puede pisar las líneas de una orden que otra transacción
// acaba de completar.
func (uc *UseCase) UpdateOrder(ctx context.Context, id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	// Validaciones de solo lectura, fuera de la transacción.
	var newItems []entity.PurchaseOrderItem
	if in.Items != nil {
		items, err := uc.validateLines(in.Items)
		if err != nil {
			return nil, err
		}
		newItems = items
	}
	if in.SupplierID != nil && *in.SupplierID != "" {
		supplier, err := uc.supplierRepo.GetByID(*in.SupplierID)
		if err != nil {
			return nil, err
		}
		if supplier == nil {
			return nil, domain.ErrNotFound
		}
	}

	var updated *entity.PurchaseOrder
	err := uc.txRunner.RunPurchasing(ctx, func(
		_ repository.ItemRepository,
		_ repository.TransactionRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error {
		order, err := orderRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !order.IsDraft() {
			return domain.ErrInvalidState
		}

		if in.SupplierID != nil {
			order.SupplierID = *in.SupplierID
		}
		if in.Notes != nil {
			order.Notes = *in.Notes
		}
		if in.ExpectedDate != nil {
			order.ExpectedDate = in.ExpectedDate
		}
		if in.Items != nil {
			order.Items = order.Items[:0]
			for _, line := range newItems {
				line.PurchaseOrderID = order.ID
				order.Items = append(order.Items, line)
			}
		}
		order.UpdatedAt = time.Now()

		if err := orderRepo.UpdateDraft(order); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(updated), nil
}

// CompleteOrder transición DRAFT → COMPLETED. Por cada línea registra una
// entrada PURCHASE en el motor (costo = precio de línea, total = precio × cant)
// referenciando la orden; el cambio de estado y la fecha de recepción se
// confirman en la MISMA transacción que todos los asientos — si una línea
// falla, nada queda aplicado.
func (uc *UseCase) CompleteOrder(ctx context.Context, id, actorID string, receivedDate *time.Time) (*dto.OrderResponse, error) {
	now := time.Now()
	received := now
	if receivedDate != nil {
		received = *receivedDate
	}

	var completed *entity.PurchaseOrder
	err := uc.txRunner.RunPurchasing(ctx, func(
		itemRepo repository.ItemRepository,
		trxRepo repository.TransactionRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error {
		order, err := orderRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !order.IsDraft() {
			return domain.ErrInvalidState
		}
		if len(order.Items) == 0 {
			return domain.ErrInvalidInput
		}

		for _, line := range order.Items {
			_, err := uc.engine.ApplyMovementInTx(itemRepo, trxRepo, appinv.ApplyMovementInput{
				ItemID: line.ItemID,
				Movement: dominv.Receive{
					Qty:             line.Quantity,
					UnitCost:        line.UnitPrice,
					TotalCost:       line.Quantity.Mul(line.UnitPrice),
					PurchaseOrderID: order.ID,
					OrderNumber:     order.OrderNumber,
				},
				Note:    "orden de compra " + order.OrderNumber,
				ActorID: actorID,
			}, now)
			if err != nil {
				return err
			}
		}

		if err := orderRepo.UpdateStatus(order.ID, entity.OrderStatusCompleted, &received); err != nil {
			return err
		}
		order.Status = entity.OrderStatusCompleted
		order.ReceivedDate = &received
		order.UpdatedAt = now
		completed = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(completed), nil
}

// CancelOrder transición a CANCELLED desde cualquier estado no COMPLETED.
// Lee la cabecera con bloqueo en la misma transacción que el cambio de estado:
// un cancel que corre contra una finalización espera el lock y encuentra la
// orden ya COMPLETED, nunca la sobreescribe. Nunca revierte stock: una orden
// DRAFT jamás lo tocó.
func (uc *UseCase) CancelOrder(ctx context.Context, id string) (*dto.OrderResponse, error) {
	var cancelled *entity.PurchaseOrder
	err := uc.txRunner.RunPurchasing(ctx, func(
		_ repository.ItemRepository,
		_ repository.TransactionRepository,
		orderRepo repository.PurchaseOrderRepository,
	) error {
		order, err := orderRepo.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if order.Status == entity.OrderStatusCompleted {
			return domain.ErrInvalidState
		}
		if err := orderRepo.UpdateStatus(order.ID, entity.OrderStatusCancelled, nil); err != nil {
			return err
		}
		order.Status = entity.OrderStatusCancelled
		order.UpdatedAt = time.Now()
		cancelled = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toOrderResponse(cancelled), nil
}

// GetOrder obtiene una orden por ID.
func (uc *UseCase) GetOrder(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	return toOrderResponse(order), nil
}

// ListOrders lista órdenes, opcionalmente filtradas por estado.
func (uc *UseCase) ListOrders(ctx context.Context, status string, limit, offset int) (*dto.OrderListResponse, error) {
	switch status {
	case "", entity.OrderStatusDraft, entity.OrderStatusCompleted, entity.OrderStatusCancelled:
	default:
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.orderRepo.List(status, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		items = append(items, *toOrderResponse(o))
	}
	return &dto.OrderListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// validateLines valida y materializa las líneas de una orden.
func (uc *UseCase) validateLines(lines []dto.OrderItemRequest) ([]entity.PurchaseOrderItem, error) {
	if len(lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	out := make([]entity.PurchaseOrderItem, 0, len(lines))
	for _, line := range lines {
		if line.ItemID == "" || !line.Quantity.GreaterThan(decimal.Zero) || line.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		item, err := uc.itemRepo.GetByID(line.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrNotFound
		}
		out = append(out, entity.PurchaseOrderItem{
			ID:        uuid.New().String(),
			ItemID:    line.ItemID,
			Quantity:  line.Quantity,
			UnitPrice: line.UnitPrice,
		})
	}
	return out, nil
}

func toOrderResponse(o *entity.PurchaseOrder) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	items := make([]dto.OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, dto.OrderItemResponse{
			ID:        it.ID,
			ItemID:    it.ItemID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal(),
		})
	}
	return &dto.OrderResponse{
		ID:           o.ID,
		OrderNumber:  o.OrderNumber,
		SupplierID:   o.SupplierID,
		Status:       o.Status,
		Notes:        o.Notes,
		ExpectedDate: o.ExpectedDate,
		ReceivedDate: o.ReceivedDate,
		Items:        items,
		Total:        o.Total(),
		CreatedBy:    o.CreatedBy,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
}
