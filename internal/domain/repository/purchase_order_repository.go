package repository

import (
	"time"

	"github.com/jhoicas/Restobar-api/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de persistencia de órdenes de compra.
type PurchaseOrderRepository interface {
	// NextOrderNumber reserva un consecutivo de la secuencia dedicada de la BD.
	// Es monótono y sin colisiones bajo concurrencia; puede tener huecos.
	NextOrderNumber() (string, error)
	Create(order *entity.PurchaseOrder) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	// GetByIDForUpdate bloquea la cabecera de la orden (SELECT FOR UPDATE).
	GetByIDForUpdate(id string) (*entity.PurchaseOrder, error)
	// UpdateDraft reescribe cabecera y líneas; si la orden dejó de ser DRAFT
	// no toca nada y devuelve ErrInvalidState.
	UpdateDraft(order *entity.PurchaseOrder) error
	// UpdateStatus cambia el estado y, si aplica, estampa ReceivedDate.
	// COMPLETED es terminal: intentar salir de él devuelve ErrInvalidState.
	UpdateStatus(orderID, status string, receivedDate *time.Time) error
	// List devuelve órdenes, opcionalmente filtradas por estado ("" = todas).
	List(status string, limit, offset int) ([]*entity.PurchaseOrder, error)
}
