package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Restobar-api/internal/domain"
	"github.com/jhoicas/Restobar-api/internal/domain/entity"
	"github.com/jhoicas/Restobar-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación del puerto PurchaseOrderRepository sobre PostgreSQL.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepo construye el adaptador de persistencia de órdenes de compra.
func NewPurchaseOrderRepo(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

const orderColumns = `id, order_number, supplier_id, status, notes,
		expected_date, received_date, created_by, created_at, updated_at`

func scanOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var o entity.PurchaseOrder
	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.SupplierID, &o.Status, &o.Notes,
		&o.ExpectedDate, &o.ReceivedDate, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// NextOrderNumber reserva el siguiente consecutivo de la secuencia dedicada.
// nextval nunca retrocede ni colisiona bajo concurrencia; puede dejar huecos
// si la transacción que lo reservó hace rollback.
func (r *PurchaseOrderRepo) NextOrderNumber() (string, error) {
	var n int64
	err := r.q.QueryRow(context.Background(), `SELECT nextval('purchase_order_seq')`).Scan(&n)
	if err != nil {
		return "", fmt.Errorf("reservar consecutivo de orden: %w", err)
	}
	return fmt.Sprintf("OC-%06d", n), nil
}

// Create persiste la cabecera y las líneas de la orden.
func (r *PurchaseOrderRepo) Create(order *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (id, order_number, supplier_id, status, notes,
			expected_date, received_date, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		order.ID, order.OrderNumber, order.SupplierID, order.Status, order.Notes,
		order.ExpectedDate, order.ReceivedDate, order.CreatedBy, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert orden: %w", err)
	}
	return r.insertItems(order.ID, order.Items)
}

func (r *PurchaseOrderRepo) insertItems(orderID string, items []entity.PurchaseOrderItem) error {
	query := `
		INSERT INTO purchase_order_items (id, purchase_order_id, item_id, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5)`
	for _, it := range items {
		_, err := r.q.Exec(context.Background(), query,
			it.ID, orderID, it.ItemID, it.Quantity, it.UnitPrice,
		)
		if err != nil {
			return fmt.Errorf("insert línea de orden: %w", err)
		}
	}
	return nil
}

func (r *PurchaseOrderRepo) loadItems(orderID string) ([]entity.PurchaseOrderItem, error) {
	query := `
		SELECT id, purchase_order_id, item_id, quantity, unit_price
		FROM purchase_order_items WHERE purchase_order_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, orderID)
	if err != nil {
		return nil, fmt.Errorf("list líneas de orden: %w", err)
	}
	defer rows.Close()

	var items []entity.PurchaseOrderItem
	for rows.Next() {
		var it entity.PurchaseOrderItem
		if err := rows.Scan(&it.ID, &it.PurchaseOrderID, &it.ItemID, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan línea de orden: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// GetByID obtiene una orden con sus líneas.
func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE id = $1`
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get orden: %w", err)
	}
	if o.Items, err = r.loadItems(o.ID); err != nil {
		return nil, err
	}
	return o, nil
}

// GetByIDForUpdate obtiene la orden bloqueando la cabecera hasta el fin de la
// transacción, para serializar completar/cancelar/editar sobre la misma orden.
func (r *PurchaseOrderRepo) GetByIDForUpdate(id string) (*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders WHERE id = $1 FOR UPDATE`
	o, err := scanOrder(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get orden for update: %w", err)
	}
	if o.Items, err = r.loadItems(o.ID); err != nil {
		return nil, err
	}
	return o, nil
}

// UpdateDraft reescribe cabecera y líneas de una orden en borrador. La
// condición de estado en el UPDATE es la última defensa: si la orden dejó de
// ser DRAFT no toca nada y devuelve ErrInvalidState. El caso de uso ya verificó
// la existencia bajo bloqueo de fila.
func (r *PurchaseOrderRepo) UpdateDraft(order *entity.PurchaseOrder) error {
	query := `
		UPDATE purchase_orders
		SET supplier_id = $2, notes = $3, expected_date = $4, updated_at = $5
		WHERE id = $1 AND status = 'DRAFT'`
	cmd, err := r.q.Exec(context.Background(), query,
		order.ID, order.SupplierID, order.Notes, order.ExpectedDate, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update orden: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrInvalidState
	}
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM purchase_order_items WHERE purchase_order_id = $1`, order.ID,
	); err != nil {
		return fmt.Errorf("limpiar líneas de orden: %w", err)
	}
	return r.insertItems(order.ID, order.Items)
}

// UpdateStatus cambia el estado de la orden y, si aplica, estampa la fecha de
// recepción. COMPLETED es terminal: el UPDATE nunca lo sobreescribe. El caso de
// uso ya verificó la existencia bajo bloqueo de fila, así que cero filas
// afectadas significa estado terminal, no orden inexistente.
func (r *PurchaseOrderRepo) UpdateStatus(orderID, status string, receivedDate *time.Time) error {
	query := `
		UPDATE purchase_orders
		SET status = $2, received_date = COALESCE($3, received_date), updated_at = now()
		WHERE id = $1 AND status <> 'COMPLETED'`
	cmd, err := r.q.Exec(context.Background(), query, orderID, status, receivedDate)
	if err != nil {
		return fmt.Errorf("update estado de orden: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrInvalidState
	}
	return nil
}

// List devuelve órdenes con sus líneas, opcionalmente filtradas por estado.
func (r *PurchaseOrderRepo) List(status string, limit, offset int) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM purchase_orders
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list órdenes: %w", err)
	}
	defer rows.Close()

	var orders []*entity.PurchaseOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan orden: %w", err)
		}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, o := range orders {
		if o.Items, err = r.loadItems(o.ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}
