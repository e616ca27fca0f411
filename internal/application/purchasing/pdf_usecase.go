package purchasing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Restobar-api/internal/domain"
	"github.com/jhoicas/Restobar-api/internal/domain/entity"
	"github.com/jhoicas/Restobar-api/internal/domain/repository"
)

// OrderLineForPDF línea de orden enriquecida con los datos del insumo.
type OrderLineForPDF struct {
	ItemName  string
	SKU       string
	Unit      string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
}

// OrderPDFGenerator puerto del generador de documentos (infraestructura).
type OrderPDFGenerator interface {
	GenerateOrderPDF(ctx context.Context, order *entity.PurchaseOrder, supplier *entity.Supplier, lines []OrderLineForPDF) ([]byte, error)
}

// PDFUseCase genera el documento PDF de una orden de compra para enviar al
// proveedor o archivar con la recepción.
type PDFUseCase struct {
	orderRepo    repository.PurchaseOrderRepository
	supplierRepo repository.SupplierRepository
	itemRepo     repository.ItemRepository
	generator    OrderPDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(
	orderRepo repository.PurchaseOrderRepository,
	supplierRepo repository.SupplierRepository,
	itemRepo repository.ItemRepository,
	generator OrderPDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		orderRepo:    orderRepo,
		supplierRepo: supplierRepo,
		itemRepo:     itemRepo,
		generator:    generator,
	}
}

// GenerateOrderPDF arma las líneas con nombre/SKU/unidad de cada insumo y
// delega el render al generador. Devuelve los bytes y el nombre sugerido.
func (uc *PDFUseCase) GenerateOrderPDF(ctx context.Context, orderID string) ([]byte, string, error) {
	order, err := uc.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, "", err
	}
	if order == nil {
		return nil, "", domain.ErrNotFound
	}

	var supplier *entity.Supplier
	if order.SupplierID != "" {
		supplier, err = uc.supplierRepo.GetByID(order.SupplierID)
		if err != nil {
			return nil, "", err
		}
	}

	lines := make([]OrderLineForPDF, 0, len(order.Items))
	for _, it := range order.Items {
		line := OrderLineForPDF{
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal(),
		}
		item, err := uc.itemRepo.GetByID(it.ItemID)
		if err != nil {
			return nil, "", err
		}
		if item != nil {
			line.ItemName = item.Name
			line.SKU = item.SKU
			line.Unit = item.Unit
		}
		lines = append(lines, line)
	}

	pdfBytes, err := uc.generator.GenerateOrderPDF(ctx, order, supplier, lines)
	if err != nil {
		return nil, "", err
	}
	filename := fmt.Sprintf("orden-%s.pdf", order.OrderNumber)
	return pdfBytes, filename, nil
}
