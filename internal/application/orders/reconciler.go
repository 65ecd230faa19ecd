package orders

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/stock"
)

// Direction sentido del efecto sobre stock.
type Direction int

const (
	Debit  Direction = iota // venta normal: descuenta existencia
	Credit                  // nota crédito o reverso de una edición: devuelve existencia
)

// Inverse devuelve el sentido contrario (la mitad "deshacer" de una edición).
func (d Direction) Inverse() Direction {
	if d == Debit {
		return Credit
	}
	return Debit
}

// DirectionFor sentido hacia adelante según el tipo de documento.
func DirectionFor(documentType string) Direction {
	if documentType == entity.DocumentCredit {
		return Credit
	}
	return Debit
}

// Reconcile aplica el efecto de las líneas sobre las copias de trabajo de los
// productos y devuelve el total del documento redondeado a 2 decimales.
//
// No persiste nada: las copias mutadas quedan en el WorkingSet y el caller
// decide si las escribe (o las descarta si un paso posterior falla). Las
// líneas libres nunca tocan stock, solo aportan al total. En débito, una
// existencia que quedaría negativa rechaza la operación completa con
// *domain.InsufficientStockError.
func Reconcile(ctx context.Context, dir Direction, orderType string, lines []entity.OrderLine, ws *WorkingSet) (decimal.Decimal, error) {
	total := decimal.Zero
	for i := range lines {
		line := &lines[i]
		total = total.Add(line.LineTotal())
		if !line.IsProduct() {
			continue
		}
		product, err := ws.Get(ctx, line.ProductID)
		if err != nil {
			return decimal.Zero, err
		}
		if err := applyLine(dir, orderType, line, product); err != nil {
			return decimal.Zero, err
		}
	}
	return total.Round(2), nil
}

// FormatTotal representación persistida del total: string con 2 decimales.
func FormatTotal(total decimal.Decimal) string {
	return total.StringFixed(2)
}

func applyLine(dir Direction, orderType string, line *entity.OrderLine, p *entity.Product) error {
	if orderType == entity.OrderWholesale {
		if p.HasSizes() {
			return applyWholesaleVariable(dir, line, p)
		}
		return applySimple(dir, line, p)
	}
	if p.HasSizes() {
		return applyRetailVariable(dir, line, p)
	}
	return applySimple(dir, line, p)
}

// applyWholesaleVariable descuenta (o devuelve) cantidad × multiplicador en
// cada talla seleccionada. Una línea sin tallas seleccionadas sobre un
// producto variable toca todas las tallas actuales: cubre líneas creadas
// antes de que el producto tuviera tallas y la distribución de una
// devolución cuya venta original fue simple.
func applyWholesaleVariable(dir Direction, line *entity.OrderLine, p *entity.Product) error {
	multiplier := line.Multiplier
	if multiplier < 1 {
		multiplier = p.PackMultiplier()
	}
	delta := line.Quantity * multiplier

	names := line.SelectedSizes
	if len(names) == 0 {
		names = allSizeNames(p)
	}
	for _, name := range names {
		size := p.SizeByName(name)
		if size == nil {
			return &domain.InsufficientStockError{
				ProductID:   p.ID,
				ProductCode: p.Code,
				Size:        name,
				Requested:   delta,
				Available:   0,
			}
		}
		if err := adjustSize(dir, size, delta, p); err != nil {
			return err
		}
	}
	stock.Refresh(p)
	return nil
}

// applyRetailVariable descuenta (o devuelve) la cantidad en la talla única de
// la línea. Sin talla, la cantidad se distribuye sobre todas las tallas
// actuales (venta original simple, producto ahora variable).
func applyRetailVariable(dir Direction, line *entity.OrderLine, p *entity.Product) error {
	if line.Size != "" {
		size := p.SizeByName(line.Size)
		if size == nil {
			return &domain.InsufficientStockError{
				ProductID:   p.ID,
				ProductCode: p.Code,
				Size:        line.Size,
				Requested:   line.Quantity,
				Available:   0,
			}
		}
		if err := adjustSize(dir, size, line.Quantity, p); err != nil {
			return err
		}
	} else {
		for i := range p.Sizes {
			if err := adjustSize(dir, &p.Sizes[i], line.Quantity, p); err != nil {
				return err
			}
		}
	}
	stock.Refresh(p)
	return nil
}

func applySimple(dir Direction, line *entity.OrderLine, p *entity.Product) error {
	if dir == Debit {
		if p.Quantity < line.Quantity {
			return &domain.InsufficientStockError{
				ProductID:   p.ID,
				ProductCode: p.Code,
				Requested:   line.Quantity,
				Available:   p.Quantity,
			}
		}
		p.Quantity -= line.Quantity
	} else {
		p.Quantity += line.Quantity
	}
	stock.Refresh(p)
	return nil
}

func adjustSize(dir Direction, size *entity.Size, delta int, p *entity.Product) error {
	if dir == Debit {
		if size.Quantity < delta {
			return &domain.InsufficientStockError{
				ProductID:   p.ID,
				ProductCode: p.Code,
				Size:        size.Name,
				Requested:   delta,
				Available:   size.Quantity,
			}
		}
		size.Quantity -= delta
		return nil
	}
	size.Quantity += delta
	return nil
}

func allSizeNames(p *entity.Product) []string {
	names := make([]string, len(p.Sizes))
	for i, s := range p.Sizes {
		names[i] = s.Name
	}
	return names
}
