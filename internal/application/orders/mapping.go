package orders

import (
	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// linesFromRequest convierte las líneas del request a la variante etiquetada:
// con ProductID es línea de producto, sin él es línea libre.
func linesFromRequest(in []dto.OrderLineRequest) []entity.OrderLine {
	out := make([]entity.OrderLine, 0, len(in))
	for _, r := range in {
		line := entity.OrderLine{
			Quantity:        r.Quantity,
			Price:           r.Price,
			DiscountPercent: r.DiscountPercent,
			UnitOfMeasure:   r.UnitOfMeasure,
		}
		if r.ProductID != "" {
			line.Kind = entity.LineProduct
			line.ProductID = r.ProductID
			line.SelectedSizes = r.SelectedSizes
			line.Size = r.Size
			line.Multiplier = r.Multiplier
		} else {
			line.Kind = entity.LineFreeform
			line.Name = r.Name
			line.QtyInPackage = r.QtyInPackage
		}
		out = append(out, line)
	}
	return out
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	lines := make([]dto.OrderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		lines = append(lines, dto.OrderLineResponse{
			Kind:            string(l.Kind),
			ProductID:       l.ProductID,
			Name:            l.Name,
			Quantity:        l.Quantity,
			Price:           l.Price.StringFixed(2),
			DiscountPercent: l.DiscountPercent.String(),
			UnitOfMeasure:   l.UnitOfMeasure,
			SelectedSizes:   l.SelectedSizes,
			Size:            l.Size,
			Multiplier:      l.Multiplier,
			QtyInPackage:    l.QtyInPackage,
		})
	}
	history := make([]dto.PaidEntryResponse, 0, len(o.PaidHistory))
	for _, e := range o.PaidHistory {
		history = append(history, dto.PaidEntryResponse{Date: e.Date, Amount: e.Amount.StringFixed(2)})
	}
	return &dto.OrderResponse{
		ID:           o.ID,
		CompanyID:    o.CompanyID,
		CustomerID:   o.CustomerID,
		UserID:       o.UserID,
		Number:       o.Number,
		Date:         o.Date,
		DocumentType: o.DocumentType,
		OrderType:    o.OrderType,
		Lines:        lines,
		PaymentType:  o.PaymentType,
		PaidAmount:   o.PaidAmount.StringFixed(2),
		PaidHistory:  history,
		Total:        FormatTotal(o.Total),
		Unpaid:       o.Unpaid,
		Deleted:      o.Deleted,
		Receiver:     o.Receiver,
		Sender:       o.Sender,
	}
}
