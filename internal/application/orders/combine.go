package orders

import (
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// CombineProductRows fusiona líneas que referencian el mismo producto con
// precio y descuento idénticos, sumando cantidades, de modo que cada triple
// (producto, precio, descuento) produce un único ajuste de stock por llamada.
// Líneas mayoristas fusionadas unen sus tallas seleccionadas; líneas
// minoristas de tallas distintas no se fusionan (tocarían otra existencia).
// Las líneas libres pasan intactas.
func CombineProductRows(lines []entity.OrderLine) []entity.OrderLine {
	out := make([]entity.OrderLine, 0, len(lines))
	index := make(map[string]int)

	for _, line := range lines {
		if !line.IsProduct() {
			out = append(out, line)
			continue
		}
		key := line.ProductID + "|" + line.Price.String() + "|" + line.DiscountPercent.String() + "|" + line.Size
		i, seen := index[key]
		if !seen {
			cp := line
			if line.SelectedSizes != nil {
				cp.SelectedSizes = append([]string(nil), line.SelectedSizes...)
			}
			index[key] = len(out)
			out = append(out, cp)
			continue
		}
		out[i].Quantity += line.Quantity
		out[i].SelectedSizes = unionSizes(out[i].SelectedSizes, line.SelectedSizes)
	}
	return out
}

func unionSizes(a, b []string) []string {
	for _, name := range b {
		found := false
		for _, have := range a {
			if have == name {
				found = true
				break
			}
		}
		if !found {
			a = append(a, name)
		}
	}
	return a
}
