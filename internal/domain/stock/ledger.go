package stock

import "github.com/jhoicas/Pedidos-api/internal/domain/entity"

// Reglas puras de existencias (servicio de dominio).
//
// Para un producto variable:
//   paquetes  = floor(min(tallas) / multiplicador)
//   agotado   = todas las tallas <= 0
//   abiertos  = las tallas no son todas iguales
// Para un producto simple:
//   agotado   = paquetes <= 0

// PackageQuantity deriva la cantidad de paquetes de las tallas.
// floor(min(tallas) / multiplicador); con mínimo negativo el resultado no baja de 0.
func PackageQuantity(sizes []entity.Size, multiplier int) int {
	if len(sizes) == 0 {
		return 0
	}
	if multiplier < 1 {
		multiplier = 1
	}
	min := sizes[0].Quantity
	for _, s := range sizes[1:] {
		if s.Quantity < min {
			min = s.Quantity
		}
	}
	if min <= 0 {
		return 0
	}
	return min / multiplier
}

// AllOut indica si todas las tallas están en cero o menos.
func AllOut(sizes []entity.Size) bool {
	for _, s := range sizes {
		if s.Quantity > 0 {
			return false
		}
	}
	return true
}

// Opened indica si hay paquetes abiertos: las tallas no son todas iguales.
func Opened(sizes []entity.Size) bool {
	if len(sizes) == 0 {
		return false
	}
	first := sizes[0].Quantity
	for _, s := range sizes[1:] {
		if s.Quantity != first {
			return true
		}
	}
	return false
}

// Refresh recalcula los campos derivados del producto tras mutar existencias.
func Refresh(p *entity.Product) {
	if p.HasSizes() {
		p.Quantity = PackageQuantity(p.Sizes, p.PackMultiplier())
		p.OutOfStock = AllOut(p.Sizes)
		p.OpenedPackages = Opened(p.Sizes)
		return
	}
	p.OutOfStock = p.Quantity <= 0
	p.OpenedPackages = false
}
