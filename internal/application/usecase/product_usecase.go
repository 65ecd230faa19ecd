package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
	"github.com/jhoicas/Pedidos-api/internal/domain/stock"
)

// ProductUseCase CRUD de productos. Los campos de existencia se inicializan
// aquí pero a partir de entonces solo los muta el motor de pedidos.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto. Los campos derivados (paquetes, agotado, abiertos)
// se calculan de las tallas si las hay.
func (uc *ProductUseCase) Create(ctx context.Context, companyID string, in dto.SaveProductRequest) (*dto.ProductResponse, error) {
	if in.Code == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Multiplier < 1 {
		in.Multiplier = 1
	}
	now := time.Now()
	product := &entity.Product{
		ID:             uuid.New().String(),
		CompanyID:      companyID,
		Code:           in.Code,
		Barcode:        in.Barcode,
		Name:           in.Name,
		Quantity:       in.Quantity,
		Multiplier:     in.Multiplier,
		Sizes:          sizesFromDTO(in.Sizes),
		WholesalePrice: in.WholesalePrice,
		RetailPrice:    in.RetailPrice,
		DeliveryPrice:  in.DeliveryPrice,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	stock.Refresh(product)
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto de la empresa.
func (uc *ProductUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.Deleted {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return toProductResponse(product), nil
}

// Update actualiza los campos CRUD; existencias y derivados quedan como
// estaban salvo que cambien tallas o multiplicador.
func (uc *ProductUseCase) Update(ctx context.Context, companyID, id string, in dto.SaveProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.Deleted {
		return nil, domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if in.Multiplier < 1 {
		in.Multiplier = 1
	}
	product.Code = in.Code
	product.Barcode = in.Barcode
	product.Name = in.Name
	product.Multiplier = in.Multiplier
	if in.Sizes != nil {
		product.Sizes = sizesFromDTO(in.Sizes)
	} else {
		product.Quantity = in.Quantity
	}
	product.WholesalePrice = in.WholesalePrice
	product.RetailPrice = in.RetailPrice
	product.DeliveryPrice = in.DeliveryPrice
	product.UpdatedAt = time.Now()
	stock.Refresh(product)
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos de la empresa con paginación.
func (uc *ProductUseCase) List(ctx context.Context, companyID string, limit, offset int) ([]*dto.ProductResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.repo.ListByCompany(ctx, companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out, nil
}

func sizesFromDTO(in []dto.SizeDTO) []entity.Size {
	if len(in) == 0 {
		return nil
	}
	out := make([]entity.Size, len(in))
	for i, s := range in {
		out[i] = entity.Size{Name: s.Name, Quantity: s.Quantity}
	}
	return out
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	var sizes []dto.SizeDTO
	for _, s := range p.Sizes {
		sizes = append(sizes, dto.SizeDTO{Name: s.Name, Quantity: s.Quantity})
	}
	return &dto.ProductResponse{
		ID:             p.ID,
		CompanyID:      p.CompanyID,
		Code:           p.Code,
		Barcode:        p.Barcode,
		Name:           p.Name,
		Quantity:       p.Quantity,
		Multiplier:     p.Multiplier,
		Sizes:          sizes,
		OutOfStock:     p.OutOfStock,
		OpenedPackages: p.OpenedPackages,
		WholesalePrice: p.WholesalePrice.StringFixed(2),
		RetailPrice:    p.RetailPrice.StringFixed(2),
		DeliveryPrice:  p.DeliveryPrice.StringFixed(2),
	}
}
