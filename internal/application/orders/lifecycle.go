package orders

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Pedidos-api/internal/application/dto"
	"github.com/jhoicas/Pedidos-api/internal/application/sequence"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
	"github.com/jhoicas/Pedidos-api/internal/domain/repository"
	"github.com/jhoicas/Pedidos-api/pkg/logger"
)

// Lifecycle orquesta crear/editar/anular/restaurar pedidos: reconcilia stock,
// asigna consecutivos y persiste pedido y productos en una sola transacción.
type Lifecycle struct {
	txRunner  TxRunner
	validator *Validator
	customers repository.CustomerRepository
	companies repository.CompanyRepository
	orders    repository.OrderRepository
	notifier  StockNotifier
	log       *logger.Logger
}

// NewLifecycle construye el orquestador.
func NewLifecycle(
	txRunner TxRunner,
	validator *Validator,
	customers repository.CustomerRepository,
	companies repository.CompanyRepository,
	orders repository.OrderRepository,
	notifier StockNotifier,
	log *logger.Logger,
) *Lifecycle {
	return &Lifecycle{
		txRunner:  txRunner,
		validator: validator,
		customers: customers,
		companies: companies,
		orders:    orders,
		notifier:  notifier,
		log:       log,
	}
}

// Create valida, reconcilia el stock de todas las líneas, asigna el
// consecutivo y persiste pedido y productos. Con stock insuficiente la
// operación aborta antes de cualquier escritura.
func (l *Lifecycle) Create(ctx context.Context, companyID, userID string, in dto.SaveOrderRequest) (*dto.OrderResponse, error) {
	if ve := l.validator.ValidateOrder(ctx, companyID, &in); ve != nil {
		return nil, ve
	}
	lines := linesFromRequest(in.Lines)
	combined := CombineProductRows(lines)
	now := time.Now()

	order := &entity.Order{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		CustomerID:   in.CustomerID,
		UserID:       userID,
		Date:         in.Date,
		DocumentType: in.DocumentType,
		OrderType:    in.OrderType,
		Lines:        lines,
		PaymentType:  in.PaymentType,
		PaidAmount:   in.PaidAmount,
		Receiver:     in.Receiver,
		Sender:       in.Sender,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var changes []StockChange
	err := l.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
		seqRepo repository.SequenceRepository,
	) error {
		ws := NewWorkingSet(productRepo)
		total, err := Reconcile(ctx, DirectionFor(in.DocumentType), in.OrderType, combined, ws)
		if err != nil {
			return err
		}
		alloc := sequence.NewAllocator(seqRepo, orderRepo)
		number, err := alloc.Next(ctx, sequence.FamilyFor(in.DocumentType), companyID, in.Number, "")
		if err != nil {
			return err
		}
		order.Number = number
		order.Total = total
		order.Unpaid = in.PaidAmount.LessThan(total)
		order.PaidHistory = []entity.PaidEntry{{Date: now, Amount: in.PaidAmount}}

		if err := orderRepo.Create(ctx, order); err != nil {
			return err
		}
		if err := persistTouched(ctx, productRepo, ws); err != nil {
			return err
		}
		changes = ws.Changes()
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.afterCommit(ctx, order, changes)
	return toOrderResponse(order), nil
}

// Update edita un pedido con el protocolo revertir-y-reaplicar: primero
// deshace el efecto de las líneas originales (sentido inverso al original)
// sobre el snapshot en memoria y luego aplica las líneas nuevas encima.
// Solo si ambos pasos reconciliaron se persiste algo.
func (l *Lifecycle) Update(ctx context.Context, companyID, userID, id string, in dto.SaveOrderRequest) (*dto.OrderResponse, error) {
	existing, err := l.loadOwned(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if existing.Deleted {
		return nil, domain.ErrOrderDeleted
	}
	if ve := l.validator.ValidateOrder(ctx, companyID, &in); ve != nil {
		return nil, ve
	}
	newLines := linesFromRequest(in.Lines)
	now := time.Now()

	var changes []StockChange
	err = l.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
		seqRepo repository.SequenceRepository,
	) error {
		ws := NewWorkingSet(productRepo)
		// Revertir: las líneas ORIGINALES con el sentido inverso al original,
		// como si la venta original nunca hubiera ocurrido.
		origDir := DirectionFor(existing.DocumentType).Inverse()
		if _, err := Reconcile(ctx, origDir, existing.OrderType, CombineProductRows(existing.Lines), ws); err != nil {
			return err
		}
		// Reaplicar: las líneas nuevas en sentido normal, sobre el snapshot
		// ya revertido (mismo working set).
		total, err := Reconcile(ctx, DirectionFor(in.DocumentType), in.OrderType, CombineProductRows(newLines), ws)
		if err != nil {
			return err
		}

		if in.Number != "" && in.Number != existing.Number {
			alloc := sequence.NewAllocator(seqRepo, orderRepo)
			number, err := alloc.Next(ctx, sequence.FamilyFor(in.DocumentType), companyID, in.Number, existing.ID)
			if err != nil {
				return err
			}
			existing.Number = number
		}

		if !existing.PaidAmount.Equal(in.PaidAmount) {
			existing.PaidHistory = append(existing.PaidHistory, entity.PaidEntry{Date: now, Amount: in.PaidAmount})
		}
		existing.Date = in.Date
		existing.DocumentType = in.DocumentType
		existing.OrderType = in.OrderType
		existing.CustomerID = in.CustomerID
		existing.Lines = newLines
		existing.PaymentType = in.PaymentType
		existing.PaidAmount = in.PaidAmount
		existing.Total = total
		existing.Unpaid = in.PaidAmount.LessThan(total)
		existing.Receiver = in.Receiver
		existing.Sender = in.Sender
		existing.UpdatedAt = now

		if err := orderRepo.Update(ctx, existing); err != nil {
			return err
		}
		if err := persistTouched(ctx, productRepo, ws); err != nil {
			return err
		}
		changes = ws.Changes()
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.afterCommit(ctx, existing, changes)
	return toOrderResponse(existing), nil
}

// Delete anula lógicamente el pedido. Con returnQuantity devuelve la
// existencia (sentido inverso al del documento); sin él, el stock queda
// exactamente como estaba: es decisión explícita del caller, no un default.
func (l *Lifecycle) Delete(ctx context.Context, companyID, id string, returnQuantity bool) error {
	existing, err := l.loadOwned(ctx, companyID, id)
	if err != nil {
		return err
	}
	if existing.Deleted {
		return domain.ErrOrderDeleted
	}
	existing.Deleted = true
	existing.UpdatedAt = time.Now()

	if !returnQuantity {
		return l.orders.Update(ctx, existing)
	}

	var changes []StockChange
	err = l.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
		_ repository.SequenceRepository,
	) error {
		ws := NewWorkingSet(productRepo)
		dir := DirectionFor(existing.DocumentType).Inverse()
		if _, err := Reconcile(ctx, dir, existing.OrderType, CombineProductRows(existing.Lines), ws); err != nil {
			return err
		}
		if err := orderRepo.Update(ctx, existing); err != nil {
			return err
		}
		if err := persistTouched(ctx, productRepo, ws); err != nil {
			return err
		}
		changes = ws.Changes()
		return nil
	})
	if err != nil {
		return err
	}
	l.notifier.Publish(changes)
	return nil
}

// Restore reactiva un pedido anulado. Con returnQuantity vuelve a aplicar el
// efecto hacia adelante (puede fallar por stock insuficiente). El número se
// revalida: otro pedido activo pudo haberlo tomado mientras estaba anulado.
func (l *Lifecycle) Restore(ctx context.Context, companyID, id string, returnQuantity bool) error {
	existing, err := l.loadOwned(ctx, companyID, id)
	if err != nil {
		return err
	}
	if !existing.Deleted {
		return domain.ErrConflict
	}
	existing.Deleted = false
	existing.UpdatedAt = time.Now()
	family := sequence.FamilyFor(existing.DocumentType)

	var changes []StockChange
	err = l.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
		_ repository.SequenceRepository,
	) error {
		taken, err := orderRepo.NumberExists(ctx, companyID, family, existing.Number, existing.ID)
		if err != nil {
			return err
		}
		if taken {
			return &domain.DuplicateNumberError{CompanyID: companyID, Family: family, Number: existing.Number}
		}
		if returnQuantity {
			ws := NewWorkingSet(productRepo)
			dir := DirectionFor(existing.DocumentType)
			if _, err := Reconcile(ctx, dir, existing.OrderType, CombineProductRows(existing.Lines), ws); err != nil {
				return err
			}
			if err := persistTouched(ctx, productRepo, ws); err != nil {
				return err
			}
			changes = ws.Changes()
		}
		return orderRepo.Update(ctx, existing)
	})
	if err != nil {
		return err
	}
	if len(changes) > 0 {
		l.notifier.Publish(changes)
	}
	return nil
}

// MarkPaid salda el pedido: paidAmount = total, registra el abono en el
// historial y limpia unpaid. No toca stock.
func (l *Lifecycle) MarkPaid(ctx context.Context, companyID, id string) (*dto.OrderResponse, error) {
	existing, err := l.loadOwned(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	existing.PaidAmount = existing.Total
	existing.PaidHistory = append(existing.PaidHistory, entity.PaidEntry{Date: now, Amount: existing.Total})
	existing.Unpaid = false
	existing.UpdatedAt = now
	if err := l.orders.Update(ctx, existing); err != nil {
		return nil, err
	}
	return toOrderResponse(existing), nil
}

// Get obtiene un pedido de la empresa.
func (l *Lifecycle) Get(ctx context.Context, companyID, id string) (*dto.OrderResponse, error) {
	existing, err := l.loadOwned(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(existing), nil
}

// List lista pedidos de la empresa.
func (l *Lifecycle) List(ctx context.Context, companyID string, includeDeleted bool, limit, offset int) ([]*dto.OrderResponse, error) {
	list, err := l.orders.ListByCompany(ctx, companyID, includeDeleted, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toOrderResponse(o))
	}
	return out, nil
}

func (l *Lifecycle) loadOwned(ctx context.Context, companyID, id string) (*entity.Order, error) {
	existing, err := l.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil || existing.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	return existing, nil
}

// afterCommit efectos posteriores al commit: nombres de receptor/emisor
// recién vistos (append-if-absent, consistencia eventual) y la notificación
// al sincronizador externo. Ningún fallo aquí afecta la operación.
func (l *Lifecycle) afterCommit(ctx context.Context, order *entity.Order, changes []StockChange) {
	if customer, err := l.customers.GetByID(ctx, order.CustomerID); err == nil && customer != nil {
		if order.Receiver != "" && !customer.HasReceiver(order.Receiver) {
			customer.Receivers = append(customer.Receivers, order.Receiver)
			if err := l.customers.Update(ctx, customer); err != nil {
				l.log.Warn().Err(err).Str("customer_id", customer.ID).Msg("no se pudo registrar el receptor")
			}
		}
	}
	if company, err := l.companies.GetByID(ctx, order.CompanyID); err == nil && company != nil {
		if order.Sender != "" && !company.HasSender(order.Sender) {
			company.Senders = append(company.Senders, order.Sender)
			if err := l.companies.Update(ctx, company); err != nil {
				l.log.Warn().Err(err).Str("company_id", company.ID).Msg("no se pudo registrar el emisor")
			}
		}
	}
	if len(changes) > 0 {
		l.notifier.Publish(changes)
	}
}

func persistTouched(ctx context.Context, productRepo repository.ProductRepository, ws *WorkingSet) error {
	for _, p := range ws.Touched() {
		if err := productRepo.UpdateStock(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
