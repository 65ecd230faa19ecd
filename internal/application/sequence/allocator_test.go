package sequence_test

import (
	"context"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Pedidos-api/internal/application/sequence"
	"github.com/jhoicas/Pedidos-api/internal/domain"
	"github.com/jhoicas/Pedidos-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes mínimos: contador en memoria y conjunto de números ya usados.
// ──────────────────────────────────────────────────────────────────────────────

type memCounters struct {
	seqs map[string]int64
}

func (c *memCounters) key(name, companyID string) string { return name + "|" + companyID }

func (c *memCounters) Increment(_ context.Context, name, companyID string) (int64, error) {
	c.seqs[c.key(name, companyID)]++
	return c.seqs[c.key(name, companyID)], nil
}

func (c *memCounters) Set(_ context.Context, name, companyID string, value int64) error {
	c.seqs[c.key(name, companyID)] = value
	return nil
}

func (c *memCounters) Raise(_ context.Context, name, companyID string, min int64) error {
	if c.seqs[c.key(name, companyID)] < min {
		c.seqs[c.key(name, companyID)] = min
	}
	return nil
}

// memOrders solo implementa lo que el asignador consulta.
type memOrders struct {
	numbers map[string]string // number -> orderID
}

func (m *memOrders) Create(context.Context, *entity.Order) error       { return nil }
func (m *memOrders) GetByID(context.Context, string) (*entity.Order, error) { return nil, nil }
func (m *memOrders) Update(context.Context, *entity.Order) error       { return nil }
func (m *memOrders) ListByCompany(context.Context, string, bool, int, int) ([]*entity.Order, error) {
	return nil, nil
}

func (m *memOrders) NumberExists(_ context.Context, _, _, number, excludeID string) (bool, error) {
	id, ok := m.numbers[number]
	if !ok {
		return false, nil
	}
	return id != excludeID, nil
}

func (m *memOrders) MaxNumber(_ context.Context, _, _ string) (int64, error) {
	var max int64
	for number := range m.numbers {
		n, err := strconv.ParseInt(number, 10, 64)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max, nil
}

func newAllocator() (*sequence.Allocator, *memCounters, *memOrders) {
	counters := &memCounters{seqs: make(map[string]int64)}
	ords := &memOrders{numbers: make(map[string]string)}
	return sequence.NewAllocator(counters, ords), counters, ords
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestFormat_DiezDigitosConCeros(t *testing.T) {
	assert.Equal(t, "0000000001", sequence.Format(1))
	assert.Equal(t, "0000000123", sequence.Format(123))
	assert.Equal(t, "1234567890", sequence.Format(1234567890))
}

func TestNext_InicializaEnUnoYAvanzaEstricto(t *testing.T) {
	alloc, _, ords := newAllocator()
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		number, err := alloc.Next(ctx, "invoice", "c1", "", "")
		require.NoError(t, err)
		assert.Equal(t, sequence.Format(int64(i)), number)
		ords.numbers[number] = "o" + strconv.Itoa(i)
	}
}

func TestNext_ContadoresIndependientesPorFamiliaYEmpresa(t *testing.T) {
	alloc, _, _ := newAllocator()
	ctx := context.Background()

	a, err := alloc.Next(ctx, "invoice", "c1", "", "")
	require.NoError(t, err)
	b, err := alloc.Next(ctx, "proforma", "c1", "", "")
	require.NoError(t, err)
	c, err := alloc.Next(ctx, "invoice", "c2", "", "")
	require.NoError(t, err)

	assert.Equal(t, "0000000001", a)
	assert.Equal(t, "0000000001", b)
	assert.Equal(t, "0000000001", c)
}

func TestNext_ColisionSanaAMaximoMasUno(t *testing.T) {
	alloc, counters, ords := newAllocator()
	ctx := context.Background()

	// Pedidos importados fuera de secuencia ocupan 1..5 y además el 40.
	for i := 1; i <= 5; i++ {
		ords.numbers[sequence.Format(int64(i))] = "imported"
	}
	ords.numbers[sequence.Format(40)] = "imported"

	// El contador está en cero: el incremento daría 1, que colisiona.
	number, err := alloc.Next(ctx, "invoice", "c1", "", "")
	require.NoError(t, err)
	assert.Equal(t, sequence.Format(41), number, "la colisión salta a max+1")
	assert.Equal(t, int64(41), counters.seqs["invoice|c1"], "el contador queda sanado")

	ords.numbers[number] = "o1"
	next, err := alloc.Next(ctx, "invoice", "c1", "", "")
	require.NoError(t, err)
	assert.Equal(t, sequence.Format(42), next)
}

func TestNext_ExplicitoValidoElevaElContador(t *testing.T) {
	alloc, counters, ords := newAllocator()
	ctx := context.Background()

	number, err := alloc.Next(ctx, "invoice", "c1", "0000000100", "")
	require.NoError(t, err)
	assert.Equal(t, "0000000100", number)
	assert.Equal(t, int64(100), counters.seqs["invoice|c1"])

	// La asignación automática continúa después del manual.
	ords.numbers[number] = "o1"
	next, err := alloc.Next(ctx, "invoice", "c1", "", "")
	require.NoError(t, err)
	assert.Equal(t, "0000000101", next)
}

func TestNext_ExplicitoMenorNoBajaElContador(t *testing.T) {
	alloc, counters, _ := newAllocator()
	ctx := context.Background()

	_, err := alloc.Next(ctx, "invoice", "c1", "0000000100", "")
	require.NoError(t, err)

	_, err = alloc.Next(ctx, "invoice", "c1", "0000000007", "")
	require.NoError(t, err)
	assert.Equal(t, int64(100), counters.seqs["invoice|c1"], "Raise nunca retrocede")
}

func TestNext_ExplicitoDuplicado_Rechazado(t *testing.T) {
	alloc, _, ords := newAllocator()
	ctx := context.Background()
	ords.numbers["0000000007"] = "o1"

	_, err := alloc.Next(ctx, "invoice", "c1", "0000000007", "")

	var dne *domain.DuplicateNumberError
	require.ErrorAs(t, err, &dne)
	assert.Equal(t, "0000000007", dne.Number)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestNext_ExplicitoDelMismoPedidoEnEdicion_Permitido(t *testing.T) {
	alloc, _, ords := newAllocator()
	ctx := context.Background()
	ords.numbers["0000000007"] = "o1"

	number, err := alloc.Next(ctx, "invoice", "c1", "0000000007", "o1")
	require.NoError(t, err)
	assert.Equal(t, "0000000007", number)
}

func TestNext_ExplicitoNoNumerico_Rechazado(t *testing.T) {
	alloc, _, _ := newAllocator()
	_, err := alloc.Next(context.Background(), "invoice", "c1", "ABC-123", "")

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, 400, ve.Status)
	assert.Equal(t, "number", ve.Property)
}

func TestFamilyFor_CreditoComparteFacturas(t *testing.T) {
	assert.Equal(t, "invoice", sequence.FamilyFor(entity.DocumentCredit))
	assert.Equal(t, "invoice", sequence.FamilyFor(entity.DocumentInvoice))
	assert.Equal(t, "proforma", sequence.FamilyFor(entity.DocumentProforma))
	assert.Equal(t, "stokova", sequence.FamilyFor(entity.DocumentStokova))
}
