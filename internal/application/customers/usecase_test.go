package customers_test

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/customers"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// memCustomerStore repositorio de clientes en memoria con constraint único
// sobre code y un TxRunner que serializa las transacciones, como lo hace el
// bloqueo en PostgreSQL.
type memCustomerStore struct {
	mu        sync.Mutex
	txMu      sync.Mutex
	customers map[string]*entity.Customer
}

func newMemCustomerStore() *memCustomerStore {
	return &memCustomerStore{customers: make(map[string]*entity.Customer)}
}

func (s *memCustomerStore) RunCustomers(ctx context.Context, fn func(customerRepo repository.CustomerRepository) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(s)
}

func (s *memCustomerStore) Create(customer *entity.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.customers {
		if existing.Code == customer.Code {
			return domain.ErrCodeConflict
		}
	}
	cp := *customer
	s.customers[customer.ID] = &cp
	return nil
}

func (s *memCustomerStore) GetByID(id string) (*entity.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.customers[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (s *memCustomerStore) MaxCode(prefix string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	best, bestN := "", int64(-1)
	for _, c := range s.customers {
		if !strings.HasPrefix(c.Code, prefix) {
			continue
		}
		n, err := strconv.ParseInt(c.Code[len(prefix):], 10, 64)
		if err != nil {
			continue
		}
		if n > bestN {
			best, bestN = c.Code, n
		}
	}
	return best, nil
}

func (s *memCustomerStore) List(limit, offset int) ([]*entity.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*entity.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		cp := *c
		out = append(out, &cp)
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func TestCreate_AsignaPrimerConsecutivoKH(t *testing.T) {
	s := newMemCustomerStore()
	uc := customers.NewCustomerUseCase(s, s)

	resp, err := uc.Create(context.Background(), dto.CreateCustomerRequest{Name: "Ana", Phone: "300123"})
	require.NoError(t, err)
	assert.Equal(t, "KH001", resp.Code)
	assert.Equal(t, "Ana", resp.Name)

	resp2, err := uc.Create(context.Background(), dto.CreateCustomerRequest{Name: "Beto"})
	require.NoError(t, err)
	assert.Equal(t, "KH002", resp2.Code)
}

func TestCreate_NombreRequerido(t *testing.T) {
	s := newMemCustomerStore()
	uc := customers.NewCustomerUseCase(s, s)

	_, err := uc.Create(context.Background(), dto.CreateCustomerRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Cincuenta creaciones concurrentes: cada cliente recibe un código KH distinto
// con el formato de la serie.
func TestCreate_ConcurrenciaCodigosUnicos(t *testing.T) {
	const n = 50
	s := newMemCustomerStore()
	uc := customers.NewCustomerUseCase(s, s)

	var wg sync.WaitGroup
	codes := make(chan string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := uc.Create(context.Background(), dto.CreateCustomerRequest{
				Name: fmt.Sprintf("Cliente %d", i),
			})
			if err == nil {
				codes <- resp.Code
			}
		}(i)
	}
	wg.Wait()
	close(codes)

	pattern := regexp.MustCompile(`^KH\d{3,}$`)
	seen := make(map[string]bool)
	for code := range codes {
		assert.True(t, pattern.MatchString(code), "código fuera de formato: %s", code)
		assert.False(t, seen[code], "código repetido: %s", code)
		seen[code] = true
	}
	assert.Len(t, seen, n)
}

func TestGet_YList(t *testing.T) {
	s := newMemCustomerStore()
	uc := customers.NewCustomerUseCase(s, s)

	created, err := uc.Create(context.Background(), dto.CreateCustomerRequest{Name: "Ana"})
	require.NoError(t, err)

	got, err := uc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Code, got.Code)

	_, err = uc.Get(context.Background(), "fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	list, err := uc.List(context.Background(), 20, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
