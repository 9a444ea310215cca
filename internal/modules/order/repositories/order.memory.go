package repositories

import (
	"context"
	"slices"
	"sync"

	"soins-suite-services/internal/modules/order/dto"
)

// MemoryOrderRepository stockage en mémoire (développement et tests)
type MemoryOrderRepository struct {
	mu     sync.RWMutex
	orders map[string]dto.Order
	// ordre d'insertion, pour des listes stables
	keys []string
}

func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{
		orders: make(map[string]dto.Order),
	}
}

func (r *MemoryOrderRepository) FindByID(_ context.Context, orderID string) (*dto.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[orderID]
	if !ok {
		return nil, ErrNotFound
	}
	return &order, nil
}

func (r *MemoryOrderRepository) FindByPatientIDsAndState(_ context.Context, patientIDs []string, state string) ([]dto.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := []dto.Order{}
	for _, key := range r.keys {
		order := r.orders[key]
		if len(patientIDs) > 0 && !slices.Contains(patientIDs, order.PatientID) {
			continue
		}
		if state != "" && order.PatientState != state {
			continue
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (r *MemoryOrderRepository) FindAll(ctx context.Context) ([]dto.Order, error) {
	return r.FindByPatientIDsAndState(ctx, nil, "")
}

func (r *MemoryOrderRepository) Save(_ context.Context, order *dto.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[order.OrderID]; !exists {
		r.keys = append(r.keys, order.OrderID)
	}
	r.orders[order.OrderID] = *order
	return nil
}

func (r *MemoryOrderRepository) Delete(_ context.Context, orderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.orders[orderID]; !exists {
		return ErrNotFound
	}
	delete(r.orders, orderID)
	r.keys = slices.DeleteFunc(r.keys, func(key string) bool { return key == orderID })
	return nil
}
