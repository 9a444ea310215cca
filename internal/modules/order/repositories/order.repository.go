package repositories

import (
	"context"
	"errors"

	"soins-suite-services/internal/modules/order/dto"
)

// ErrNotFound commande absente du stockage
var ErrNotFound = errors.New("commande introuvable")

// OrderRepository accès au stockage des commandes
type OrderRepository interface {
	FindByID(ctx context.Context, orderID string) (*dto.Order, error)
	// FindByPatientIDsAndState liste vide ou état vide = pas de contrainte
	FindByPatientIDsAndState(ctx context.Context, patientIDs []string, state string) ([]dto.Order, error)
	FindAll(ctx context.Context) ([]dto.Order, error)
	Save(ctx context.Context, order *dto.Order) error
	Delete(ctx context.Context, orderID string) error
}
