package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"soins-suite-services/internal/modules/order/dto"
	"soins-suite-services/internal/modules/order/repositories"
	"soins-suite-services/internal/shared/utils"
)

const errCodeOrderNotFound = "ORDER_NOT_FOUND"

type OrderService struct {
	repo   repositories.OrderRepository
	logger *slog.Logger
}

func NewOrderService(repo repositories.OrderRepository, logger *slog.Logger) *OrderService {
	return &OrderService{
		repo:   repo,
		logger: logger,
	}
}

// CreateOrder attribue un nouvel identifiant et enregistre la commande.
// Un orderId fourni dans la requête est ignoré.
func (s *OrderService) CreateOrder(ctx context.Context, req dto.OrderRequest) (*dto.Order, error) {
	order := &dto.Order{}
	req.ApplyTo(order)
	order.OrderID = uuid.NewString()

	if order.CreateDateTimeGmt.IsZero() {
		order.CreateDateTimeGmt = utils.Today()
	}
	if order.UpdateDateTimeGmt.IsZero() {
		order.UpdateDateTimeGmt = order.CreateDateTimeGmt
	}

	if err := s.repo.Save(ctx, order); err != nil {
		return nil, utils.NewInternalError("Erreur lors de la création de la commande", err)
	}

	s.logger.Info("commande créée", "order_id", order.OrderID, "patient_id", order.PatientID)
	return order, nil
}

// UpdateOrder applique les champs renseignés; l'identifiant ne change jamais
func (s *OrderService) UpdateOrder(ctx context.Context, orderID string, req dto.OrderRequest) (*dto.Order, error) {
	order, err := s.findOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	req.ApplyTo(order)
	order.OrderID = orderID
	if req.UpdateDateTimeGmt == nil {
		order.UpdateDateTimeGmt = utils.Today()
	}

	if err := s.repo.Save(ctx, order); err != nil {
		return nil, utils.NewInternalError("Erreur lors de la mise à jour de la commande", err)
	}
	return order, nil
}

// DeclineOrder supprime définitivement la commande
func (s *OrderService) DeclineOrder(ctx context.Context, orderID string) error {
	err := s.repo.Delete(ctx, orderID)
	if errors.Is(err, repositories.ErrNotFound) {
		return orderNotFound(orderID)
	}
	if err != nil {
		return utils.NewInternalError("Erreur lors de l'annulation de la commande", err)
	}

	s.logger.Info("commande annulée", "order_id", orderID)
	return nil
}

func (s *OrderService) GetOrder(ctx context.Context, orderID string) (*dto.Order, error) {
	return s.findOrder(ctx, orderID)
}

// ListOrders filtre par patients ET état; sans critère retourne toutes les commandes
func (s *OrderService) ListOrders(ctx context.Context, filter dto.OrderFilter) ([]dto.Order, error) {
	var (
		orders []dto.Order
		err    error
	)

	if filter.IsEmpty() {
		orders, err = s.repo.FindAll(ctx)
	} else {
		orders, err = s.repo.FindByPatientIDsAndState(ctx, filter.PatientIDs, filter.PatientState)
	}
	if err != nil {
		return nil, utils.NewInternalError("Erreur lors de la recherche des commandes", err)
	}
	return orders, nil
}

func (s *OrderService) findOrder(ctx context.Context, orderID string) (*dto.Order, error) {
	order, err := s.repo.FindByID(ctx, orderID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, orderNotFound(orderID)
	}
	if err != nil {
		return nil, utils.NewInternalError("Erreur lors de la lecture de la commande", err)
	}
	return order, nil
}

func orderNotFound(orderID string) error {
	return utils.NewNotFoundError(errCodeOrderNotFound, fmt.Sprintf("Commande %s introuvable", orderID))
}
