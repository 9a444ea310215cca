package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"soins-suite-services/internal/infrastructure/database/postgres"
	"soins-suite-services/internal/modules/order/dto"
	"soins-suite-services/internal/modules/order/queries"
	"soins-suite-services/internal/shared/utils"
)

type PostgresOrderRepository struct {
	db *postgres.Client
}

func NewPostgresOrderRepository(db *postgres.Client) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

func (r *PostgresOrderRepository) FindByID(ctx context.Context, orderID string) (*dto.Order, error) {
	order, err := scanOrder(r.db.QueryRow(ctx, queries.OrderQueries.GetByID, orderID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lecture commande %s échouée: %w", orderID, err)
	}
	return order, nil
}

func (r *PostgresOrderRepository) FindByPatientIDsAndState(ctx context.Context, patientIDs []string, state string) ([]dto.Order, error) {
	// Tableau vide (et non NULL) pour que cardinality() vaille 0
	if patientIDs == nil {
		patientIDs = []string{}
	}
	return r.list(ctx, queries.OrderQueries.ListByFilter, patientIDs, state)
}

func (r *PostgresOrderRepository) FindAll(ctx context.Context) ([]dto.Order, error) {
	return r.list(ctx, queries.OrderQueries.ListAll)
}

func (r *PostgresOrderRepository) Save(ctx context.Context, order *dto.Order) error {
	_, err := r.db.Exec(ctx, queries.OrderQueries.Upsert,
		order.OrderID,
		order.PatientID,
		order.OrderComment,
		order.PatientState,
		postgres.DateParam(order.CreateDateTimeGmt.Time),
		postgres.DateParam(order.UpdateDateTimeGmt.Time),
	)
	if err != nil {
		return fmt.Errorf("enregistrement commande %s échoué: %w", order.OrderID, err)
	}
	return nil
}

func (r *PostgresOrderRepository) Delete(ctx context.Context, orderID string) error {
	tag, err := r.db.Exec(ctx, queries.OrderQueries.Delete, orderID)
	if err != nil {
		return fmt.Errorf("suppression commande %s échouée: %w", orderID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresOrderRepository) list(ctx context.Context, sql string, args ...interface{}) ([]dto.Order, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("recherche commandes échouée: %w", err)
	}
	defer rows.Close()

	orders := []dto.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("lecture ligne commande échouée: %w", err)
		}
		orders = append(orders, *order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("parcours commandes échoué: %w", err)
	}
	return orders, nil
}

func scanOrder(row pgx.Row) (*dto.Order, error) {
	var (
		order                  dto.Order
		patientID, comment     pgtype.Text
		state                  pgtype.Text
		createdDate, updatedAt pgtype.Date
	)

	if err := row.Scan(&order.OrderID, &patientID, &comment, &state, &createdDate, &updatedAt); err != nil {
		return nil, err
	}

	order.PatientID = patientID.String
	order.OrderComment = comment.String
	order.PatientState = state.String
	order.CreateDateTimeGmt = utils.NewLocalDate(postgres.DateValue(createdDate))
	order.UpdateDateTimeGmt = utils.NewLocalDate(postgres.DateValue(updatedAt))
	return &order, nil
}
