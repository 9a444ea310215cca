package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"soins-suite-services/internal/infrastructure/database/mongodb"
	"soins-suite-services/internal/modules/order/dto"
	"soins-suite-services/internal/shared/utils"
)

// orderDocument représentation BSON d'une commande
type orderDocument struct {
	ID                string     `bson:"_id"`
	PatientID         string     `bson:"patient_id"`
	OrderComment      string     `bson:"order_comment"`
	PatientState      string     `bson:"patient_state"`
	CreateDateTimeGmt *time.Time `bson:"create_date_time_gmt,omitempty"`
	UpdateDateTimeGmt *time.Time `bson:"update_date_time_gmt,omitempty"`
}

type MongoOrderRepository struct {
	collection *mongo.Collection
}

func NewMongoOrderRepository(client *mongodb.Client) *MongoOrderRepository {
	return &MongoOrderRepository{
		collection: client.Collection(mongodb.OrdersCollection),
	}
}

func (r *MongoOrderRepository) FindByID(ctx context.Context, orderID string) (*dto.Order, error) {
	var doc orderDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": orderID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lecture commande %s échouée: %w", orderID, err)
	}

	order := doc.toOrder()
	return &order, nil
}

func (r *MongoOrderRepository) FindByPatientIDsAndState(ctx context.Context, patientIDs []string, state string) ([]dto.Order, error) {
	filter := bson.M{}
	if len(patientIDs) > 0 {
		filter["patient_id"] = bson.M{"$in": patientIDs}
	}
	if state != "" {
		filter["patient_state"] = state
	}
	return r.find(ctx, filter)
}

func (r *MongoOrderRepository) FindAll(ctx context.Context) ([]dto.Order, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoOrderRepository) Save(ctx context.Context, order *dto.Order) error {
	doc := newOrderDocument(order)
	opts := options.Replace().SetUpsert(true)

	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, opts); err != nil {
		return fmt.Errorf("enregistrement commande %s échoué: %w", order.OrderID, err)
	}
	return nil
}

func (r *MongoOrderRepository) Delete(ctx context.Context, orderID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": orderID})
	if err != nil {
		return fmt.Errorf("suppression commande %s échouée: %w", orderID, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoOrderRepository) find(ctx context.Context, filter bson.M) ([]dto.Order, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "create_date_time_gmt", Value: 1},
		{Key: "_id", Value: 1},
	})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("recherche commandes échouée: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []orderDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("décodage commandes échoué: %w", err)
	}

	orders := make([]dto.Order, 0, len(docs))
	for _, doc := range docs {
		orders = append(orders, doc.toOrder())
	}
	return orders, nil
}

func newOrderDocument(order *dto.Order) orderDocument {
	return orderDocument{
		ID:                order.OrderID,
		PatientID:         order.PatientID,
		OrderComment:      order.OrderComment,
		PatientState:      order.PatientState,
		CreateDateTimeGmt: datePointer(order.CreateDateTimeGmt),
		UpdateDateTimeGmt: datePointer(order.UpdateDateTimeGmt),
	}
}

func (d orderDocument) toOrder() dto.Order {
	order := dto.Order{
		OrderID:      d.ID,
		PatientID:    d.PatientID,
		OrderComment: d.OrderComment,
		PatientState: d.PatientState,
	}
	if d.CreateDateTimeGmt != nil {
		order.CreateDateTimeGmt = utils.NewLocalDate(*d.CreateDateTimeGmt)
	}
	if d.UpdateDateTimeGmt != nil {
		order.UpdateDateTimeGmt = utils.NewLocalDate(*d.UpdateDateTimeGmt)
	}
	return order
}

func datePointer(d utils.LocalDate) *time.Time {
	if d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}
