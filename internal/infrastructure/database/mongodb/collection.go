package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OrdersCollection nom de la collection des commandes
const OrdersCollection = "orders"

type CollectionManager struct {
	client *Client
}

func NewCollectionManager(client *Client) *CollectionManager {
	return &CollectionManager{client: client}
}

// EnsureOrderCollection crée la collection des commandes avec son validateur et ses index
func (cm *CollectionManager) EnsureOrderCollection(ctx context.Context) error {
	exists, err := cm.CollectionExists(ctx, OrdersCollection)
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}

	if !exists {
		validator := bson.M{
			"$jsonSchema": bson.M{
				"bsonType": "object",
				"required": []string{"_id"},
				"properties": bson.M{
					"patient_id": bson.M{
						"bsonType":    []string{"string", "null"},
						"description": "Identifiant du patient propriétaire",
					},
					"order_comment": bson.M{
						"bsonType":    []string{"string", "null"},
						"description": "Commentaire libre",
					},
					"patient_state": bson.M{
						"bsonType":    []string{"string", "null"},
						"description": "Etat utilisé pour le filtrage (ACTIVE, DECLINED...)",
					},
				},
			},
		}

		opts := options.CreateCollection().SetValidator(validator)
		if err := cm.client.Database().CreateCollection(ctx, OrdersCollection, opts); err != nil {
			return fmt.Errorf("failed to create collection %s: %w", OrdersCollection, err)
		}
	}

	// Index composé pour la recherche par patients + état
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "patient_id", Value: 1}, {Key: "patient_state", Value: 1}}},
		{Keys: bson.D{{Key: "patient_state", Value: 1}}},
	}

	return cm.client.CreateIndexes(ctx, OrdersCollection, indexes)
}

func (cm *CollectionManager) CollectionExists(ctx context.Context, name string) (bool, error) {
	collections, err := cm.client.ListCollectionNames(ctx)
	if err != nil {
		return false, err
	}

	for _, coll := range collections {
		if coll == name {
			return true, nil
		}
	}
	return false, nil
}
