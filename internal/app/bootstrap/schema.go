package bootstrap

import (
	"context"
	"fmt"

	"go.uber.org/fx"

	"soins-suite-services/internal/infrastructure/database/postgres"
)

// Schema DDL idempotent déclaré par un module métier
type Schema struct {
	Name       string
	Statements []string
}

// AsSchema annote un provider de Schema pour le groupe Fx "schemas"
func AsSchema(provider interface{}) interface{} {
	return fx.Annotate(provider, fx.ResultTags(`group:"schemas"`))
}

// SchemaManager applique les schémas des modules dans une transaction unique
type SchemaManager struct {
	txManager *postgres.TransactionManager
	schemas   []Schema
}

type schemaManagerParams struct {
	fx.In

	TxManager *postgres.TransactionManager
	Schemas   []Schema `group:"schemas"`
}

// NewSchemaManager crée le gestionnaire à partir des schémas collectés par Fx
func NewSchemaManager(params schemaManagerParams) *SchemaManager {
	return &SchemaManager{
		txManager: params.TxManager,
		schemas:   params.Schemas,
	}
}

// EnsureSchemas exécute toutes les instructions DDL; tout ou rien
func (sm *SchemaManager) EnsureSchemas(ctx context.Context) (int, error) {
	if len(sm.schemas) == 0 {
		fmt.Printf("[SCHEMA] ⚠️  Aucun schéma déclaré\n")
		return 0, nil
	}

	err := sm.txManager.WithTransaction(ctx, func(tx *postgres.Transaction) error {
		for _, schema := range sm.schemas {
			fmt.Printf("[SCHEMA] 🔧 Application schéma %s (%d instruction(s))\n", schema.Name, len(schema.Statements))
			for i, statement := range schema.Statements {
				if err := tx.Exec(ctx, statement); err != nil {
					return fmt.Errorf("schéma %s, instruction %d: %w", schema.Name, i+1, err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return len(sm.schemas), nil
}
