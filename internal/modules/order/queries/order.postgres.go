package queries

// OrderSchema DDL idempotent de la table des commandes
var OrderSchema = []string{
	`CREATE TABLE IF NOT EXISTS orders (
		order_id             TEXT PRIMARY KEY,
		patient_id           TEXT,
		order_comment        TEXT,
		patient_state        TEXT,
		create_date_time_gmt DATE,
		update_date_time_gmt DATE,
		created_at           TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_orders_patient_state ON orders (patient_id, patient_state)`,
}

// OrderQueries contient toutes les requêtes SQL du service commande
var OrderQueries = struct {
	GetByID      string
	ListAll      string
	ListByFilter string
	Upsert       string
	Delete       string
}{
	GetByID: `
		SELECT order_id, patient_id, order_comment, patient_state,
		       create_date_time_gmt, update_date_time_gmt
		FROM orders
		WHERE order_id = $1
	`,

	ListAll: `
		SELECT order_id, patient_id, order_comment, patient_state,
		       create_date_time_gmt, update_date_time_gmt
		FROM orders
		ORDER BY created_at, order_id
	`,

	// $1 liste de patients (vide = tous), $2 état ('' = tous)
	ListByFilter: `
		SELECT order_id, patient_id, order_comment, patient_state,
		       create_date_time_gmt, update_date_time_gmt
		FROM orders
		WHERE (cardinality($1::text[]) = 0 OR patient_id = ANY($1::text[]))
		  AND ($2::text = '' OR patient_state = $2::text)
		ORDER BY created_at, order_id
	`,

	Upsert: `
		INSERT INTO orders (
			order_id, patient_id, order_comment, patient_state,
			create_date_time_gmt, update_date_time_gmt
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (order_id) DO UPDATE SET
			patient_id           = EXCLUDED.patient_id,
			order_comment        = EXCLUDED.order_comment,
			patient_state        = EXCLUDED.patient_state,
			create_date_time_gmt = EXCLUDED.create_date_time_gmt,
			update_date_time_gmt = EXCLUDED.update_date_time_gmt
	`,

	Delete: `DELETE FROM orders WHERE order_id = $1`,
}
