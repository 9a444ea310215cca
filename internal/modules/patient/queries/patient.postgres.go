package queries

// PatientSchema DDL idempotent de la table des patients
var PatientSchema = []string{
	`CREATE TABLE IF NOT EXISTS patients (
		patient_id           TEXT PRIMARY KEY,
		first_name           TEXT,
		last_name            TEXT,
		create_date_time_gmt DATE,
		update_date_time_gmt DATE,
		patient_state        TEXT,
		created_at           TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// PatientQueries contient toutes les requêtes SQL du service patient
var PatientQueries = struct {
	GetByID     string
	ListByIDs   string
	ListAll     string
	Insert      string
	Upsert      string
	Delete      string
	MaxSequence string
}{
	GetByID: `
		SELECT patient_id, first_name, last_name,
		       create_date_time_gmt, update_date_time_gmt, patient_state
		FROM patients
		WHERE patient_id = $1
	`,

	ListByIDs: `
		SELECT patient_id, first_name, last_name,
		       create_date_time_gmt, update_date_time_gmt, patient_state
		FROM patients
		WHERE patient_id = ANY($1::text[])
		ORDER BY created_at, patient_id
	`,

	ListAll: `
		SELECT patient_id, first_name, last_name,
		       create_date_time_gmt, update_date_time_gmt, patient_state
		FROM patients
		ORDER BY created_at, patient_id
	`,

	// Insert - Création seule, un identifiant existant n'est jamais écrasé
	Insert: `
		INSERT INTO patients (
			patient_id, first_name, last_name,
			create_date_time_gmt, update_date_time_gmt, patient_state
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (patient_id) DO NOTHING
	`,

	Upsert: `
		INSERT INTO patients (
			patient_id, first_name, last_name,
			create_date_time_gmt, update_date_time_gmt, patient_state
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (patient_id) DO UPDATE SET
			first_name           = EXCLUDED.first_name,
			last_name            = EXCLUDED.last_name,
			create_date_time_gmt = EXCLUDED.create_date_time_gmt,
			update_date_time_gmt = EXCLUDED.update_date_time_gmt,
			patient_state        = EXCLUDED.patient_state
	`,

	Delete: `DELETE FROM patients WHERE patient_id = $1`,

	// MaxSequence - Plus grande séquence numérique pour un préfixe (ex: PAT-2025-)
	MaxSequence: `
		SELECT COALESCE(MAX(CAST(substr(patient_id, length($1::text) + 1) AS BIGINT)), 0)
		FROM patients
		WHERE patient_id LIKE $1::text || '%'
		  AND substr(patient_id, length($1::text) + 1) ~ '^[0-9]+$'
	`,
}
