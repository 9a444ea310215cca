package postgres

import (
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// DateParam convertit une date calendaire en paramètre DATE (NULL si zéro)
func DateParam(t time.Time) pgtype.Date {
	return pgtype.Date{Time: t, Valid: !t.IsZero()}
}

// DateValue retourne la date scannée, zéro si NULL
func DateValue(d pgtype.Date) time.Time {
	if !d.Valid {
		return time.Time{}
	}
	return d.Time
}
