package utils

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

const localDateLayout = "2006-01-02"

// LocalDate date calendaire sans heure ni fuseau, sérialisée "YYYY-MM-DD"
type LocalDate struct {
	time.Time
}

// NewLocalDate tronque t à la date UTC
func NewLocalDate(t time.Time) LocalDate {
	y, m, d := t.UTC().Date()
	return LocalDate{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Today date du jour (GMT)
func Today() LocalDate {
	return NewLocalDate(time.Now())
}

// ParseLocalDate lit une date au format YYYY-MM-DD
func ParseLocalDate(value string) (LocalDate, error) {
	t, err := time.Parse(localDateLayout, value)
	if err != nil {
		return LocalDate{}, fmt.Errorf("date invalide %q: %w", value, err)
	}
	return LocalDate{Time: t}, nil
}

func (d LocalDate) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(localDateLayout)
}

func (d LocalDate) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(localDateLayout))
}

func (d *LocalDate) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*d = LocalDate{}
		return nil
	}

	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return err
	}
	if value == "" {
		*d = LocalDate{}
		return nil
	}

	parsed, err := ParseLocalDate(value)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
