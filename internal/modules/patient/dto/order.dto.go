package dto

import (
	"soins-suite-services/internal/shared/utils"
)

// Order commande telle que retournée par le service commande
type Order struct {
	OrderID           string          `json:"orderId"`
	PatientID         string          `json:"patientId"`
	OrderComment      string          `json:"orderComment"`
	PatientState      string          `json:"patientState"`
	CreateDateTimeGmt utils.LocalDate `json:"createDateTimeGmt"`
	UpdateDateTimeGmt utils.LocalDate `json:"updateDateTimeGmt"`
}
