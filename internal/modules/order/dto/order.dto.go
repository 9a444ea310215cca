package dto

import (
	"soins-suite-services/internal/shared/utils"
)

// Order commande rattachée à un patient
type Order struct {
	OrderID           string          `json:"orderId"`
	PatientID         string          `json:"patientId"`
	OrderComment      string          `json:"orderComment"`
	PatientState      string          `json:"patientState"`
	CreateDateTimeGmt utils.LocalDate `json:"createDateTimeGmt"`
	UpdateDateTimeGmt utils.LocalDate `json:"updateDateTimeGmt"`
}

// OrderRequest corps des requêtes de création et de mise à jour.
// Les champs absents (null) ne sont pas appliqués.
type OrderRequest struct {
	OrderID           *string          `json:"orderId"`
	PatientID         *string          `json:"patientId"`
	OrderComment      *string          `json:"orderComment"`
	PatientState      *string          `json:"patientState"`
	CreateDateTimeGmt *utils.LocalDate `json:"createDateTimeGmt"`
	UpdateDateTimeGmt *utils.LocalDate `json:"updateDateTimeGmt"`
}

// OrderFilter critères de recherche; un critère vide ne filtre pas
type OrderFilter struct {
	PatientIDs   []string
	PatientState string
}

// IsEmpty indique qu'aucun critère n'est posé
func (f OrderFilter) IsEmpty() bool {
	return len(f.PatientIDs) == 0 && f.PatientState == ""
}

// ApplyTo reporte les champs renseignés de la requête sur la commande
func (r OrderRequest) ApplyTo(order *Order) {
	if r.PatientID != nil {
		order.PatientID = *r.PatientID
	}
	if r.OrderComment != nil {
		order.OrderComment = *r.OrderComment
	}
	if r.PatientState != nil {
		order.PatientState = *r.PatientState
	}
	if r.CreateDateTimeGmt != nil {
		order.CreateDateTimeGmt = *r.CreateDateTimeGmt
	}
	if r.UpdateDateTimeGmt != nil {
		order.UpdateDateTimeGmt = *r.UpdateDateTimeGmt
	}
}
