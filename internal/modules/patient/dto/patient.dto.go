package dto

import (
	"encoding/json"
	"strings"

	"soins-suite-services/internal/shared/utils"
)

// PatientState état d'un patient; valeurs connues ci-dessous, non contrôlées
type PatientState string

const (
	PatientStateActive   PatientState = "ACTIVE"
	PatientStateInactive PatientState = "INACTIVE"
	PatientStateDeclined PatientState = "DECLINED"
)

// Patient les noms ne sont jamais exposés, seul fullName l'est
type Patient struct {
	PatientID         string
	FirstName         string
	LastName          string
	CreateDateTimeGmt utils.LocalDate
	UpdateDateTimeGmt utils.LocalDate
	PatientState      PatientState
}

// FullName prénom et nom séparés par une espace
func (p Patient) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

type patientJSON struct {
	PatientID         string          `json:"patientId"`
	FullName          string          `json:"fullName"`
	CreateDateTimeGmt utils.LocalDate `json:"createDateTimeGmt"`
	UpdateDateTimeGmt utils.LocalDate `json:"updateDateTimeGmt"`
	PatientState      PatientState    `json:"patientState"`
}

func (p Patient) MarshalJSON() ([]byte, error) {
	return json.Marshal(patientJSON{
		PatientID:         p.PatientID,
		FullName:          p.FullName(),
		CreateDateTimeGmt: p.CreateDateTimeGmt,
		UpdateDateTimeGmt: p.UpdateDateTimeGmt,
		PatientState:      p.PatientState,
	})
}

// PatientRequest corps de création / mise à jour; champs null ignorés
type PatientRequest struct {
	PatientID         *string          `json:"patientId"`
	FirstName         *string          `json:"firstName"`
	LastName          *string          `json:"lastName"`
	CreateDateTimeGmt *utils.LocalDate `json:"createDateTimeGmt"`
	UpdateDateTimeGmt *utils.LocalDate `json:"updateDateTimeGmt"`
	PatientState      *PatientState    `json:"patientState"`
}

// ApplyTo reporte les champs renseignés (hors identifiant) sur le patient
func (r PatientRequest) ApplyTo(patient *Patient) {
	if r.FirstName != nil {
		patient.FirstName = *r.FirstName
	}
	if r.LastName != nil {
		patient.LastName = *r.LastName
	}
	if r.CreateDateTimeGmt != nil {
		patient.CreateDateTimeGmt = *r.CreateDateTimeGmt
	}
	if r.UpdateDateTimeGmt != nil {
		patient.UpdateDateTimeGmt = *r.UpdateDateTimeGmt
	}
	if r.PatientState != nil {
		patient.PatientState = *r.PatientState
	}
}

// PatientIdWrapper ensemble d'identifiants transmis à l'agrégation
type PatientIdWrapper struct {
	PatientIDs []string `json:"patientIds" binding:"required,min=1"`
}

// PatientWithOrders un patient et ses commandes actives
type PatientWithOrders struct {
	Patient Patient `json:"patient"`
	Orders  []Order `json:"orders"`
}
