package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"soins-suite-services/internal/modules/patient/dto"
	"soins-suite-services/internal/modules/patient/services"
	"soins-suite-services/internal/shared/utils"
)

type PatientController struct {
	service *services.PatientService
}

func NewPatientController(service *services.PatientService) *PatientController {
	return &PatientController{
		service: service,
	}
}

func (c *PatientController) CreatePatient(ctx *gin.Context) {
	var req dto.PatientRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(ctx, err)
		return
	}

	patient, err := c.service.CreatePatient(ctx.Request.Context(), req)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, patient)
}

func (c *PatientController) UpdatePatient(ctx *gin.Context) {
	var req dto.PatientRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(ctx, err)
		return
	}

	patient, err := c.service.UpdatePatient(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, patient)
}

func (c *PatientController) DeactivatePatient(ctx *gin.Context) {
	if err := c.service.DeactivatePatient(ctx.Request.Context(), ctx.Param("id")); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.Status(http.StatusAccepted)
}

func (c *PatientController) ListPatients(ctx *gin.Context) {
	patients, err := c.service.ListPatients(ctx.Request.Context())
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, patients)
}

// GetPatientsWithActiveOrders POST /patients/orders/active {"patientIds": [...]}
func (c *PatientController) GetPatientsWithActiveOrders(ctx *gin.Context) {
	var wrapper dto.PatientIdWrapper
	if err := ctx.ShouldBindJSON(&wrapper); err != nil {
		utils.RespondBindingError(ctx, err)
		return
	}

	result, err := c.service.GetPatientsWithActiveOrders(ctx.Request.Context(), wrapper)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, result)
}
