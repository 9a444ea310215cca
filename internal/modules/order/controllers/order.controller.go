package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"soins-suite-services/internal/modules/order/dto"
	"soins-suite-services/internal/modules/order/services"
	"soins-suite-services/internal/shared/utils"
)

type OrderController struct {
	service *services.OrderService
}

func NewOrderController(service *services.OrderService) *OrderController {
	return &OrderController{
		service: service,
	}
}

func (c *OrderController) CreateOrder(ctx *gin.Context) {
	var req dto.OrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(ctx, err)
		return
	}

	order, err := c.service.CreateOrder(ctx.Request.Context(), req)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, order)
}

func (c *OrderController) UpdateOrder(ctx *gin.Context) {
	var req dto.OrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.RespondBindingError(ctx, err)
		return
	}

	order, err := c.service.UpdateOrder(ctx.Request.Context(), ctx.Param("orderId"), req)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, order)
}

func (c *OrderController) DeclineOrder(ctx *gin.Context) {
	if err := c.service.DeclineOrder(ctx.Request.Context(), ctx.Param("orderId")); err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *OrderController) GetOrder(ctx *gin.Context) {
	order, err := c.service.GetOrder(ctx.Request.Context(), ctx.Param("orderId"))
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, order)
}

// ListOrders GET /orders?patientIds=1,2,3&patientState=ACTIVE
func (c *OrderController) ListOrders(ctx *gin.Context) {
	filter := dto.OrderFilter{
		PatientIDs:   parseIDList(ctx.QueryArray("patientIds")),
		PatientState: strings.TrimSpace(ctx.Query("patientState")),
	}

	orders, err := c.service.ListOrders(ctx.Request.Context(), filter)
	if err != nil {
		utils.RespondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, orders)
}

// parseIDList accepte la forme CSV comme la répétition du paramètre
func parseIDList(values []string) []string {
	var ids []string
	for _, value := range values {
		for _, id := range strings.Split(value, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids
}
