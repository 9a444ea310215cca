package utils

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// RespondError écrit la réponse d'erreur standardisée et interrompt la chaîne Gin
func RespondError(ctx *gin.Context, err error) {
	var serviceErr *ServiceError
	if !errors.As(err, &serviceErr) {
		serviceErr = NewInternalError("Erreur interne du service", err)
	}

	details := map[string]interface{}{
		"code":    serviceErr.Code,
		"message": serviceErr.Error(),
	}
	for key, value := range serviceErr.Details {
		details[key] = value
	}

	_ = ctx.Error(err)
	ctx.AbortWithStatusJSON(serviceErr.HTTPStatus(), gin.H{
		"error":   serviceErr.Message,
		"details": details,
	})
}

// RespondBindingError réponse 400 pour un corps ou des paramètres illisibles
func RespondBindingError(ctx *gin.Context, err error) {
	details := map[string]interface{}{
		"code":    "VALIDATION_ERROR",
		"message": err.Error(),
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		champs := make(map[string]string, len(validationErrs))
		for _, fieldErr := range validationErrs {
			champs[fieldErr.Field()] = validationMessage(fieldErr)
		}
		details["champs"] = champs
	}

	ctx.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"error":   "Données invalides",
		"details": details,
	})
}

func validationMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "Champ requis"
	case "min":
		return fmt.Sprintf("Au moins %s élément(s) requis", fieldErr.Param())
	default:
		return fmt.Sprintf("Contrainte %s non respectée", fieldErr.Tag())
	}
}
