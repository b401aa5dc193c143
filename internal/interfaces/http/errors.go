package http

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/panaderia-erp/internal/application/dto"
	"github.com/jhoicas/panaderia-erp/internal/domain"
	"github.com/jhoicas/panaderia-erp/internal/infrastructure/apiclient"
)

// Códigos de error del BFF.
const (
	CodeValidation         = "VALIDATION"
	CodeInvalidBody        = "INVALID_BODY"
	CodeConversionNotFound = "CONVERSION_NOT_FOUND"
	CodeInsufficient       = "INSUFFICIENT_PAYMENT"
	CodeRequestFailed      = "REQUEST_FAILED"
	CodeSessionExpired     = "SESSION_EXPIRED"
	CodeNotFound           = "NOT_FOUND"
	CodeForbidden          = "FORBIDDEN"
	CodeInternal           = "INTERNAL"
)

const genericRequestFailed = "No se pudo completar la operación. Intente de nuevo."

// respondError traduce un error de la aplicación a estado HTTP y cuerpo de error.
// El orden importa: un RequestError 404 también envuelve ErrRequestFailed.
func respondError(c *fiber.Ctx, err error) error {
	var verr *dto.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ValidationErrorResponse{
			Code:    CodeValidation,
			Message: "datos inválidos",
			Fields:  verr.Fields,
		})
	}

	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: CodeSessionExpired, Message: "sesión expirada, inicie sesión de nuevo"})
	case errors.Is(err, domain.ErrConversionNotFound):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: CodeConversionNotFound, Message: err.Error()})
	case errors.Is(err, domain.ErrInsufficientPayment):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: CodeInsufficient, Message: err.Error()})
	case errors.Is(err, domain.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeValidation, Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: CodeNotFound, Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: CodeForbidden, Message: "acceso denegado"})
	case errors.Is(err, domain.ErrRequestFailed):
		msg := genericRequestFailed
		var rerr *apiclient.RequestError
		if errors.As(err, &rerr) && rerr.Message != "" {
			msg = rerr.Message
		}
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Code: CodeRequestFailed, Message: msg})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: CodeInternal, Message: http.StatusText(http.StatusInternalServerError)})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: CodeInvalidBody, Message: "cuerpo inválido"})
}
