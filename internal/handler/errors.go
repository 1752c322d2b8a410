package handler

import (
	"net/http"

	"ordermgr/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func statusOf(kind usecase.ErrorKind) int {
	switch kind {
	case usecase.KindNotFound:
		return http.StatusNotFound
	case usecase.KindUniqueViolation, usecase.KindInsufficientStock:
		return http.StatusConflict
	case usecase.KindConstraintViolation:
		return http.StatusUnprocessableEntity
	case usecase.KindInvalidInput:
		return http.StatusBadRequest
	case usecase.KindArchivalIO:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if ue, ok := usecase.AsError(err); ok && ue.Kind != usecase.KindInternal {
		return c.JSON(statusOf(ue.Kind), ErrorResponse{Error: ue.Message, Kind: string(ue.Kind)})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error", Kind: string(usecase.KindInternal)})
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg, Kind: string(usecase.KindInvalidInput)})
}
