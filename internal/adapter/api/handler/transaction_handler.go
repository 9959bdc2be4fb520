package handler

import (
	"campustrade/internal/usecase"
	"campustrade/pkg/response"
	"campustrade/pkg/utils"

	"github.com/labstack/echo/v4"
)

type TransactionHandler struct {
	transactionUseCase *usecase.TransactionUseCase
}

func NewTransactionHandler(transactionUseCase *usecase.TransactionUseCase) *TransactionHandler {
	return &TransactionHandler{
		transactionUseCase: transactionUseCase,
	}
}

func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	callerID := c.Get("uid").(string)

	txn, err := h.transactionUseCase.GetByID(c.Request().Context(), callerID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, txn)
}

func (h *TransactionHandler) GetTransactionByRequest(c echo.Context) error {
	callerID := c.Get("uid").(string)

	txn, err := h.transactionUseCase.GetByRequest(c.Request().Context(), callerID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, txn)
}

func (h *TransactionHandler) ListTransactions(c echo.Context) error {
	callerID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	txns, total, err := h.transactionUseCase.List(
		c.Request().Context(),
		callerID,
		c.QueryParam("role"),
		pagination.Page,
		pagination.PageSize,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, txns, total, pagination.Page, pagination.PageSize)
}
