package handler

import (
	"campustrade/internal/usecase"
	"campustrade/pkg/response"
	"campustrade/pkg/utils"

	"github.com/labstack/echo/v4"
)

type TradeRequestHandler struct {
	tradeRequestUseCase *usecase.TradeRequestUseCase
}

func NewTradeRequestHandler(tradeRequestUseCase *usecase.TradeRequestUseCase) *TradeRequestHandler {
	return &TradeRequestHandler{
		tradeRequestUseCase: tradeRequestUseCase,
	}
}

type createTradeRequestRequest struct {
	TargetProductID  string   `json:"target_product_id" validate:"required"`
	Type             string   `json:"type" validate:"required,oneof=purchase trade"`
	OfferPrice       *float64 `json:"offer_price,omitempty"`
	OfferedProductID string   `json:"offered_product_id,omitempty"`
	Message          string   `json:"message" validate:"max=500"`
}

func (h *TradeRequestHandler) CreateTradeRequest(c echo.Context) error {
	var req createTradeRequestRequest
	if err := c.Bind(&req); err != nil {
		return response.Error(c, err)
	}

	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	requesterID := c.Get("uid").(string)

	request, err := h.tradeRequestUseCase.Create(c.Request().Context(), requesterID, usecase.CreateTradeRequestInput{
		TargetProductID:  req.TargetProductID,
		Type:             req.Type,
		OfferPrice:       req.OfferPrice,
		OfferedProductID: req.OfferedProductID,
		Message:          req.Message,
	})
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, request)
}

func (h *TradeRequestHandler) GetTradeRequest(c echo.Context) error {
	callerID := c.Get("uid").(string)

	request, err := h.tradeRequestUseCase.GetByID(c.Request().Context(), callerID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, request)
}

func (h *TradeRequestHandler) ListTradeRequests(c echo.Context) error {
	callerID := c.Get("uid").(string)
	pagination := utils.GetPaginationParams(c)

	requests, total, err := h.tradeRequestUseCase.List(
		c.Request().Context(),
		callerID,
		c.QueryParam("direction"),
		c.QueryParam("status"),
		pagination.Page,
		pagination.PageSize,
	)
	if err != nil {
		return response.Error(c, err)
	}

	return response.Paginated(c, requests, total, pagination.Page, pagination.PageSize)
}

func (h *TradeRequestHandler) AcceptTradeRequest(c echo.Context) error {
	callerID := c.Get("uid").(string)

	request, err := h.tradeRequestUseCase.Accept(c.Request().Context(), callerID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, request)
}

func (h *TradeRequestHandler) RejectTradeRequest(c echo.Context) error {
	callerID := c.Get("uid").(string)

	request, err := h.tradeRequestUseCase.Reject(c.Request().Context(), callerID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, request)
}

func (h *TradeRequestHandler) CancelTradeRequest(c echo.Context) error {
	callerID := c.Get("uid").(string)

	request, err := h.tradeRequestUseCase.Cancel(c.Request().Context(), callerID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, request)
}

func (h *TradeRequestHandler) ConfirmHandoff(c echo.Context) error {
	callerID := c.Get("uid").(string)

	result, err := h.tradeRequestUseCase.ConfirmHandoff(c.Request().Context(), callerID, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Success(c, result)
}
