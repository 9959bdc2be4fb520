package handler

import (
	"campustrade/internal/usecase"
)

var (
	productHandler      *ProductHandler
	tradeRequestHandler *TradeRequestHandler
	transactionHandler  *TransactionHandler
	reviewHandler       *ReviewHandler
)

func Setup(
	productUseCase *usecase.ProductUseCase,
	tradeRequestUseCase *usecase.TradeRequestUseCase,
	transactionUseCase *usecase.TransactionUseCase,
	reviewUseCase *usecase.ReviewUseCase,
) {
	productHandler = NewProductHandler(productUseCase)
	tradeRequestHandler = NewTradeRequestHandler(tradeRequestUseCase)
	transactionHandler = NewTransactionHandler(transactionUseCase)
	reviewHandler = NewReviewHandler(reviewUseCase)
}

func GetProductHandler() *ProductHandler {
	return productHandler
}

func GetTradeRequestHandler() *TradeRequestHandler {
	return tradeRequestHandler
}

func GetTransactionHandler() *TransactionHandler {
	return transactionHandler
}

func GetReviewHandler() *ReviewHandler {
	return reviewHandler
}
