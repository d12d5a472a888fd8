package services

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/eventadmin/internal/client/client"
	"github.com/dmitrijs2005/eventadmin/internal/client/models"
)

type TransactionService interface {
	ListTransactions(ctx context.Context, f models.TransactionFilter) ([]models.Transaction, error)
}

type transactionService struct {
	api API
}

func NewTransactionService(api API) TransactionService {
	return &transactionService{api: api}
}

func (s *transactionService) ListTransactions(ctx context.Context, f models.TransactionFilter) ([]models.Transaction, error) {
	req := client.Request{Method: http.MethodGet, Path: "/v1/transactions/admin/get-transactions", Query: f.Query()}
	resp, err := call(ctx, s.api, "list transactions", req)
	if err != nil {
		return nil, err
	}
	return decodeList[models.Transaction](resp.Body, "transactions", "data")
}
