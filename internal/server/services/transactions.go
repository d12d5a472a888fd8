package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/eventadmin/internal/server/models"
	"github.com/dmitrijs2005/eventadmin/internal/server/repositories/memory"
)

// TransactionQuery is the parsed query string of the transaction list.
// Dates are inclusive calendar days.
type TransactionQuery struct {
	Page      int
	Limit     int
	Type      string
	StartDate string
	EndDate   string
	Search    string
}

type TransactionService struct {
	store *memory.Store
}

func NewTransactionService(store *memory.Store) *TransactionService {
	return &TransactionService{store: store}
}

func (s *TransactionService) List(ctx context.Context, q TransactionQuery) ([]models.TransactionView, models.Pagination, error) {
	f := memory.TransactionFilter{Type: q.Type, Search: q.Search}
	switch q.Type {
	case "", "credit", "debit":
	default:
		return nil, models.Pagination{}, fmt.Errorf("%w: type must be credit or debit", ErrInvalidInput)
	}
	if q.StartDate != "" {
		d, err := time.Parse(dateLayout, q.StartDate)
		if err != nil {
			return nil, models.Pagination{}, fmt.Errorf("%w: startDate must look like %s", ErrInvalidInput, dateLayout)
		}
		f.From = d
	}
	if q.EndDate != "" {
		d, err := time.Parse(dateLayout, q.EndDate)
		if err != nil {
			return nil, models.Pagination{}, fmt.Errorf("%w: endDate must look like %s", ErrInvalidInput, dateLayout)
		}
		f.To = d.AddDate(0, 0, 1)
	}

	txs, pg := s.store.ListTransactions(f, q.Page, q.Limit)
	out := make([]models.TransactionView, 0, len(txs))
	for _, t := range txs {
		v := models.TransactionView{Transaction: t}
		if u, err := s.store.GetUser(t.UserID); err == nil {
			v.User = &u
		}
		out = append(out, v)
	}
	return out, pg, nil
}
