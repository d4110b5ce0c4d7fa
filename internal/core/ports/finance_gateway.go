package ports

import (
	"context"

	"github.com/proelectric/proadmin/internal/core/domain"
)

// NewTransactionInput is what the cash screen submits.
type NewTransactionInput struct {
	AccountID int64
	Amount    float64
	Type      domain.TransactionType
	Category  string
	Comment   string
}

// FinanceGateway is entirely client-side until the backend ships a ledger.
type FinanceGateway interface {
	GetFinanceAccounts(ctx context.Context) domain.Result[[]domain.FinanceAccount]
	GetFinanceTransactions(ctx context.Context, accountID int64) domain.Result[[]domain.FinanceTransaction]
	AddFinanceTransaction(ctx context.Context, in NewTransactionInput) domain.Result[domain.FinanceTransaction]
}

// BroadcastGateway is entirely client-side until the backend ships messaging.
type BroadcastGateway interface {
	GetBroadcastHistory(ctx context.Context) domain.Result[[]domain.Broadcast]
	SendBroadcast(ctx context.Context, message string, target domain.Role) domain.Result[domain.Broadcast]
}

// Dashboard is the home screen's joined batch.
type Dashboard struct {
	Orders []domain.Order
	Users  []domain.User
}

// Gateway is every operation a screen may invoke.
type Gateway interface {
	AuthGateway
	OrderGateway
	UserGateway
	FinanceGateway
	BroadcastGateway
	LoadDashboard(ctx context.Context, viewer domain.Role) (*Dashboard, error)
}
