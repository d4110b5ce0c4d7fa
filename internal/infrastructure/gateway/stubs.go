package gateway

import (
	"context"

	"github.com/proelectric/proadmin/internal/core/domain"
	"github.com/proelectric/proadmin/internal/core/ports"
)

// The finance ledger and broadcast messaging have no backend yet. Every
// operation here answers locally, never fails and never touches the network.
// A backend that ships later must return these same shapes.

const mainAccountID int64 = 1

func (g *Gateway) GetFinanceAccounts(_ context.Context) domain.Result[[]domain.FinanceAccount] {
	g.simulated("GetFinanceAccounts")
	return domain.Simulate([]domain.FinanceAccount{{
		ID:      mainAccountID,
		Name:    "Main cash desk",
		Balance: 0,
		Type:    "cash",
	}})
}

func (g *Gateway) GetFinanceTransactions(_ context.Context, _ int64) domain.Result[[]domain.FinanceTransaction] {
	g.simulated("GetFinanceTransactions")
	return domain.Simulate([]domain.FinanceTransaction{})
}

func (g *Gateway) AddFinanceTransaction(_ context.Context, in ports.NewTransactionInput) domain.Result[domain.FinanceTransaction] {
	g.simulated("AddFinanceTransaction")

	accountID := in.AccountID
	if accountID == 0 {
		accountID = mainAccountID
	}
	typ := in.Type
	if typ != domain.TransactionIncome && typ != domain.TransactionExpense {
		typ = domain.TransactionExpense
	}
	return domain.Simulate(domain.FinanceTransaction{
		ID:        g.newID(),
		AccountID: accountID,
		Amount:    finite(in.Amount),
		Type:      typ,
		Category:  in.Category,
		Comment:   in.Comment,
		CreatedAt: g.now(),
	})
}

func (g *Gateway) GetBroadcastHistory(_ context.Context) domain.Result[[]domain.Broadcast] {
	g.simulated("GetBroadcastHistory")
	return domain.Simulate([]domain.Broadcast{})
}

func (g *Gateway) SendBroadcast(_ context.Context, message string, target domain.Role) domain.Result[domain.Broadcast] {
	g.simulated("SendBroadcast")

	if !target.Valid() {
		target = ""
	}
	return domain.Simulate(domain.Broadcast{
		ID:         g.newID(),
		Message:    message,
		TargetRole: target,
		SentAt:     g.now(),
	})
}
