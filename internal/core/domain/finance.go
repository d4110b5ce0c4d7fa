package domain

import "time"

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// FinanceAccount is a cash desk or bank account in the ledger.
type FinanceAccount struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
	Type    string  `json:"type"`
}

// FinanceTransaction is one ledger entry.
type FinanceTransaction struct {
	ID        string          `json:"id"`
	AccountID int64           `json:"accountId"`
	Amount    float64         `json:"amount"`
	Type      TransactionType `json:"type"`
	Category  string          `json:"category"`
	Comment   string          `json:"comment"`
	CreatedAt time.Time       `json:"createdAt"`
}

// Broadcast is a message sent to every staff member holding TargetRole.
// An empty TargetRole addresses everyone.
type Broadcast struct {
	ID         string    `json:"id"`
	Message    string    `json:"message"`
	TargetRole Role      `json:"targetRole,omitempty"`
	SentAt     time.Time `json:"sentAt"`
	Recipients int       `json:"recipients"`
}
