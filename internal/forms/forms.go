// Package forms checks operator input before it reaches the gateway.
//
// Every check returns a *domain.Error of kind validation. A missing required
// field yields the generic "fill in the required fields" message; any other
// failure names the offending field.
package forms

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/proelectric/proadmin/internal/core/domain"
	"github.com/proelectric/proadmin/internal/core/ports"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("label"); name != "" {
			return name
		}
		return strings.ToLower(f.Name)
	})
	return v
}

type loginInput struct {
	Identifier string `label:"login" validate:"required"`
	Secret     string `label:"password" validate:"required"`
}

type orderInput struct {
	ClientName string `label:"client name" validate:"required"`
	Area       string `label:"area" validate:"omitempty,numeric"`
	Rooms      string `label:"rooms" validate:"omitempty,number"`
	WallType   string `label:"wall type" validate:"omitempty,oneof=concrete brick gasblock"`
}

type roleInput struct {
	Role string `label:"role" validate:"required,oneof=user manager admin"`
}

type amountInput struct {
	Amount   string `label:"amount" validate:"required,numeric"`
	Category string `label:"category" validate:"required"`
}

type transactionInput struct {
	AccountID int64  `label:"account" validate:"required,gt=0"`
	Type      string `label:"type" validate:"required,oneof=income expense"`
}

type broadcastInput struct {
	Message string `label:"message" validate:"required"`
	Target  string `label:"audience" validate:"omitempty,oneof=user manager admin owner"`
}

// Login checks the sign-in screen.
func Login(identifier, secret string) error {
	return check(loginInput{
		Identifier: strings.TrimSpace(identifier),
		Secret:     secret,
	})
}

// Order checks the manual order form. Area and rooms may be left blank.
func Order(f domain.OrderForm) error {
	return check(orderInput{
		ClientName: strings.TrimSpace(f.ClientName),
		Area:       strings.TrimSpace(f.Area),
		Rooms:      strings.TrimSpace(f.Rooms),
		WallType:   string(f.WallType),
	})
}

// RoleChange checks a role assignment. The owner is never a valid target
// and owner is never a role that can be handed out.
func RoleChange(target domain.User, role domain.Role) error {
	if !target.CanChangeRole() {
		return domain.ErrOwnerImmutable
	}
	return check(roleInput{Role: string(role)})
}

// Expense parses the expense form into an expense ready for
// AddOrderExpense. The id and date are left for the gateway to fill.
func Expense(amount, category, comment string) (domain.Expense, error) {
	in := amountInput{Amount: strings.TrimSpace(amount), Category: strings.TrimSpace(category)}
	if err := check(in); err != nil {
		return domain.Expense{}, err
	}
	v, err := positiveAmount(in.Amount)
	if err != nil {
		return domain.Expense{}, err
	}
	return domain.Expense{Amount: v, Category: in.Category, Comment: strings.TrimSpace(comment)}, nil
}

// Price parses the final price field.
func Price(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, domain.NewValidationError(domain.MsgValidation)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || validate.Var(s, "numeric") != nil {
		return 0, domain.NewValidationError("price must be a non-negative number.")
	}
	return v, nil
}

// Transaction parses the cash screen form.
func Transaction(accountID int64, txType domain.TransactionType, amount, category, comment string) (ports.NewTransactionInput, error) {
	if err := check(transactionInput{AccountID: accountID, Type: string(txType)}); err != nil {
		return ports.NewTransactionInput{}, err
	}
	in := amountInput{Amount: strings.TrimSpace(amount), Category: strings.TrimSpace(category)}
	if err := check(in); err != nil {
		return ports.NewTransactionInput{}, err
	}
	v, err := positiveAmount(in.Amount)
	if err != nil {
		return ports.NewTransactionInput{}, err
	}
	return ports.NewTransactionInput{
		AccountID: accountID,
		Amount:    v,
		Type:      txType,
		Category:  in.Category,
		Comment:   strings.TrimSpace(comment),
	}, nil
}

// Broadcast checks a broadcast before it is sent. An empty target
// addresses everyone.
func Broadcast(message string, target domain.Role) error {
	return check(broadcastInput{Message: strings.TrimSpace(message), Target: string(target)})
}

func positiveAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, domain.NewValidationError("amount must be greater than zero.")
	}
	return v, nil
}

func check(in any) error {
	if err := validate.Struct(in); err != nil {
		return translate(err)
	}
	return nil
}

func translate(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return domain.NewValidationError(domain.MsgValidation)
	}
	for _, fe := range ve {
		if fe.Tag() == "required" {
			return domain.NewValidationError(domain.MsgValidation)
		}
	}
	fe := ve[0]
	switch fe.Tag() {
	case "numeric", "number":
		return domain.NewValidationError(fmt.Sprintf("%s must be a number.", fe.Field()))
	case "oneof":
		return domain.NewValidationError(fmt.Sprintf("%s must be one of: %s.", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", ")))
	default:
		return domain.NewValidationError(fmt.Sprintf("%s is invalid.", fe.Field()))
	}
}
