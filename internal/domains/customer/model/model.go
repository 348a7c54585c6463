package model

import (
	"pmsconsole/shared/model"
)

const (
	EntityName = "customer"
	Path       = "/customers"

	OpList     = "list"
	OpGet      = "get"
	OpBookings = "bookings"

	FieldSearch = "search"
)

type Customer struct {
	ID            int64       `json:"id"`
	Name          string      `json:"name"`
	Email         string      `json:"email"`
	Phone         string      `json:"phone"`
	Address       string      `json:"address"`
	IDProofType   string      `json:"id_proof_type"`
	IDProofNumber string      `json:"id_proof_number"`
	BalanceDue    model.Money `json:"balance_due"`
	model.Metadata
}

// Owes reports whether the customer has an outstanding balance.
func (c Customer) Owes() bool {
	return c.BalanceDue.Cents() > 0
}
