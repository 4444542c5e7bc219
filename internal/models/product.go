// internal/models/product.go
package models

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

type ProductStatus string

const (
	ProductStatusAvailable ProductStatus = "Available"
	ProductStatusSold      ProductStatus = "Sold"
)

// Coin is a contract-side amount: integer minor units carried as a string.
type Coin struct {
	Denom  string `json:"denom"`
	Amount string `json:"amount"`
}

// Product mirrors the contract's product record. The collection is treated as
// a replaceable snapshot; individual fields are never mutated locally.
type Product struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Quantity uint64        `json:"quantity"`
	Price    Coin          `json:"price"`
	Owner    string        `json:"owner"`
	Status   ProductStatus `json:"status"`
}

func (p *Product) Available() bool {
	return p.Status == ProductStatusAvailable && p.Quantity > 0
}

// ProductDraft is the transient registration input; it is validated and
// discarded on submit, it never becomes part of controller state.
type ProductDraft struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Price    string `json:"price" validate:"required"`
	Quantity uint64 `json:"quantity" validate:"required,min=1"`
	Denom    string `json:"denom,omitempty"`
}

const DefaultDenom = "uxion"

// Coin converts the draft price into a contract Coin, enforcing that the
// amount is a positive whole number of minor units.
func (d *ProductDraft) Coin() (Coin, error) {
	amount, err := decimal.NewFromString(d.Price)
	if err != nil {
		return Coin{}, fmt.Errorf("invalid price %q: %w", d.Price, err)
	}
	if !amount.IsInteger() || amount.Sign() <= 0 {
		return Coin{}, errors.New("price must be a positive integer in minor units")
	}
	denom := d.Denom
	if denom == "" {
		denom = DefaultDenom
	}
	return Coin{Denom: denom, Amount: amount.String()}, nil
}

// TxResult is the opaque confirmation of a state-changing contract call.
type TxResult struct {
	TxHash  string `json:"tx_hash"`
	Height  int64  `json:"height"`
	GasUsed int64  `json:"gas_used"`
	RawLog  string `json:"raw_log,omitempty"`
}
