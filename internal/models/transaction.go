// Package models defines the expense record and the parsed-expense value that
// flows between the parsers, the categorizer, the store and the API surface.
package models

import (
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"spendscribe/internal/errs"
)

// Transaction is one persisted expense record. The id is assigned by the
// store on creation and immutable thereafter.
type Transaction struct {
	ID   primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Item string             `json:"item" bson:"item"`
	Cost float64            `json:"cost" bson:"cost"`
	Date time.Time          `json:"date" bson:"date"`

	CategoryFlags `bson:",inline"`
}

// Validate checks the invariants a record must satisfy before it is written.
func (t Transaction) Validate() error {
	if t.Item == "" {
		return &errs.ValidationError{Field: "item", Reason: "must not be empty"}
	}
	if t.Cost < 0 {
		return &errs.ValidationError{Field: "cost", Reason: "must not be negative"}
	}
	return nil
}

// ParsedExpense is the structured result of parsing a free-text utterance.
// The amount is kept as a decimal until it crosses the storage boundary so
// two-decimal currency precision survives extraction.
type ParsedExpense struct {
	Amount decimal.Decimal
	Item   string
	Date   time.Time
}

// CostValue returns the amount rounded to two decimals as the float64 the
// document store persists.
func (p ParsedExpense) CostValue() float64 {
	v, _ := p.Amount.Round(2).Float64()
	return v
}
