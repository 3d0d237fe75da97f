package domain

import "errors"

// Business-rule rejections surfaced to the operator. Everything else is a
// transient failure that the next poll/push cycle absorbs.
var (
	ErrInsufficientStock  = errors.New("insufficient stock for order")
	ErrSessionAlreadyOpen = errors.New("a cash session is already open for this branch")
	ErrNoOpenSession      = errors.New("no cash session is open")
)

// CountedAmounts is the cashier's declared drawer count at session close.
type CountedAmounts struct {
	Cash     float64 `json:"cash"`
	Card     float64 `json:"card"`
	Transfer float64 `json:"transfer"`
	Other    float64 `json:"other"`
}

func (c CountedAmounts) Total() float64 {
	return c.Cash + c.Card + c.Transfer + c.Other
}
