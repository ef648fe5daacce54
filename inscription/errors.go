package inscription

import "github.com/pkg/errors"

var (
	// ErrInsufficientFunds is returned when the funding pool runs out before
	// a transaction's outputs and fee are covered.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrChangeBelowMinimum is returned when splitting funds would leave less
	// change than MinPrepareChange.
	ErrChangeBelowMinimum = errors.New("change below minimum")
)
