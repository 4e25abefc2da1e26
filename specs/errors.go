package specs

import "errors"

var (
	// ErrDegeneratePopulation means CLTV is undefined for the population:
	// either no customer survived cleaning or every customer is a repeat
	// purchaser, making the churn rate zero.
	ErrDegeneratePopulation = errors.New("degenerate population")

	// ErrInsufficientPopulation means there are too few customers to form
	// four quartile tiers.
	ErrInsufficientPopulation = errors.New("insufficient population for segmentation")

	// ErrArithmetic means a computed value fell outside the finite decimal
	// range, for example through exponent overflow.
	ErrArithmetic = errors.New("arithmetic failure")

	// ErrMissingColumn means the source table lacks a required column.
	ErrMissingColumn = errors.New("missing column")

	// ErrUnsupportedFormat means the source file type cannot be loaded.
	ErrUnsupportedFormat = errors.New("unsupported input format")
)
