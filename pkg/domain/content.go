package domain

import "github.com/shopspring/decimal"

// LoginContent is rendered by the login screen.
type LoginContent struct {
	// FieldsValid is true when both identifier and password are filled.
	FieldsValid bool
	// Granted is true once the bank accepted the credentials.
	Granted bool
}

// HomeContent is rendered by the home screen.
type HomeContent struct {
	// Balance of the primary account.
	Balance decimal.Decimal
}

// TransferContent is rendered by the transfer screen.
type TransferContent struct {
	FieldsValid bool
	Succeeded   bool
}
