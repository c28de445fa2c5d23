package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LoginRequest carries the credentials typed on the login screen.
type LoginRequest struct {
	ID       string
	Password string
}

// LoginOutcome is the logical result of a login the bank answered.
type LoginOutcome int

const (
	LoginDeclined LoginOutcome = iota
	LoginGranted
)

// LoginResponse is the bank's answer to a LoginRequest.
type LoginResponse struct {
	Outcome LoginOutcome
}

func (r LoginResponse) Granted() bool { return r.Outcome == LoginGranted }

// TransferRequest moves Amount from SenderID's primary account to RecipientID's.
type TransferRequest struct {
	SenderID    string
	RecipientID string
	Amount      decimal.Decimal
}

// TransferOutcome is the logical result of a transfer the bank answered.
type TransferOutcome int

const (
	TransferRefused TransferOutcome = iota
	TransferSucceeded
)

// TransferResponse is the bank's answer to a TransferRequest.
type TransferResponse struct {
	Outcome TransferOutcome
}

func (r TransferResponse) Succeeded() bool { return r.Outcome == TransferSucceeded }

// Receipt records a transfer applied by the ledger.
type Receipt struct {
	ID          string
	SenderID    string
	RecipientID string
	Amount      decimal.Decimal
	At          time.Time
}
