package http

import (
	"encoding/json"

	"github.com/aretw0/aura/pkg/domain"
	"github.com/shopspring/decimal"
)

// Wire shapes of the bank API. Amounts travel as JSON numbers; json.Number keeps
// every digit so decimals never pass through float64.

type loginBody struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}

type loginReply struct {
	Granted bool `json:"granted"`
}

type transferBody struct {
	Sender    string      `json:"sender"`
	Recipient string      `json:"recipient"`
	Amount    json.Number `json:"amount"`
}

type transferReply struct {
	Result bool `json:"result"`
}

type accountBody struct {
	ID      string      `json:"id"`
	Main    bool        `json:"main"`
	Balance json.Number `json:"balance"`
}

type errorReply struct {
	Error string `json:"error"`
}

func mapTransferToWire(req domain.TransferRequest) transferBody {
	return transferBody{
		Sender:    req.SenderID,
		Recipient: req.RecipientID,
		Amount:    json.Number(req.Amount.String()),
	}
}

func mapTransferFromWire(b transferBody) (domain.TransferRequest, error) {
	amount, err := decimal.NewFromString(b.Amount.String())
	if err != nil {
		return domain.TransferRequest{}, err
	}
	return domain.TransferRequest{
		SenderID:    b.Sender,
		RecipientID: b.Recipient,
		Amount:      amount,
	}, nil
}

func mapAccountsToWire(accounts []domain.UserAccount) []accountBody {
	res := make([]accountBody, len(accounts))
	for i, a := range accounts {
		res[i] = accountBody{
			ID:      a.ID,
			Main:    a.IsPrimary,
			Balance: json.Number(a.Balance.String()),
		}
	}
	return res
}

func mapAccountsFromWire(body []accountBody) ([]domain.UserAccount, error) {
	res := make([]domain.UserAccount, len(body))
	for i, a := range body {
		balance, err := decimal.NewFromString(a.Balance.String())
		if err != nil {
			return nil, err
		}
		res[i] = domain.UserAccount{ID: a.ID, IsPrimary: a.Main, Balance: balance}
	}
	return res, nil
}

func loginOutcome(granted bool) domain.LoginOutcome {
	if granted {
		return domain.LoginGranted
	}
	return domain.LoginDeclined
}

func transferOutcome(ok bool) domain.TransferOutcome {
	if ok {
		return domain.TransferSucceeded
	}
	return domain.TransferRefused
}
