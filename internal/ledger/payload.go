package ledger

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Transaction payloads form a tagged union keyed by TxType. Each
// balance-affecting operation records a distinct payload shape.

// IssueData is the payload of an issue transaction, linking it to the
// certificate it was recorded for.
type IssueData struct {
	CertificateID string `json:"certificateId"`
}

// TransferData annotates a transfer transaction. Price is a display-side
// valuation of the transferred credits; the ledger's truth is the integer
// amount on the transaction itself.
type TransferData struct {
	Kind  string          `json:"type"`
	Price decimal.Decimal `json:"price"`
}

// RetireData carries the stated compliance purpose of a retirement.
type RetireData struct {
	Purpose string `json:"purpose,omitempty"`
}

// EncodePayload marshals a payload for storage on a transaction.
func EncodePayload(v any) (json.RawMessage, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode transaction payload: %w", err)
	}
	return b, nil
}

// DecodeIssueData decodes the payload of an issue transaction.
func DecodeIssueData(raw json.RawMessage) (*IssueData, error) {
	var d IssueData
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("failed to decode issue payload: %w", err)
	}
	return &d, nil
}

// DecodeTransferData decodes the payload of a transfer transaction.
func DecodeTransferData(raw json.RawMessage) (*TransferData, error) {
	var d TransferData
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("failed to decode transfer payload: %w", err)
	}
	return &d, nil
}

// DecodeRetireData decodes the payload of a retire transaction.
func DecodeRetireData(raw json.RawMessage) (*RetireData, error) {
	var d RetireData
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, fmt.Errorf("failed to decode retire payload: %w", err)
	}
	return &d, nil
}
