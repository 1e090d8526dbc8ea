package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/rjb_tranz/internal/core/domain"
	"github.com/SscSPs/rjb_tranz/internal/models"
)

// ToModelTransaction converts a domain Transaction to its row form.
func ToModelTransaction(d domain.Transaction) (models.Transaction, error) {
	sender, err := json.Marshal(d.Sender)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("failed to encode sender: %w", err)
	}
	receiver, err := json.Marshal(d.Receiver)
	if err != nil {
		return models.Transaction{}, fmt.Errorf("failed to encode receiver: %w", err)
	}
	return models.Transaction{
		TransactionID:   d.ID,
		UniqueID:        d.UniqueID,
		FormatID:        d.FormatID,
		ClientName:      d.ClientName,
		ClientEmail:     d.ClientEmail,
		PhoneNumber:     d.PhoneNumber,
		Amount:          d.Amount,
		FromCurrency:    d.FromCurrency,
		ToCurrency:      d.ToCurrency,
		ExchangeRate:    d.ExchangeRate,
		FeeRate:         d.FeeRate,
		Fee:             d.Fee,
		FeeCurrency:     d.FeeCurrency,
		FeeOnSender:     d.FeeOnSender,
		ReceiverAmount:  d.ReceiverAmount,
		Sender:          sender,
		Receiver:        receiver,
		Status:          string(d.Status),
		TransactionType: string(d.TransactionType),
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainTransaction converts a transaction row to the domain type.
func ToDomainTransaction(m models.Transaction) (domain.Transaction, error) {
	var sender, receiver domain.Party
	if len(m.Sender) > 0 {
		if err := json.Unmarshal(m.Sender, &sender); err != nil {
			return domain.Transaction{}, fmt.Errorf("failed to decode sender of %s: %w", m.TransactionID, err)
		}
	}
	if len(m.Receiver) > 0 {
		if err := json.Unmarshal(m.Receiver, &receiver); err != nil {
			return domain.Transaction{}, fmt.Errorf("failed to decode receiver of %s: %w", m.TransactionID, err)
		}
	}
	return domain.Transaction{
		ID:              m.TransactionID,
		UniqueID:        m.UniqueID,
		FormatID:        m.FormatID,
		ClientName:      m.ClientName,
		ClientEmail:     m.ClientEmail,
		PhoneNumber:     m.PhoneNumber,
		Amount:          m.Amount,
		FromCurrency:    m.FromCurrency,
		ToCurrency:      m.ToCurrency,
		ExchangeRate:    m.ExchangeRate,
		FeeRate:         m.FeeRate,
		Fee:             m.Fee,
		FeeCurrency:     m.FeeCurrency,
		FeeOnSender:     m.FeeOnSender,
		ReceiverAmount:  m.ReceiverAmount,
		Sender:          sender,
		Receiver:        receiver,
		Status:          domain.TransactionStatus(m.Status),
		TransactionType: domain.TransactionType(m.TransactionType),
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}, nil
}

// ToDomainTransactionSlice converts rows to domain transactions, stopping at the first bad row.
func ToDomainTransactionSlice(ms []models.Transaction) ([]domain.Transaction, error) {
	out := make([]domain.Transaction, 0, len(ms))
	for _, m := range ms {
		d, err := ToDomainTransaction(m)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}
