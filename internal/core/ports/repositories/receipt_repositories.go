package repositories

import "github.com/SscSPs/rjb_tranz/internal/core/domain"

// ReceiptExporter turns a rendered receipt into a printable document.
type ReceiptExporter interface {
	Export(receipt domain.Receipt) ([]byte, error)
}
