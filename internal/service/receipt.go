package service

import (
	"fmt"

	"github.com/skip2/go-qrcode"
)

type ReceiptQRGenerator interface {
	Generate(batchID string) ([]byte, error)
}

// DefaultReceiptQR encodes the customer receipt link for a settlement batch
// as a PNG QR code.
type DefaultReceiptQR struct {
	BaseURL string
}

func (g DefaultReceiptQR) Generate(batchID string) ([]byte, error) {
	qrData := fmt.Sprintf("%s/receipt.html?batch=%s", g.BaseURL, batchID)
	return qrcode.Encode(qrData, qrcode.Medium, 256)
}
