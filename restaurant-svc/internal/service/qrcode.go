package service

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(orderNumber string) ([]byte, error)
}

// ReceiptQRGenerator encodes the link to an order's receipt page as a PNG.
type ReceiptQRGenerator struct {
	BaseURL string
	Size    int
}

func (g ReceiptQRGenerator) Link(orderNumber string) string {
	return fmt.Sprintf("%s/receipt?order=%s", strings.TrimRight(g.BaseURL, "/"), url.QueryEscape(orderNumber))
}

func (g ReceiptQRGenerator) Generate(orderNumber string) ([]byte, error) {
	size := g.Size
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(g.Link(orderNumber), qrcode.Medium, size)
}
