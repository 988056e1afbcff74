package service

import (
	"strings"

	"github.com/skip2/go-qrcode"
)

// cartScheme prefixes QR payloads printed on physical cart labels.
const cartScheme = "smartcart://cart/"

type CartQRGenerator struct{}

func (CartQRGenerator) Encode(cartID string) ([]byte, error) {
	return qrcode.Encode(cartScheme+cartID, qrcode.Medium, 256)
}

// ParseCartCode extracts the cart identifier from a scanned QR payload.
// Labels printed before the scheme was introduced carry the bare identifier.
func ParseCartCode(payload string) string {
	payload = strings.TrimSpace(payload)
	if strings.HasPrefix(payload, cartScheme) {
		return strings.TrimPrefix(payload, cartScheme)
	}
	return payload
}

var _ QRGenerator = CartQRGenerator{}
