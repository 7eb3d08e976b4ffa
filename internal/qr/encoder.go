package qr

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"recibo/internal/port"
)

const imageSize = 256

type encoder struct{}

// NewEncoder creates a QREncoder producing 256x256 PNG codes.
func NewEncoder() port.QREncoder {
	return &encoder{}
}

func (e *encoder) EncodePNG(url string) ([]byte, error) {
	png, err := qrcode.Encode(url, qrcode.Medium, imageSize)
	if err != nil {
		return nil, fmt.Errorf("encoding qr code: %w", err)
	}
	return png, nil
}

func (e *encoder) EncodeDataURL(url string) (string, error) {
	png, err := e.EncodePNG(url)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
