package port

// QREncoder encodes a URL into a QR code image.
type QREncoder interface {
	// EncodePNG returns the QR code as PNG bytes.
	EncodePNG(url string) ([]byte, error)
	// EncodeDataURL returns the QR code as a data: URL, usable directly as
	// an image source when object storage is unavailable.
	EncodeDataURL(url string) (string, error)
}
