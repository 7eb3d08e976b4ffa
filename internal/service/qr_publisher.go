package service

import (
	"bytes"
	"context"
	"log"
	"strings"

	"recibo/internal/config"
	"recibo/internal/port"
)

// qrPublisher encodes a document's public URL as a QR code and stores the
// image. Every failure here is recoverable: the caller records the returned
// warning and the owning operation still succeeds.
type qrPublisher struct {
	qr      port.QREncoder
	storage port.ObjectStorage
	s3cfg   config.S3Config
	appCfg  config.AppConfig
}

func (p *qrPublisher) publicURL(segment, documentID string) string {
	return strings.TrimRight(p.appCfg.PublicBaseURL, "/") + "/" + segment + "/" + documentID
}

// publish returns the stored image location, or the QR payload as a data URL
// when object storage is unavailable. An empty value with a non-empty
// warning means no usable QR artifact could be produced.
func (p *qrPublisher) publish(ctx context.Context, documentID, publicURL string) (value, warning string) {
	png, err := p.qr.EncodePNG(publicURL)
	if err != nil {
		log.Printf("%s: encoding qr code: %v", documentID, err)
		return "", "qr_code_not_generated"
	}

	uploadCtx := ctx
	if p.s3cfg.UploadTimeout > 0 {
		var cancel context.CancelFunc
		uploadCtx, cancel = context.WithTimeout(ctx, p.s3cfg.UploadTimeout)
		defer cancel()
	}

	key := documentID + ".png"
	if prefix := strings.TrimSuffix(p.s3cfg.QRPrefix, "/"); prefix != "" {
		key = prefix + "/" + key
	}
	out, err := p.storage.Upload(uploadCtx, port.UploadInput{
		Bucket:      p.s3cfg.Bucket,
		Key:         key,
		Body:        bytes.NewReader(png),
		ContentType: "image/png",
	})
	if err == nil {
		return out.Location, ""
	}
	log.Printf("%s: uploading qr code: %v", documentID, err)

	dataURL, err := p.qr.EncodeDataURL(publicURL)
	if err != nil {
		log.Printf("%s: encoding qr data url: %v", documentID, err)
		return "", "qr_code_not_stored"
	}
	return dataURL, "qr_code_not_uploaded"
}
