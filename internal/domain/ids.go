package domain

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

const idSuffixAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// NewDocumentID builds a generated identifier: prefix + millisecond
// timestamp + 5-char random suffix. Collisions are vanishingly unlikely but
// not impossible; the unique index on the column is the real guarantee.
func NewDocumentID(prefix string) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteString(strconv.FormatInt(time.Now().UnixMilli(), 10))
	for i := 0; i < 5; i++ {
		b.WriteByte(idSuffixAlphabet[rand.Intn(len(idSuffixAlphabet))])
	}
	return b.String()
}

// NewReceiptID returns a generated receipt identifier (RCP...).
func NewReceiptID() string { return NewDocumentID("RCP") }

// NewInvoiceID returns a generated invoice identifier (INV...).
func NewInvoiceID() string { return NewDocumentID("INV") }

// NewClientID returns a generated client identifier (CLT...).
func NewClientID() string { return NewDocumentID("CLT") }
