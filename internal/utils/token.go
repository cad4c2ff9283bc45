package utils

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"time"
)

// referencePrefix brands booking references for passenger display.
const referencePrefix = "LOCOTRANZ"

// NewBookingReference mints the opaque reference token stored on a
// booking. The token embeds the schedule id and the creation time at
// second granularity, plus a random suffix so two bookings minted for
// the same schedule within the same second cannot collide. The result
// is base64-encoded; it identifies the booking to the passenger and is
// not a security credential.
func NewBookingReference(scheduleID uint64) (string, error) {
	suffix, err := randomHex(4)
	if err != nil {
		return "", err
	}
	raw := fmt.Sprintf("%s-%d-%d-%s", referencePrefix, scheduleID, time.Now().UTC().Unix(), suffix)
	return base64.StdEncoding.EncodeToString([]byte(raw)), nil
}

// NewTransactionID mints a payment transaction reference of the form
// TXN-<unix seconds>-<random hex>.
func NewTransactionID() (string, error) {
	suffix, err := randomHex(4)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("TXN-%d-%s", time.Now().UTC().Unix(), suffix), nil
}

// randomHex returns n random bytes hex-encoded (2n characters).
func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
