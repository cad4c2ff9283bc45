package utils

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestNewBookingReferenceShape(t *testing.T) {
	token, err := NewBookingReference(42)
	if err != nil {
		t.Fatalf("token generation error: %v", err)
	}
	decoded, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		t.Fatalf("token is not valid base64: %v", err)
	}
	parts := strings.Split(string(decoded), "-")
	if len(parts) != 4 {
		t.Fatalf("decoded token has %d parts, want 4: %q", len(parts), decoded)
	}
	if parts[0] != "LOCOTRANZ" {
		t.Fatalf("token prefix %q, want LOCOTRANZ", parts[0])
	}
	if parts[1] != "42" {
		t.Fatalf("token schedule id %q, want 42", parts[1])
	}
	if len(parts[3]) != 8 {
		t.Fatalf("random suffix has %d characters, want 8", len(parts[3]))
	}
}

func TestNewBookingReferenceUnique(t *testing.T) {
	// Same schedule, same second: the random suffix must still separate them.
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := NewBookingReference(7)
		if err != nil {
			t.Fatalf("token generation error: %v", err)
		}
		if seen[token] {
			t.Fatalf("duplicate token generated: %q", token)
		}
		seen[token] = true
	}
}

func TestNewTransactionIDShape(t *testing.T) {
	txn, err := NewTransactionID()
	if err != nil {
		t.Fatalf("transaction id generation error: %v", err)
	}
	if !strings.HasPrefix(txn, "TXN-") {
		t.Fatalf("transaction id %q should start with TXN-", txn)
	}
	parts := strings.Split(txn, "-")
	if len(parts) != 3 {
		t.Fatalf("transaction id has %d parts, want 3: %q", len(parts), txn)
	}
}
