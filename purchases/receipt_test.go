package purchases

import (
	"strings"
	"testing"
	"time"
)

func TestReceiptPayloadRoundTrip(t *testing.T) {
	payload := ReceiptPayload("p123", "PAY-456", time.Now())

	if !VerifyReceiptPayload(payload) {
		t.Error("freshly signed payload must verify")
	}
	if !strings.HasPrefix(payload, "p123|PAY-456|") {
		t.Errorf("unexpected payload shape: %q", payload)
	}
}

func TestReceiptPayloadTamperDetection(t *testing.T) {
	payload := ReceiptPayload("p123", "PAY-456", time.Now())

	tampered := strings.Replace(payload, "p123", "p999", 1)
	if VerifyReceiptPayload(tampered) {
		t.Error("tampered payload must not verify")
	}

	if VerifyReceiptPayload("not-a-payload") {
		t.Error("garbage must not verify")
	}
}
