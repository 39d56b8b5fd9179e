package purchases

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"milonga/globals"
	"milonga/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/mongo"
)

// ReceiptPayload builds the signed string embedded in a receipt's QR code:
// purchaseID|paymentID|timestamp|signature.
func ReceiptPayload(purchaseID, paymentID string, issuedAt time.Time) string {
	data := fmt.Sprintf("%s|%s|%d", purchaseID, paymentID, issuedAt.Unix())

	h := hmac.New(sha256.New, globals.JwtSecret)
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))

	return fmt.Sprintf("%s|%s", data, sig)
}

// VerifyReceiptPayload checks the HMAC on a scanned receipt payload.
func VerifyReceiptPayload(payload string) bool {
	idx := strings.LastIndex(payload, "|")
	if idx < 0 {
		return false
	}
	data, sig := payload[:idx], payload[idx+1:]

	h := hmac.New(sha256.New, globals.JwtSecret)
	h.Write([]byte(data))
	expected := base64.StdEncoding.EncodeToString(h.Sum(nil))

	return hmac.Equal([]byte(sig), []byte(expected))
}

// PrintReceipt renders a purchase receipt PDF with a signed QR code. Users
// can only print their own receipts.
func PrintReceipt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if userID == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	paymentID := ps.ByName("paymentid")
	purchase, err := FindByPaymentID(r.Context(), paymentID)
	if err == mongo.ErrNoDocuments {
		http.Error(w, "Purchase not found", http.StatusNotFound)
		return
	} else if err != nil {
		http.Error(w, "Failed to fetch purchase", http.StatusInternalServerError)
		return
	}
	if purchase.UserID != userID {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	qrPayload := ReceiptPayload(purchase.PurchaseID, purchase.PaymentID, time.Now())
	qrPNG, err := qrcode.Encode(qrPayload, qrcode.Medium, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Comprobante de compra")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Compra: %s", purchase.PurchaseID))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Transaccion: %s", purchase.PaymentID))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Tipo: %s", purchase.PurchaseType))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Metodo de pago: %s", purchase.PaymentMethod))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Importe: $%.2f", purchase.Price))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Fecha: %s", purchase.PurchaseDate.Format("02/01/2006 15:04")))
	pdf.Ln(12)

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=receipt-"+purchase.PurchaseID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
