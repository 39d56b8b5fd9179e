package purchases

import (
	"fmt"
	"net/smtp"

	"milonga/config"
	"milonga/models"

	"github.com/jordan-wright/email"
	log "github.com/sirupsen/logrus"
)

// SendConfirmationEmail mails the buyer after a successful capture. Failures
// are logged and swallowed; a missing email never blocks the purchase.
func SendConfirmationEmail(user models.User, purchase models.VideoPurchase) {
	cfg := config.C
	if cfg.SMTPHost == "" || user.Email == "" {
		return
	}

	body := fmt.Sprintf(
		"Hola %s!\n\n"+
			"Tu compra fue procesada correctamente.\n\n"+
			"Compra: %s\n"+
			"Transaccion: %s\n"+
			"Importe: $%.2f\n\n"+
			"Ya tenes acceso al contenido desde tu cuenta.\n\n"+
			"Gracias!",
		user.Username, purchase.PurchaseID, purchase.PaymentID, purchase.Price,
	)

	e := email.NewEmail()
	e.From = cfg.SMTPFrom
	e.To = []string{user.Email}
	e.Subject = "Confirmación de compra"
	e.Text = []byte(body)

	addr := fmt.Sprintf("%s:%s", cfg.SMTPHost, cfg.SMTPPort)
	auth := smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost)

	if err := e.Send(addr, auth); err != nil {
		log.Warnf("Failed to send confirmation email to %s: %v", user.Email, err)
	}
}
