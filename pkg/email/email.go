package email

import (
	"fmt"
	"net/smtp"
	"strings"
	"text/template"

	"github.com/printsetu/printsetu-api/internal/domain/entity"
	"github.com/printsetu/printsetu-api/internal/domain/enum"
)

// EmailConfig holds SMTP configuration
type EmailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	FromName     string
	FromEmail    string
}

// EmailService handles email sending
type EmailService struct {
	config EmailConfig
}

// NewEmailService creates a new email service
func NewEmailService(config EmailConfig) *EmailService {
	return &EmailService{config: config}
}

// Enabled reports whether SMTP is configured. Callers treat sending as best
// effort when it is not.
func (s *EmailService) Enabled() bool {
	return s.config.SMTPHost != ""
}

// SendInvoiceEmail sends the invoice breakdown for a freshly created order
func (s *EmailService) SendInvoiceEmail(toEmail string, order *entity.Order) error {
	htmlContent, err := s.renderInvoiceEmail(order)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	subject := fmt.Sprintf("Your PrintSetu order %s", order.InvoiceNo)
	message := s.buildHTMLEmail(toEmail, subject, htmlContent)

	return s.sendEmail(toEmail, message)
}

// sendEmail sends an email using SMTP
func (s *EmailService) sendEmail(to string, message []byte) error {
	addr := fmt.Sprintf("%s:%d", s.config.SMTPHost, s.config.SMTPPort)

	auth := smtp.PlainAuth("", s.config.SMTPUsername, s.config.SMTPPassword, s.config.SMTPHost)

	err := smtp.SendMail(addr, auth, s.config.FromEmail, []string{to}, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// buildHTMLEmail builds an HTML email message
func (s *EmailService) buildHTMLEmail(to, subject, htmlBody string) []byte {
	headers := fmt.Sprintf(
		"From: %s <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=\"UTF-8\"\r\n"+
			"\r\n",
		s.config.FromName,
		s.config.FromEmail,
		to,
		subject,
	)

	return []byte(headers + htmlBody)
}

type invoiceEmailData struct {
	InvoiceNo     string
	Quantity      int
	ItemsSubtotal string
	Charges       string
	TaxLabel      string
	TaxAmount     string
	RoundOff      string
	Total         string
}

// renderInvoiceEmail renders the invoice confirmation template
func (s *EmailService) renderInvoiceEmail(order *entity.Order) (string, error) {
	tmpl, err := template.New("invoice").Parse(invoiceTemplate)
	if err != nil {
		return "", err
	}

	data := invoiceEmailData{
		InvoiceNo:     order.InvoiceNo,
		Quantity:      order.Quantity,
		ItemsSubtotal: rupees(order.ItemsSubtotal),
		Charges:       rupees(order.PackagingCharge + order.PrintingCharge),
		TaxLabel:      taxLabel(order),
		TaxAmount:     rupees(order.TaxAmount),
		RoundOff:      rupees(order.RoundOff),
		Total:         rupees(order.Total),
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

func rupees(paise int64) string {
	return fmt.Sprintf("%.2f", float64(paise)/100)
}

func taxLabel(order *entity.Order) string {
	switch order.TaxRegime {
	case enum.TaxRegimeIntrastate:
		return fmt.Sprintf("CGST %.2f%% + SGST %.2f%%", order.CGSTRate, order.SGSTRate)
	case enum.TaxRegimeInterstate:
		return fmt.Sprintf("IGST %.2f%%", order.IGSTRate)
	default:
		return fmt.Sprintf("Tax %.2f%%", order.FlatTaxRate)
	}
}

const invoiceTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Order confirmed</h2>
  <p>Thank you for your order. Invoice <strong>{{.InvoiceNo}}</strong>, {{.Quantity}} units.</p>
  <table cellpadding="6" style="border-collapse: collapse;">
    <tr><td>Items subtotal</td><td align="right">&#8377;{{.ItemsSubtotal}}</td></tr>
    <tr><td>Packaging, forwarding &amp; printing</td><td align="right">&#8377;{{.Charges}}</td></tr>
    <tr><td>{{.TaxLabel}}</td><td align="right">&#8377;{{.TaxAmount}}</td></tr>
    <tr><td>Round off</td><td align="right">&#8377;{{.RoundOff}}</td></tr>
    <tr><td><strong>Total</strong></td><td align="right"><strong>&#8377;{{.Total}}</strong></td></tr>
  </table>
</body>
</html>`
