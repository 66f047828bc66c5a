package services

import (
	"admission-portal/config"
	"admission-portal/logger"
	"admission-portal/models"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jung-kurt/gofpdf"
	"gopkg.in/gomail.v2"
)

// GenerateReceiptPDF writes a payment receipt PDF for a settled ledger entry
// and returns the file path.
func GenerateReceiptPDF(entry models.LedgerEntry, dir string) (string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Payment Receipt")
	pdf.Ln(12)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(40, 10, fmt.Sprintf("Roll Number: %s", entry.RollNumber))
	pdf.Ln(8)
	pdf.Cell(40, 10, fmt.Sprintf("Student: %s", entry.StudentName))
	pdf.Ln(8)
	pdf.Cell(40, 10, fmt.Sprintf("Course: %s", entry.Course))
	pdf.Ln(8)
	pdf.Cell(40, 10, fmt.Sprintf("Order ID: %s", entry.OrderID))
	pdf.Ln(8)
	pdf.Cell(40, 10, fmt.Sprintf("Payment ID: %s", entry.PaymentID))
	pdf.Ln(8)
	pdf.Cell(40, 10, fmt.Sprintf("Amount: %.2f %s", entry.Amount, entry.Currency))
	pdf.Ln(8)
	pdf.Cell(40, 10, fmt.Sprintf("Date: %s", entry.PaymentDate.Format("02 Jan 2006 15:04")))
	pdf.Ln(12)
	pdf.Cell(40, 10, "Thank you for your payment.")

	fileName := filepath.Join(dir, fmt.Sprintf("receipt_%s.pdf", entry.OrderID))
	if err := pdf.OutputFileAndClose(fileName); err != nil {
		return "", fmt.Errorf("error generating receipt PDF: %w", err)
	}

	return fileName, nil
}

// SendReceiptEmail generates the receipt PDF and emails it to the student.
// Called by the Kafka consumer after a payment.settled event.
func SendReceiptEmail(entry models.LedgerEntry, to string) error {
	if to == "" {
		logger.Warn("No email on file for roll %s, skipping receipt", entry.RollNumber)
		return nil
	}

	pdfPath, err := GenerateReceiptPDF(entry, os.TempDir())
	if err != nil {
		return err
	}
	defer os.Remove(pdfPath)

	body := fmt.Sprintf(
		"<p>Dear %s,</p><p>Your payment of <b>%.2f %s</b> for <b>%s</b> has been received.</p>"+
			"<p>Order ID: %s</p><p>Your receipt is attached.</p>",
		entry.StudentName, entry.Amount, entry.Currency, entry.Course, entry.OrderID)

	return sendEmail(to, "Payment Receipt - Admission Portal", body, pdfPath)
}

// sendEmail sends an HTML email via SMTP with an optional attachment.
func sendEmail(to, subject, body string, attachment ...string) error {
	from := config.AppConfig.EmailFrom
	if from == "" {
		from = config.AppConfig.SMTPUser
	}
	if from == "" {
		return fmt.Errorf("email sender not configured (set EMAIL_FROM or SMTP_USER)")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if len(attachment) > 0 && attachment[0] != "" {
		m.Attach(attachment[0])
	}

	port := 587
	if p := config.AppConfig.SMTPPort; p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	smtpUser := config.AppConfig.SMTPUser
	smtpPass := config.AppConfig.SMTPPass
	if smtpUser == "" || smtpPass == "" {
		return fmt.Errorf("smtp credentials not configured (set SMTP_USER and SMTP_PASS)")
	}

	d := gomail.NewDialer(config.AppConfig.SMTPHost, port, smtpUser, smtpPass)

	if err := d.DialAndSend(m); err != nil {
		logger.Error("Failed to send email to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	logger.Info("Email sent to: %s", to)
	return nil
}
