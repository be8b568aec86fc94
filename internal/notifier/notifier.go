package notifier

import (
	"fmt"
	"log"

	gomail "gopkg.in/gomail.v2"

	"github.com/seqlab/triplex-go/internal/config"
)

const (
	subject  = "Triplex primer analysis results"
	textBody = "Your DNA sequence has been analyzed. The triplex primer list is attached."
	htmlBody = "<p>Your DNA sequence has been analyzed.</p><p>The triplex primer list is attached.</p>"
)

// DeliveryError means the result email could not be sent. Exactly one
// delivery attempt is made per completed pipeline.
type DeliveryError struct {
	Address string
	Err     error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("delivery to %s failed: %v", e.Address, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// Notifier sends result artifacts to submitters by email.
type Notifier struct {
	Mail config.MailConfig

	// send dispatches a composed message. Overridable for tests.
	send func(m *gomail.Message) error
}

func New(mail config.MailConfig) *Notifier {
	n := &Notifier{Mail: mail}
	n.send = func(m *gomail.Message) error {
		d := gomail.NewDialer(mail.Host, mail.Port, mail.Username, mail.Password)
		return d.DialAndSend(m)
	}
	return n
}

// SendResult emails the verified artifact as an attachment. The attachment
// keeps its fixed on-disk name.
func (n *Notifier) SendResult(address string, artifactPath string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", n.Mail.From)
	m.SetHeader("To", address)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", textBody)
	m.AddAlternative("text/html", htmlBody)
	m.Attach(artifactPath)

	if err := n.send(m); err != nil {
		log.Printf("error: failed to deliver results to %s: %v\n", address, err)
		return &DeliveryError{Address: address, Err: err}
	}

	log.Println("results delivered to " + address)
	return nil
}
