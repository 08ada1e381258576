package mail

import (
	"time"

	"gopkg.in/gomail.v2"
)

type NewLeadEmailData struct {
	ID          int64
	Name        string
	Company     string
	Email       string
	Phone       string
	Status      string
	Owner       string
	CreatedDate time.Time
}

// Dialer is satisfied by *gomail.Dialer.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type EmailSender struct {
	From   string
	To     []string
	Dialer Dialer
}
