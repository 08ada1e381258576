package mail

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"

	"github.com/xavierca1/ligue-leads/internal/entity"
)

var newLeadTemplate = template.Must(template.New("new_lead").Parse(`<h2>Novo lead: {{.Name}}</h2>
<table>
  <tr><td>Empresa</td><td>{{.Company}}</td></tr>
  <tr><td>E-mail</td><td>{{.Email}}</td></tr>
  <tr><td>Telefone</td><td>{{.Phone}}</td></tr>
  <tr><td>Status</td><td>{{.Status}}</td></tr>
  <tr><td>Responsável</td><td>{{.Owner}}</td></tr>
  <tr><td>Criado em</td><td>{{.CreatedDate.Format "02/01/2006 15:04"}}</td></tr>
</table>
<p>Lead #{{.ID}}</p>
`))

func NewEmailSender(host string, port int, user, password, from string, to []string) *EmailSender {
	return &EmailSender{
		From:   from,
		To:     to,
		Dialer: gomail.NewDialer(host, port, user, password),
	}
}

// NotifyNewLead e-mails the configured recipients about lead.
func (s *EmailSender) NotifyNewLead(ctx context.Context, lead entity.Lead) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(s.To) == 0 {
		return nil
	}

	m, err := s.newLeadMessage(lead)
	if err != nil {
		return err
	}

	if err := s.Dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send new lead email: %w", err)
	}
	return nil
}

func (s *EmailSender) newLeadMessage(lead entity.Lead) (*gomail.Message, error) {
	data := NewLeadEmailData{
		ID:          lead.ID,
		Name:        lead.Name,
		Company:     lead.Company,
		Email:       lead.Email,
		Phone:       lead.Phone,
		Status:      lead.Status,
		Owner:       lead.Owner,
		CreatedDate: lead.CreatedDate,
	}

	var body bytes.Buffer
	if err := newLeadTemplate.Execute(&body, data); err != nil {
		return nil, fmt.Errorf("render new lead email: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", s.To...)
	m.SetHeader("Subject", fmt.Sprintf("Novo lead: %s (%s)", lead.Name, lead.Company))
	m.SetBody("text/html", body.String())
	return m, nil
}
