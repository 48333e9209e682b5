// Package mail delivers quote-request messages to the operational mailbox
// through an authenticated SMTP relay. Delivery outcomes are reported as an
// (ok, message) pair; nothing in this package raises to the caller.
package mail

import (
	"context"

	gomail "github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"github.com/santo-labs/santoscore/internal/validate"
)

// Config holds SMTP relay settings.
type Config struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	Username string `yaml:"username" mapstructure:"username"`
	Password string `yaml:"password" mapstructure:"password"`
	From     string `yaml:"from" mapstructure:"from"`
	To       string `yaml:"to" mapstructure:"to"`
}

// QuoteRequest is one user-submitted request for a contractor quote.
type QuoteRequest struct {
	ContractorName  string `json:"contractor_name"`
	ContractorEmail string `json:"contractor_email,omitempty"`
	RequesterEmail  string `json:"requester_email"`
	RequesterPhone  string `json:"requester_phone,omitempty"`
	ProblemText     string `json:"problem_text"`
}

// Validate checks the user-supplied fields before any network I/O. It
// returns a human-readable reason when the request is not submittable.
func (q QuoteRequest) Validate() (bool, string) {
	if !validate.IsValidEmail(q.RequesterEmail) {
		return false, "please provide a valid email address"
	}
	if q.ProblemText == "" {
		return false, "please describe the problem you need help with"
	}
	if q.ContractorName == "" {
		return false, "no contractor selected"
	}
	return true, ""
}

// Mailer sends quote requests over SMTP.
type Mailer struct {
	cfg Config
}

// NewMailer creates a Mailer with the given relay settings.
func NewMailer(cfg Config) *Mailer {
	return &Mailer{cfg: cfg}
}

// SendQuoteRequest validates, renders, and submits the quote request.
// Failures come back as (false, reason); the reason is safe to show inline.
func (m *Mailer) SendQuoteRequest(ctx context.Context, qr QuoteRequest) (bool, string) {
	if ok, reason := qr.Validate(); !ok {
		return false, reason
	}

	htmlBody, textBody, err := renderBodies(qr)
	if err != nil {
		zap.L().Error("mail: render quote request", zap.Error(err))
		return false, "could not prepare the quote request message"
	}

	msg := gomail.NewMsg()
	if err := msg.From(m.cfg.From); err != nil {
		zap.L().Error("mail: invalid from address", zap.String("from", m.cfg.From), zap.Error(err))
		return false, "mail relay is misconfigured"
	}
	if err := msg.To(m.cfg.To); err != nil {
		zap.L().Error("mail: invalid to address", zap.String("to", m.cfg.To), zap.Error(err))
		return false, "mail relay is misconfigured"
	}
	msg.Subject("Quote request: " + qr.ContractorName)
	msg.SetBodyString(gomail.TypeTextPlain, textBody)
	msg.AddAlternativeString(gomail.TypeTextHTML, htmlBody)

	client, err := gomail.NewClient(m.cfg.Host,
		gomail.WithPort(m.cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(m.cfg.Username),
		gomail.WithPassword(m.cfg.Password),
	)
	if err != nil {
		zap.L().Error("mail: create smtp client", zap.Error(err))
		return false, "could not connect to the mail relay"
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		zap.L().Error("mail: send quote request",
			zap.String("contractor", qr.ContractorName),
			zap.Error(err),
		)
		return false, "the quote request could not be delivered, please try again later"
	}

	zap.L().Info("mail: quote request sent",
		zap.String("contractor", qr.ContractorName),
	)
	return true, "your quote request has been sent"
}
