// Package mailer renders the notification template and delivers one
// message per giver over SMTP.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/template"
	"time"

	"golang.org/x/time/rate"
	"gopkg.in/mail.v2"

	"github.com/noelops/secret-santa/internal/logger"
	"github.com/noelops/secret-santa/internal/models"
	"github.com/noelops/secret-santa/internal/settings"
)

// ErrDeliveryFailed is returned when at least one message could not
// be sent; the per-recipient detail is in the Result slice.
var ErrDeliveryFailed = errors.New("delivery failed for one or more recipients")

// sendFunc abstracts the SMTP dialer so tests can fake transport.
type sendFunc func(...*mail.Message) error

// Result records the outcome of one send.
type Result struct {
	Recipient string
	Err       error
}

// Options configure delivery behavior.
type Options struct {
	// DryRun renders each message and writes it to stdout without
	// dialing the server.
	DryRun bool

	// SendInterval paces real sends. Zero means no pacing.
	SendInterval time.Duration
}

// Mailer delivers pairing notifications.
type Mailer struct {
	cfg     settings.Config
	rules   settings.Rules
	tmpl    *template.Template
	send    sendFunc
	limiter *rate.Limiter
	dryRun  bool
	log     *logger.Logger
}

// New creates a Mailer from validated settings. The template decides
// the body; subject and from-address come from the config section.
func New(s *settings.Settings, tmpl *template.Template, opts Options, log *logger.Logger) *Mailer {
	if log == nil {
		log = logger.Get()
	}

	var limiter *rate.Limiter
	if opts.SendInterval > 0 {
		limiter = rate.NewLimiter(rate.Every(opts.SendInterval), 1)
	}

	dialer := mail.NewDialer(
		s.Config.SMTP.Host,
		s.Config.SMTP.Port,
		s.Config.SMTP.User,
		s.Config.SMTP.Password,
	)

	return &Mailer{
		cfg:     s.Config,
		rules:   s.Rules,
		tmpl:    tmpl,
		send:    dialer.DialAndSend,
		limiter: limiter,
		dryRun:  opts.DryRun,
		log:     log,
	}
}

// LoadTemplate parses the mail body template from path.
func LoadTemplate(path string) (*template.Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template: %w", err)
	}
	tmpl, err := template.New("email").Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	return tmpl, nil
}

// templateData is what the body template gets to see.
type templateData struct {
	Sender       string
	Subject      string
	Giver        models.Participant
	Receiver     models.Participant
	LimitDollars float64
	OpeningDay   time.Time
}

// Deliver sends one message per pair, addressed to the giver. A
// failed send does not stop the remaining sends; the returned results
// carry the per-recipient outcomes and the error aggregates them.
func (m *Mailer) Deliver(ctx context.Context, pairing models.Pairing) ([]Result, error) {
	results := make([]Result, 0, len(pairing))
	failed := false

	for _, pair := range pairing {
		err := m.sendOne(ctx, pair, m.dryRun)
		if err != nil {
			failed = true
			m.log.Error().Err(err).Str("recipient", pair.Giver.Email).Msg("send failed")
		} else if !m.dryRun {
			m.log.Info().Str("recipient", pair.Giver.Email).Msg("sent")
		}
		results = append(results, Result{Recipient: pair.Giver.Email, Err: err})
	}

	if failed {
		return results, ErrDeliveryFailed
	}
	return results, nil
}

// SendTest sends a single real message to the configured testing
// address, with the tester standing in as both giver and receiver.
// Dry run is ignored: the point is to exercise the SMTP path.
func (m *Mailer) SendTest(ctx context.Context) error {
	pair := models.Pair{
		Giver:    models.Participant{Name: m.cfg.Testing.Name + " (giver)", Email: m.cfg.Testing.Email},
		Receiver: models.Participant{Name: m.cfg.Testing.Name + " (receiver)", Email: m.cfg.Testing.Email},
	}
	return m.sendOne(ctx, pair, false)
}

func (m *Mailer) sendOne(ctx context.Context, pair models.Pair, dryRun bool) error {
	body, err := m.render(pair)
	if err != nil {
		return err
	}

	if dryRun {
		fmt.Println(body)
		return nil
	}

	if m.limiter != nil {
		if err := m.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	msg := mail.NewMessage()
	msg.SetHeader("From", m.cfg.SMTP.User)
	msg.SetHeader("To", pair.Giver.Email)
	msg.SetHeader("Subject", m.cfg.EmailSubject)
	msg.SetBody("text/plain", body)

	if err := m.send(msg); err != nil {
		return fmt.Errorf("send to %s: %w", pair.Giver.Email, err)
	}
	return nil
}

func (m *Mailer) render(pair models.Pair) (string, error) {
	var buf strings.Builder
	data := templateData{
		Sender:       m.cfg.SMTP.User,
		Subject:      m.cfg.EmailSubject,
		Giver:        pair.Giver,
		Receiver:     pair.Receiver,
		LimitDollars: m.rules.LimitDollars,
		OpeningDay:   m.rules.OpeningDay,
	}
	if err := m.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template for %s: %w", pair.Giver.Email, err)
	}
	return buf.String(), nil
}
