package email

import (
	"context"
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/jwalitptl/club-admin-api/internal/config"
	"github.com/jwalitptl/club-admin-api/internal/model"
)

type Service interface {
	SendReceipt(ctx context.Context, order *model.Order) error
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

// NewService returns an SMTP sender, or a no-op one when SMTP is not
// configured.
func NewService(cfg config.SMTPConfig) Service {
	if !cfg.Enabled() {
		return Noop{}
	}
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) SendReceipt(ctx context.Context, order *model.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg, err := BuildReceipt(s.from, order)
	if err != nil {
		return err
	}
	if err := s.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send receipt for order %d: %w", order.ID, err)
	}
	return nil
}

// BuildReceipt renders the receipt for a charged order.
func BuildReceipt(from string, order *model.Order) (*gomail.Message, error) {
	if order.Member == nil || order.Member.Email == "" {
		return nil, fmt.Errorf("order %d has no member email", order.ID)
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Hello %s,\n\nYour tab has been settled.\n\n", order.Member.Name)
	for _, item := range order.Items {
		fmt.Fprintf(&body, "%d x %s  %s\n", item.Qty, item.Name, item.Subtotal().StringFixed(2))
	}
	fmt.Fprintf(&body, "\nTotal charged: %s\n", order.Total.StringFixed(2))
	if order.ChargedAt != nil {
		fmt.Fprintf(&body, "Charged on: %s\n", order.ChargedAt.Format("2 Jan 2006 15:04"))
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", order.Member.Email)
	msg.SetHeader("Subject", fmt.Sprintf("Receipt for order #%d", order.ID))
	msg.SetBody("text/plain", body.String())
	return msg, nil
}

// Noop drops every message.
type Noop struct{}

func (Noop) SendReceipt(context.Context, *model.Order) error { return nil }
