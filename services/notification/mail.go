package notification

import (
	"context"

	"okclinic/config"
	"okclinic/utils"
	"okclinic/utils/apperr"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

// MailConfig holds the SMTP settings of the clinic's outgoing mailbox.
type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// MailConfigFromApp reads the SMTP settings from the loaded configuration.
func MailConfigFromApp() MailConfig {
	return MailConfig{
		Host:     config.AppConfig.SMTPHost,
		Port:     config.AppConfig.SMTPPort,
		Username: config.AppConfig.SMTPUsername,
		Password: config.AppConfig.SMTPPassword,
		From:     config.AppConfig.MailFrom,
	}
}

// Configured reports whether enough is set to reach an SMTP server.
func (c MailConfig) Configured() bool {
	return c.Host != "" && c.From != ""
}

// MailNotifier sends email over SMTP.
type MailNotifier struct {
	cfg MailConfig
}

func NewMailNotifier(cfg MailConfig) *MailNotifier {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &MailNotifier{cfg: cfg}
}

func (n *MailNotifier) options() []mail.Option {
	opts := []mail.Option{
		mail.WithPort(n.cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if n.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(n.cfg.Username),
			mail.WithPassword(n.cfg.Password),
		)
	}
	return opts
}

func (n *MailNotifier) Send(ctx context.Context, to, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(n.cfg.From); err != nil {
		return apperr.Dispatch(err, "invalid sender address")
	}
	if err := msg.To(to); err != nil {
		return apperr.Dispatch(err, "invalid recipient address")
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	client, err := mail.NewClient(n.cfg.Host, n.options()...)
	if err != nil {
		return apperr.Dispatch(err, "failed to create mail client")
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return apperr.Dispatch(err, "failed to send mail")
	}
	utils.GetLogger().Debug("Mail sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

// LogNotifier writes messages to the log instead of delivering them.
// It stands in for SMTP during local development.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = utils.GetLogger()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Send(_ context.Context, to, subject, body string) error {
	n.logger.Info("Notification (not delivered)",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body))
	return nil
}

// NewNotifier returns a MailNotifier when SMTP is configured and a
// LogNotifier otherwise.
func NewNotifier(cfg MailConfig) Notifier {
	if cfg.Configured() {
		return NewMailNotifier(cfg)
	}
	utils.GetLogger().Warn("SMTP is not configured; notifications will only be logged")
	return NewLogNotifier(nil)
}
