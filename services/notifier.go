package services

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pr-poehali-dev/admin-only-store/config"
	"github.com/pr-poehali-dev/admin-only-store/utils"
	"github.com/wneessen/go-mail"
)

const (
	smtpHost = "smtp.gmail.com"
	smtpPort = 465

	defaultSMSEndpoint     = "https://sms.ru/sms/send"
	defaultTelegramAPIBase = "https://api.telegram.org"

	smtpTimeout = 10 * time.Second
	httpTimeout = 5 * time.Second
)

// Notifier sends outbound messages through one of three channels. Every
// implementation must be safe for concurrent use; the services fire sends
// from detached goroutines.
type Notifier interface {
	// SendEmail submits an HTML email from the configured outbound mailbox
	SendEmail(to, subject, htmlBody string) error

	// SendSMS submits a text to the SMS gateway; the phone may contain
	// formatting characters, which are stripped before submission
	SendSMS(phone, text string) error

	// SendChatBotMessage posts a text to the configured chat-bot channel
	SendChatBotMessage(text string) error
}

// ChannelNotifier implements Notifier against Gmail SMTP, the sms.ru
// gateway and the Telegram Bot API. A channel whose credential is absent
// from configuration degrades to a logged no-op; it never errors.
type ChannelNotifier struct {
	cfg        *config.Config
	httpClient *http.Client

	// overridable in tests
	smsEndpoint     string
	telegramAPIBase string
}

// NewChannelNotifier creates a notifier from application configuration
func NewChannelNotifier(cfg *config.Config) *ChannelNotifier {
	return &ChannelNotifier{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: httpTimeout,
		},
		smsEndpoint:     defaultSMSEndpoint,
		telegramAPIBase: defaultTelegramAPIBase,
	}
}

// SendEmail submits an HTML email over implicit TLS. The From identity is
// the configured outbound mailbox.
func (n *ChannelNotifier) SendEmail(to, subject, htmlBody string) error {
	if !n.cfg.MailConfigured() {
		log.Printf("email channel not configured, skipping message to %s", to)
		return nil
	}

	msg := mail.NewMsg()
	if err := msg.From(n.cfg.MailFrom); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	client, err := mail.NewClient(smtpHost,
		mail.WithPort(smtpPort),
		mail.WithSSL(),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(n.cfg.MailFrom),
		mail.WithPassword(n.cfg.MailPassword),
		mail.WithTimeout(smtpTimeout),
	)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}

	if err := client.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// smsResponse is the sms.ru reply envelope (json=1 mode)
type smsResponse struct {
	Status string `json:"status"`
}

// SendSMS submits a text through the sms.ru gateway. Non-digit characters
// are stripped from the phone before submission.
func (n *ChannelNotifier) SendSMS(phone, text string) error {
	if !n.cfg.SMSConfigured() {
		log.Printf("SMS channel not configured, skipping message to %s", phone)
		return nil
	}

	form := url.Values{
		"api_id": {n.cfg.SMSAPIKey},
		"to":     {utils.CleanPhone(phone)},
		"msg":    {text},
		"json":   {"1"},
	}

	resp, err := n.httpClient.Post(n.smsEndpoint, "application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to call SMS gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("SMS gateway returned status %d", resp.StatusCode)
	}

	var result smsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode SMS gateway response: %w", err)
	}
	if result.Status != "OK" {
		return fmt.Errorf("SMS gateway rejected message: status %q", result.Status)
	}
	return nil
}

// telegramResponse is the Bot API reply envelope
type telegramResponse struct {
	OK bool `json:"ok"`
}

// SendChatBotMessage posts a text to the configured Telegram chat
func (n *ChannelNotifier) SendChatBotMessage(text string) error {
	if !n.cfg.TelegramConfigured() {
		log.Printf("chat-bot channel not configured, skipping message")
		return nil
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.telegramAPIBase, n.cfg.TelegramBotToken)
	form := url.Values{
		"chat_id":    {n.cfg.TelegramChatID},
		"text":       {text},
		"parse_mode": {"HTML"},
	}

	resp, err := n.httpClient.Post(endpoint, "application/x-www-form-urlencoded",
		strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to call chat-bot API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("chat-bot API returned status %d", resp.StatusCode)
	}

	var result telegramResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode chat-bot API response: %w", err)
	}
	if !result.OK {
		return fmt.Errorf("chat-bot API rejected message")
	}
	return nil
}

// dispatch runs one best-effort notification send. Failures are logged so
// they stay observable, and never reach the caller of the operation that
// triggered the send.
func dispatch(channel string, send func() error) {
	if err := send(); err != nil {
		log.Printf("%v", &NotificationError{Channel: channel, Err: err})
	}
}
