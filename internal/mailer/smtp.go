package mailer

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
)

const (
	DefaultHost          = "smtp.gmail.com"
	DefaultPort          = 587
	DefaultSubjectPrefix = "Java Backend Jobs"
)

// ErrMissingCredentials is returned before any connection is opened
var ErrMissingCredentials = errors.New("email credentials not configured")

type Message struct {
	From     string
	To       string
	Password string
	Subject  string
	HTMLBody string
}

// Subject formats "<prefix> - YYYY-MM-DD"
func Subject(prefix string, now time.Time) string {
	if prefix == "" {
		prefix = DefaultSubjectPrefix
	}
	return fmt.Sprintf("%s - %s", prefix, now.Format("2006-01-02"))
}

// SMTPMailer submits mail through a relay that requires STARTTLS and AUTH PLAIN
type SMTPMailer struct {
	host      string
	port      int
	tlsConfig *tls.Config
	now       func() time.Time
}

func NewSMTPMailer(host string, port int) *SMTPMailer {
	if host == "" {
		host = DefaultHost
	}
	if port == 0 {
		port = DefaultPort
	}
	return &SMTPMailer{
		host: host,
		port: port,
		tlsConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
			ServerName: host,
		},
		now: time.Now,
	}
}

// WithTLSConfig overrides the config used for the STARTTLS upgrade
func (m *SMTPMailer) WithTLSConfig(cfg *tls.Config) *SMTPMailer {
	m.tlsConfig = cfg
	return m
}

func (m *SMTPMailer) Addr() string {
	return net.JoinHostPort(m.host, strconv.Itoa(m.port))
}

// Send delivers one HTML message. The session is closed on every path.
func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	if msg.From == "" || msg.To == "" || msg.Password == "" {
		return ErrMissingCredentials
	}

	body, err := m.compose(msg)
	if err != nil {
		return fmt.Errorf("failed to compose message: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	conn, err := (&net.Dialer{}).DialContext(ctx, "tcp", m.Addr())
	if err != nil {
		return fmt.Errorf("smtp dial %s: %w", m.Addr(), err)
	}
	//bounds the greeting and every command after it
	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			conn.Close()
			return fmt.Errorf("smtp set deadline: %w", err)
		}
	}

	c, err := smtp.NewClientStartTLS(conn, m.tlsConfig)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp starttls: %w", err)
	}
	defer c.Close()

	if err := c.Auth(sasl.NewPlainClient("", msg.From, msg.Password)); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}

	if err := c.SendMail(msg.From, []string{msg.To}, bytes.NewReader(body)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}

	if err := c.Quit(); err != nil {
		return fmt.Errorf("smtp quit: %w", err)
	}
	return nil
}

// compose writes a multipart/alternative message with a single text/html part
func (m *SMTPMailer) compose(msg Message) ([]byte, error) {
	var h mail.Header
	h.SetDate(m.now())
	h.SetAddressList("From", []*mail.Address{{Address: msg.From}})
	h.SetAddressList("To", []*mail.Address{{Address: msg.To}})
	h.SetSubject(msg.Subject)

	var buf bytes.Buffer
	iw, err := mail.CreateInlineWriter(&buf, h)
	if err != nil {
		return nil, err
	}

	var ph mail.InlineHeader
	ph.SetContentType("text/html", map[string]string{"charset": "utf-8"})
	pw, err := iw.CreatePart(ph)
	if err != nil {
		return nil, err
	}
	if _, err := pw.Write([]byte(msg.HTMLBody)); err != nil {
		return nil, err
	}
	if err := pw.Close(); err != nil {
		return nil, err
	}
	if err := iw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
