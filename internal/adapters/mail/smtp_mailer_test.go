package mail

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"github.com/broki/marketplace-api/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedMail struct {
	addr string
	auth smtp.Auth
	from string
	to   []string
	msg  string
}

func newTestMailer(cfg config.SMTPConfig, sendErr error) (*SMTPMailer, *capturedMail) {
	captured := &capturedMail{}
	m := NewSMTPMailer(cfg)
	m.send = func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		*captured = capturedMail{addr: addr, auth: a, from: from, to: to, msg: string(msg)}
		return sendErr
	}
	return m, captured
}

func TestSMTPMailer_Send(t *testing.T) {
	cfg := config.SMTPConfig{
		Host:        "smtp.example.com",
		Port:        587,
		Username:    "mailer",
		Password:    "secret",
		FromAddress: "no-reply@broki.in",
		FromName:    "Broki",
	}
	m, captured := newTestMailer(cfg, nil)

	err := m.Send(context.Background(), []string{"owner@cafe.in"}, "Your OTP Code", "Your OTP is 123456. It expires in 5 minutes.")
	require.NoError(t, err)

	assert.Equal(t, "smtp.example.com:587", captured.addr)
	assert.NotNil(t, captured.auth)
	assert.Equal(t, "no-reply@broki.in", captured.from)
	assert.Equal(t, []string{"owner@cafe.in"}, captured.to)
	assert.Contains(t, captured.msg, "From: Broki <no-reply@broki.in>\r\n")
	assert.Contains(t, captured.msg, "Subject: Your OTP Code\r\n")
	assert.Contains(t, captured.msg, "\r\n\r\nYour OTP is 123456. It expires in 5 minutes.\r\n")
}

func TestSMTPMailer_SendWithoutAuth(t *testing.T) {
	m, captured := newTestMailer(config.SMTPConfig{Host: "localhost", Port: 25, FromAddress: "a@b.in"}, nil)

	require.NoError(t, m.Send(context.Background(), []string{"x@y.in"}, "s", "b"))
	assert.Nil(t, captured.auth)
}

func TestSMTPMailer_SendError(t *testing.T) {
	m, _ := newTestMailer(config.SMTPConfig{Host: "localhost", Port: 25}, errors.New("550 mailbox unavailable"))

	err := m.Send(context.Background(), []string{"x@y.in"}, "s", "b")
	assert.EqualError(t, err, "550 mailbox unavailable")
}

func TestSMTPMailer_NoRecipients(t *testing.T) {
	m, _ := newTestMailer(config.SMTPConfig{}, nil)
	assert.Error(t, m.Send(context.Background(), nil, "s", "b"))
}
