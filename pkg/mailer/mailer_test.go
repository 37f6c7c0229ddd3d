package mailer

import (
	"context"
	"net/smtp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nshuti7/wholesome-ug-bn/pkg/config"
	"github.com/Nshuti7/wholesome-ug-bn/pkg/jobs"
)

type capturedMail struct {
	addr string
	from string
	to   []string
	msg  string
}

func newCapturingMailer(out chan<- capturedMail) *Mailer {
	m := New(config.SMTPConfig{
		Host: "smtp.example.com",
		Port: 587,
		From: "no-reply@example.com",
	}, nil)
	m.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		out <- capturedMail{addr: addr, from: from, to: to, msg: string(msg)}
		return nil
	}
	return m
}

func TestMailerSendBuildsHTMLMessage(t *testing.T) {
	out := make(chan capturedMail, 1)
	m := newCapturingMailer(out)

	err := m.Send(context.Background(), "user@example.com", "Hello", "<p>hi</p>")
	require.NoError(t, err)

	mail := <-out
	assert.Equal(t, "smtp.example.com:587", mail.addr)
	assert.Equal(t, "no-reply@example.com", mail.from)
	assert.Equal(t, []string{"user@example.com"}, mail.to)
	assert.Contains(t, mail.msg, "Subject: Hello")
	assert.Contains(t, mail.msg, "Content-Type: text/html")
	assert.Contains(t, mail.msg, "<p>hi</p>")
}

func TestMailerSendRejectsEmptyRecipient(t *testing.T) {
	m := New(config.SMTPConfig{Host: "localhost", Port: 25}, nil)
	err := m.Send(context.Background(), "", "Hello", "body")
	require.Error(t, err)
}

func TestOTPSenderDispatchesThroughPool(t *testing.T) {
	out := make(chan capturedMail, 1)
	m := newCapturingMailer(out)

	pool := jobs.NewPool("mail", jobs.PoolConfig{Workers: 1}, nil)
	pool.Start(context.Background())
	defer pool.Stop()

	sender := NewOTPSender(m, pool)
	err := sender.SendOTP(context.Background(), "Grace", "grace@example.com", "4821")
	require.NoError(t, err)

	select {
	case mail := <-out:
		assert.Equal(t, []string{"grace@example.com"}, mail.to)
		assert.Contains(t, mail.msg, "4821")
		assert.Contains(t, mail.msg, "Grace")
	case <-time.After(2 * time.Second):
		t.Fatal("otp email was never dispatched")
	}
}

func TestOTPSenderFailsWhenPoolStopped(t *testing.T) {
	m := newCapturingMailer(make(chan capturedMail, 1))
	pool := jobs.NewPool("mail", jobs.PoolConfig{}, nil)

	sender := NewOTPSender(m, pool)
	err := sender.SendOTP(context.Background(), "Grace", "grace@example.com", "4821")
	require.Error(t, err)
}
