package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/Nshuti7/wholesome-ug-bn/pkg/jobs"
)

const otpSubject = "Your password reset code"

var otpTemplate = template.Must(template.New("otp").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <div style="max-width: 480px; margin: 0 auto; padding: 24px;">
    <h2 style="color: #2b6cb0;">Password reset</h2>
    <p>Hi {{.Name}},</p>
    <p>We received a request to reset the password for your account. Use the code below to continue:</p>
    <p style="font-size: 32px; font-weight: bold; letter-spacing: 8px; text-align: center; padding: 16px; background: #f7fafc; border-radius: 8px;">{{.Code}}</p>
    <p>The code expires in 5 minutes. If you did not request a reset, you can safely ignore this email.</p>
  </div>
</body>
</html>`))

// OTPSender renders and dispatches password reset codes through the
// background mail pool. Submit failures surface to the caller so a code
// is never stored without a queued delivery.
type OTPSender struct {
	mailer *Mailer
	pool   *jobs.Pool
}

func NewOTPSender(m *Mailer, pool *jobs.Pool) *OTPSender {
	return &OTPSender{mailer: m, pool: pool}
}

func (s *OTPSender) SendOTP(ctx context.Context, name, email, code string) error {
	var body bytes.Buffer
	data := struct{ Name, Code string }{Name: name, Code: code}
	if err := otpTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("mailer: render otp template: %w", err)
	}

	html := body.String()
	return s.pool.Submit(jobs.Task{
		Name: "otp-email",
		Run: func(taskCtx context.Context) error {
			return s.mailer.Send(taskCtx, email, otpSubject, html)
		},
	})
}
