package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
type EmailJobPayload struct {
	ToEmail        string `json:"to_email"`
	Subject        string `json:"subject"`
	Body           string `json:"body"`
	AttachmentPath string `json:"attachment_path"`
}

// ReportSender is satisfied by *infra.Mailer.
type ReportSender interface {
	SendReport(to, subject, body, attachmentPath string) error
}

// EmailWorker delivers exported inventory reports over SMTP.
type EmailWorker struct {
	mailer ReportSender
}

func NewEmailWorker(mailer ReportSender) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

var errEmptyRecipient = errors.New("email_worker: empty to_email")

// Process sends the report with its attachment. Malformed payloads fail every
// attempt and end up in the DLQ.
func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("email_worker: invalid payload: %w", err)
	}
	if payload.ToEmail == "" {
		return errEmptyRecipient
	}

	if err := w.mailer.SendReport(payload.ToEmail, payload.Subject, payload.Body, payload.AttachmentPath); err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Msg("email_worker: failed to send email")
		return err
	}
	log.Info().Str("to", payload.ToEmail).Str("attachment", payload.AttachmentPath).Msg("email_worker: report sent")
	return nil
}
