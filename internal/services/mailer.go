package services

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/virtualflux/mht-backend/internal/config"
)

// Mailer delivers a formatted message to a recipient address.
type Mailer interface {
	Send(to, subject, text, html string) error
}

// SESMailer sends mail through AWS SES.
type SESMailer struct {
	client *ses.Client
	from   string
}

// NewSESMailer creates the SES-backed mailer from the process configuration.
func NewSESMailer(cfg *config.Config) (*SESMailer, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background(),
		awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return &SESMailer{
		client: ses.NewFromConfig(awsCfg),
		from:   cfg.EmailFrom,
	}, nil
}

func (m *SESMailer) Send(to, subject, text, html string) error {
	body := &types.Body{
		Text: &types.Content{Data: aws.String(text)},
	}
	if html != "" {
		body.Html = &types.Content{Data: aws.String(html)}
	}

	input := &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body:    body,
		},
		Source: aws.String(m.from),
	}

	if _, err := m.client.SendEmail(context.Background(), input); err != nil {
		log.Printf("SES send error: %v", err)
		return fmt.Errorf("email send failed: %w", err)
	}
	return nil
}
