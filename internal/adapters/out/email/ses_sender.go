package email

import (
	"context"
	"fmt"
	"net/mail"

	"optistore/internal/core/domain/model/notification"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const charset = "UTF-8"

// SESAPI is the part of the SES client used for sending.
type SESAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESConfig configures the SES transport. Empty keys fall back to the default
// AWS credential chain.
type SESConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Sender          string
}

// SESSender delivers messages with Amazon SES.
type SESSender struct {
	client   SESAPI
	sender   string
	renderer *Renderer
}

// NewSESSender loads the AWS configuration and builds an SES client.
func NewSESSender(ctx context.Context, cfg SESConfig, renderer *Renderer) (*SESSender, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS SDK config: %w", err)
	}

	return NewSESSenderWithClient(ses.NewFromConfig(awsCfg), cfg.Sender, renderer)
}

// NewSESSenderWithClient builds a sender around an existing SES client.
func NewSESSenderWithClient(client SESAPI, sender string, renderer *Renderer) (*SESSender, error) {
	if sender == "" {
		return nil, fmt.Errorf("sender email address is not configured")
	}
	if renderer == nil {
		return nil, fmt.Errorf("renderer is required")
	}
	return &SESSender{client: client, sender: sender, renderer: renderer}, nil
}

func (s *SESSender) Send(ctx context.Context, m *notification.Message) error {
	rendered, err := s.renderer.Render(m)
	if err != nil {
		return err
	}

	to := m.ToEmail()
	if m.ToName() != "" {
		to = (&mail.Address{Name: m.ToName(), Address: m.ToEmail()}).String()
	}

	input := &ses.SendEmailInput{
		Source: aws.String(s.sender),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Charset: aws.String(charset),
				Data:    aws.String(rendered.Subject),
			},
			Body: &types.Body{
				Html: &types.Content{
					Charset: aws.String(charset),
					Data:    aws.String(rendered.HTML),
				},
				Text: &types.Content{
					Charset: aws.String(charset),
					Data:    aws.String(rendered.Text),
				},
			},
		},
	}

	if _, err = s.client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
