package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"

	"github.com/sivalingapandian/therapist-checkin/pkg/logging"
)

// SMSSender sends short messages to therapists.
type SMSSender interface {
	SendSMS(ctx context.Context, to, body string) error
}

type snsAPI interface {
	Publish(context.Context, *sns.PublishInput, ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSSender sends transactional SMS via AWS SNS.
type SNSSender struct {
	client   snsAPI
	senderID string
	logger   *logging.Logger
}

// NewSNSSender creates a new AWS SNS SMS sender. senderID is the alphanumeric
// sender shown to recipients where carriers support it; empty omits it.
func NewSNSSender(client snsAPI, senderID string, logger *logging.Logger) *SNSSender {
	if client == nil {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &SNSSender{client: client, senderID: senderID, logger: logger}
}

// SendSMS publishes a transactional SMS to the given E.164 number.
func (s *SNSSender) SendSMS(ctx context.Context, to, body string) error {
	if s.client == nil {
		return fmt.Errorf("notify: SNS client not configured")
	}

	attrs := map[string]types.MessageAttributeValue{
		"AWS.SNS.SMS.SMSType": {
			DataType:    aws.String("String"),
			StringValue: aws.String("Transactional"),
		},
	}
	if s.senderID != "" {
		attrs["AWS.SNS.SMS.SenderID"] = types.MessageAttributeValue{
			DataType:    aws.String("String"),
			StringValue: aws.String(s.senderID),
		}
	}

	output, err := s.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber:       aws.String(to),
		Message:           aws.String(body),
		MessageAttributes: attrs,
	})
	if err != nil {
		s.logger.Error("SNS publish failed", "error", err, "to", to)
		return fmt.Errorf("notify: SNS publish failed: %w", err)
	}

	s.logger.Info("SMS sent via SNS", "to", to, "message_id", aws.ToString(output.MessageId))
	return nil
}

// StubSMSSender is a no-op sender for testing.
type StubSMSSender struct {
	logger *logging.Logger
}

// NewStubSMSSender creates a stub SMS sender.
func NewStubSMSSender(logger *logging.Logger) *StubSMSSender {
	if logger == nil {
		logger = logging.Default()
	}
	return &StubSMSSender{logger: logger}
}

// SendSMS logs but doesn't send.
func (s *StubSMSSender) SendSMS(ctx context.Context, to, body string) error {
	s.logger.Info("stub SMS sender: would send", "to", to, "body_preview", truncate(body, 50))
	return nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

var _ SMSSender = (*SNSSender)(nil)
var _ SMSSender = (*StubSMSSender)(nil)
