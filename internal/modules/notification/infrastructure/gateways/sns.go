package gateways

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/aws/smithy-go"
	"github.com/saransh1220/notify-dispatch/internal/modules/notification/domain"
)

type snsAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSSMSGateway sends SMS through AWS SNS. Throttling responses map to the
// domain's rate-exceeded sentinel so the channel can soften its logging.
type SNSSMSGateway struct {
	client snsAPI
}

func NewSNSSMSGateway(ctx context.Context, region, accessKey, secretKey string) (*SNSSMSGateway, error) {
	cfg, err := loadAWSConfig(ctx, region, accessKey, secretKey)
	if err != nil {
		return nil, err
	}
	return &SNSSMSGateway{client: sns.NewFromConfig(cfg)}, nil
}

func (g *SNSSMSGateway) Send(ctx context.Context, msg domain.SMSMessage) error {
	_, err := g.client.Publish(ctx, &sns.PublishInput{
		PhoneNumber: &msg.To,
		Message:     &msg.Body,
		MessageAttributes: map[string]types.MessageAttributeValue{
			"AWS.SNS.SMS.SenderID": {
				DataType:    aws.String("String"),
				StringValue: aws.String(msg.From),
			},
		},
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "Throttled" {
			return fmt.Errorf("%w: %s", domain.ErrSMSRateLimited, apiErr.ErrorMessage())
		}
		return err
	}
	return nil
}
