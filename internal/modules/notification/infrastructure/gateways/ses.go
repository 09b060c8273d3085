package gateways

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/saransh1220/notify-dispatch/internal/modules/notification/domain"
)

// sesAPI is the slice of the SES client this adapter uses.
type sesAPI interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// SESEmailGateway sends email through AWS SES.
type SESEmailGateway struct {
	client sesAPI
}

func NewSESEmailGateway(ctx context.Context, region, accessKey, secretKey string) (*SESEmailGateway, error) {
	cfg, err := loadAWSConfig(ctx, region, accessKey, secretKey)
	if err != nil {
		return nil, err
	}
	return &SESEmailGateway{client: ses.NewFromConfig(cfg)}, nil
}

func (g *SESEmailGateway) Send(ctx context.Context, msg domain.EmailMessage) error {
	charset := "UTF-8"
	_, err := g.client.SendEmail(ctx, &ses.SendEmailInput{
		Source:      &msg.From,
		Destination: &types.Destination{ToAddresses: []string{msg.To}},
		Message: &types.Message{
			Subject: &types.Content{Data: &msg.Subject, Charset: &charset},
			Body: &types.Body{
				Html: &types.Content{Data: &msg.HTML, Charset: &charset},
				Text: &types.Content{Data: &msg.Text, Charset: &charset},
			},
		},
	})
	return err
}
