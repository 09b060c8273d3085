package gateways

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// loadAWSConfig builds the SDK configuration for one service region.
// Explicit keys take precedence over the default provider chain, for
// setups where credentials come from the environment file rather than an
// instance profile.
func loadAWSConfig(ctx context.Context, region, accessKey, secretKey string) (aws.Config, error) {
	if accessKey != "" && secretKey != "" {
		return awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(region),
			awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
		)
	}
	return awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
}
