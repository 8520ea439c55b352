// Package dynamodb is the credential store backed by a single DynamoDB table.
// Every user lives in one item keyed pk=sk="user#<userName>".
package dynamodb

import (
	"context"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"dentist/config"
	"dentist/internal/errors"
)

// API is the subset of the DynamoDB client the store uses.
type API interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Scan(ctx context.Context, params *dynamodb.ScanInput, optFns ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	CreateTable(ctx context.Context, params *dynamodb.CreateTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.CreateTableOutput, error)
	DescribeTable(ctx context.Context, params *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// NewClient builds a DynamoDB client from the dynamoDB config section.
// Static credentials are used when both keys are set; otherwise the default
// AWS credential chain applies.
func NewClient(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*dynamodb.Client, error) {
	ddb := cfg.DynamoDB

	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(ddb.Region),
		awsconfig.WithRetryMaxAttempts(ddb.MaxAttempts),
	}
	if ddb.AccessKeyID != "" && ddb.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(ddb.AccessKeyID, ddb.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load aws config")
	}

	client := dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if ddb.Endpoint != "" {
			o.BaseEndpoint = aws.String(ddb.Endpoint)
		}
	})

	logger.Info("DynamoDB client ready",
		slog.String("region", ddb.Region),
		slog.String("endpoint", ddb.Endpoint),
		slog.String("table", ddb.TableName()),
	)

	return client, nil
}
