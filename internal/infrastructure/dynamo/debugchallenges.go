package dynamo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/campustrade/verify-api/internal/domain"
)

// DebugOtpRepo stores plaintext codes for transport-less environments.
// PK: email (lower-cased).
type DebugOtpRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewDebugOtpRepo(client *dynamodb.Client, tableName string) *DebugOtpRepo {
	return &DebugOtpRepo{client: client, tableName: tableName}
}

func (r *DebugOtpRepo) Put(ctx context.Context, d *domain.DebugOtp) error {
	item, err := attributevalue.MarshalMap(d)
	if err != nil {
		return fmt.Errorf("marshal debug otp: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *DebugOtpRepo) Delete(ctx context.Context, email string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("email", strings.ToLower(email)),
	})
	return err
}

func (r *DebugOtpRepo) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	return deleteExpired(ctx, r.client, r.tableName, "email", now)
}
