package dynamo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/campustrade/verify-api/internal/domain"
)

// ChallengeRepo manages OTP challenge records.
// PK: email_hash. A Put overwrites any prior challenge for the same email:
// a newly issued code supersedes the old one.
type ChallengeRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewChallengeRepo(client *dynamodb.Client, tableName string) *ChallengeRepo {
	return &ChallengeRepo{client: client, tableName: tableName}
}

func (r *ChallengeRepo) Put(ctx context.Context, c *domain.OtpChallenge) error {
	item, err := attributevalue.MarshalMap(c)
	if err != nil {
		return fmt.Errorf("marshal challenge: %w", err)
	}
	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      item,
	})
	return err
}

func (r *ChallengeRepo) Get(ctx context.Context, emailHash string) (*domain.OtpChallenge, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:      aws.String(r.tableName),
		Key:            strKey("email_hash", emailHash),
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("challenge not found: %w", domain.ErrNotFound)
	}
	var c domain.OtpChallenge
	if err := attributevalue.UnmarshalMap(out.Item, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// IncrementTries atomically bumps the attempt counter and returns the new
// value. The update is conditional on the record existing and the counter
// still being under max, so two racing mismatches cannot both slip past
// the budget. Returns domain.ErrTooManyAttempts when the condition fails.
func (r *ChallengeRepo) IncrementTries(ctx context.Context, emailHash string, max int) (int, error) {
	out, err := r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:           aws.String(r.tableName),
		Key:                 strKey("email_hash", emailHash),
		UpdateExpression:    aws.String("SET tries = tries + :one"),
		ConditionExpression: aws.String("attribute_exists(email_hash) AND tries < :max"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":one": numVal(1),
			":max": numVal(int64(max)),
		},
		ReturnValues: types.ReturnValueUpdatedNew,
	})
	if err != nil {
		var ccfe *types.ConditionalCheckFailedException
		if errors.As(err, &ccfe) {
			return 0, fmt.Errorf("attempt budget consumed: %w", domain.ErrTooManyAttempts)
		}
		return 0, err
	}
	n, ok := out.Attributes["tries"].(*types.AttributeValueMemberN)
	if !ok {
		return 0, fmt.Errorf("unexpected tries attribute in update response")
	}
	tries, err := strconv.Atoi(n.Value)
	if err != nil {
		return 0, fmt.Errorf("parse tries: %w", err)
	}
	return tries, nil
}

// Delete removes a challenge. Deleting an absent record is a no-op, which
// keeps success/expiry/exhaustion deletes idempotent under races.
func (r *ChallengeRepo) Delete(ctx context.Context, emailHash string) error {
	_, err := r.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("email_hash", emailHash),
	})
	return err
}

// DeleteExpired scans for challenges whose deadline passed before now and
// batch-deletes them. Returns the number of records removed.
func (r *ChallengeRepo) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	return deleteExpired(ctx, r.client, r.tableName, "email_hash", now)
}

// deleteExpired is shared by the challenge and debug repos: both key a
// single string attribute and carry a numeric expires_at.
func deleteExpired(ctx context.Context, client *dynamodb.Client, tableName, keyAttr string, now time.Time) (int, error) {
	var keys []map[string]types.AttributeValue
	var startKey map[string]types.AttributeValue

	for {
		out, err := client.Scan(ctx, &dynamodb.ScanInput{
			TableName:                aws.String(tableName),
			FilterExpression:         aws.String("expires_at < :now"),
			ProjectionExpression:     aws.String("#k"),
			ExpressionAttributeNames: map[string]string{"#k": keyAttr},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":now": numVal(now.Unix()),
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return 0, fmt.Errorf("scan expired: %w", err)
		}
		for _, item := range out.Items {
			if v, ok := item[keyAttr].(*types.AttributeValueMemberS); ok {
				keys = append(keys, strKey(keyAttr, v.Value))
			}
		}
		if out.LastEvaluatedKey == nil {
			break
		}
		startKey = out.LastEvaluatedKey
	}

	for _, chunk := range chunkKeys(keys, 25) {
		requests := make([]types.WriteRequest, 0, len(chunk))
		for _, key := range chunk {
			requests = append(requests, types.WriteRequest{
				DeleteRequest: &types.DeleteRequest{Key: key},
			})
		}
		_, err := client.BatchWriteItem(ctx, &dynamodb.BatchWriteItemInput{
			RequestItems: map[string][]types.WriteRequest{tableName: requests},
		})
		if err != nil {
			return 0, fmt.Errorf("batch delete expired: %w", err)
		}
	}
	return len(keys), nil
}
