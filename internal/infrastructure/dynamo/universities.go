package dynamo

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/campustrade/verify-api/internal/domain"
)

// UniversityRepo reads the university directory. PK: university_id.
// The directory is reference data; this service never writes to it.
type UniversityRepo struct {
	client    *dynamodb.Client
	tableName string
}

func NewUniversityRepo(client *dynamodb.Client, tableName string) *UniversityRepo {
	return &UniversityRepo{client: client, tableName: tableName}
}

func (r *UniversityRepo) Get(ctx context.Context, universityID string) (*domain.University, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key:       strKey("university_id", universityID),
	})
	if err != nil {
		return nil, err
	}
	if out.Item == nil {
		return nil, fmt.Errorf("university not found: %w", domain.ErrNotFound)
	}
	var u domain.University
	if err := attributevalue.UnmarshalMap(out.Item, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
