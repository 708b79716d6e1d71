package directory

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/sivalingapandian/therapist-checkin/pkg/logging"
)

type dynamoAPI interface {
	PutItem(context.Context, *dynamodb.PutItemInput, ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(context.Context, *dynamodb.GetItemInput, ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	Scan(context.Context, *dynamodb.ScanInput, ...func(*dynamodb.Options)) (*dynamodb.ScanOutput, error)
	UpdateItem(context.Context, *dynamodb.UpdateItemInput, ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(context.Context, *dynamodb.DeleteItemInput, ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
}

// DynamoStore persists therapist records to a DynamoDB table keyed by id.
type DynamoStore struct {
	client    dynamoAPI
	tableName string
	logger    *logging.Logger
}

// NewDynamoStore builds a store backed by the provided DynamoDB client.
func NewDynamoStore(client dynamoAPI, tableName string, logger *logging.Logger) *DynamoStore {
	if client == nil {
		panic("directory: dynamodb client cannot be nil")
	}
	if tableName == "" {
		panic("directory: table name cannot be empty")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &DynamoStore{client: client, tableName: tableName, logger: logger}
}

// Put stores or replaces a therapist record.
func (s *DynamoStore) Put(ctx context.Context, t *Therapist) error {
	item, err := attributevalue.MarshalMap(t)
	if err != nil {
		return fmt.Errorf("directory: failed to marshal therapist: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("directory: failed to persist therapist: %w", err)
	}
	return nil
}

// GetByID retrieves a therapist record, returning nil when absent.
func (s *DynamoStore) GetByID(ctx context.Context, id string) (*Therapist, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key:       idKey(id),
	})
	if err != nil {
		return nil, fmt.Errorf("directory: failed to get therapist: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var t Therapist
	if err := attributevalue.UnmarshalMap(out.Item, &t); err != nil {
		return nil, fmt.Errorf("directory: failed to unmarshal therapist: %w", err)
	}
	return &t, nil
}

// ScanAll returns every therapist in the table. The directory is small by
// design, so a full scan with pagination is acceptable here.
func (s *DynamoStore) ScanAll(ctx context.Context) ([]*Therapist, error) {
	var (
		therapists []*Therapist
		startKey   map[string]types.AttributeValue
	)
	for {
		out, err := s.client.Scan(ctx, &dynamodb.ScanInput{
			TableName:         aws.String(s.tableName),
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, fmt.Errorf("directory: failed to scan therapists: %w", err)
		}
		var page []*Therapist
		if err := attributevalue.UnmarshalListOfMaps(out.Items, &page); err != nil {
			return nil, fmt.Errorf("directory: failed to unmarshal therapists: %w", err)
		}
		therapists = append(therapists, page...)
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return therapists, nil
}

// UpdateFields applies a partial update built from the supplied fields. The
// id attribute is never part of the expression even if present in fields.
func (s *DynamoStore) UpdateFields(ctx context.Context, id string, fields map[string]string) error {
	expr := ""
	names := make(map[string]string)
	values := make(map[string]types.AttributeValue)
	for _, key := range []string{"name", "email", "phone"} {
		value, ok := fields[key]
		if !ok {
			continue
		}
		if expr != "" {
			expr += ", "
		}
		expr += fmt.Sprintf("#%s = :%s", key, key)
		names["#"+key] = key
		values[":"+key] = &types.AttributeValueMemberS{Value: value}
	}
	if expr == "" {
		return nil
	}

	_, err := s.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName:                 aws.String(s.tableName),
		Key:                       idKey(id),
		UpdateExpression:          aws.String("SET " + expr),
		ExpressionAttributeNames:  names,
		ExpressionAttributeValues: values,
	})
	if err != nil {
		return fmt.Errorf("directory: failed to update therapist: %w", err)
	}
	return nil
}

// DeleteByID removes a therapist record. DynamoDB deletes are idempotent, so
// a missing id is not an error.
func (s *DynamoStore) DeleteByID(ctx context.Context, id string) error {
	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.tableName),
		Key:       idKey(id),
	})
	if err != nil {
		return fmt.Errorf("directory: failed to delete therapist: %w", err)
	}
	return nil
}

func idKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

var _ Repository = (*DynamoStore)(nil)
