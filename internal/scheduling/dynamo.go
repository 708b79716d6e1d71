package scheduling

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
	Query(context.Context, *dynamodb.QueryInput, ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
}

// DynamoStore persists appointment and check-in records to a DynamoDB table
// keyed by id, with a (therapistId, date) global secondary index for the
// conflict check.
type DynamoStore struct {
	client    dynamoAPI
	tableName string
	indexName string
	logger    *logging.Logger
}

// NewDynamoStore builds a store backed by the provided DynamoDB client.
func NewDynamoStore(client dynamoAPI, tableName, indexName string, logger *logging.Logger) *DynamoStore {
	if client == nil {
		panic("scheduling: dynamodb client cannot be nil")
	}
	if tableName == "" {
		panic("scheduling: table name cannot be empty")
	}
	if indexName == "" {
		indexName = "TherapistDateIndex"
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &DynamoStore{client: client, tableName: tableName, indexName: indexName, logger: logger}
}

// Put stores a record.
func (s *DynamoStore) Put(ctx context.Context, a *Appointment) error {
	item, err := attributevalue.MarshalMap(a)
	if err != nil {
		return fmt.Errorf("scheduling: failed to marshal record: %w", err)
	}
	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("scheduling: failed to persist record: %w", err)
	}
	return nil
}

// GetByID retrieves a record, returning nil when absent.
func (s *DynamoStore) GetByID(ctx context.Context, id string) (*Appointment, error) {
	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("scheduling: failed to get record: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, nil
	}
	var a Appointment
	if err := attributevalue.UnmarshalMap(out.Item, &a); err != nil {
		return nil, fmt.Errorf("scheduling: failed to unmarshal record: %w", err)
	}
	return &a, nil
}

// QueryByTherapistAndDate returns every record for the therapist on the
// given date via the GSI. "date" is a DynamoDB reserved word, hence the
// attribute alias.
func (s *DynamoStore) QueryByTherapistAndDate(ctx context.Context, therapistID, date string) ([]*Appointment, error) {
	out, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.tableName),
		IndexName:              aws.String(s.indexName),
		KeyConditionExpression: aws.String("therapistId = :therapistId AND #date = :date"),
		ExpressionAttributeNames: map[string]string{
			"#date": "date",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":therapistId": &types.AttributeValueMemberS{Value: therapistID},
			":date":        &types.AttributeValueMemberS{Value: date},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("scheduling: failed to query records: %w", err)
	}
	var records []*Appointment
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &records); err != nil {
		return nil, fmt.Errorf("scheduling: failed to unmarshal records: %w", err)
	}
	return records, nil
}

var _ Repository = (*DynamoStore)(nil)
