package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"vision2schedule-backend/internal/models"
)

// Store lookup errors, checked with errors.Is by the API layer.
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrEmailExists   = errors.New("email is already registered")
	ErrEventNotFound = errors.New("event not found")
	ErrScanNotFound  = errors.New("scan not found")
)

// DynamoDBService provides CRUD operations for the users, events, and scans
// tables.
type DynamoDBService struct {
	client      *dynamodb.Client
	usersTable  string
	eventsTable string
	scansTable  string
}

// NewDynamoDBService creates a new DynamoDB service instance.
func NewDynamoDBService(client *dynamodb.Client, usersTable, eventsTable, scansTable string) *DynamoDBService {
	return &DynamoDBService{
		client:      client,
		usersTable:  usersTable,
		eventsTable: eventsTable,
		scansTable:  scansTable,
	}
}

// Item shapes. PK/SK keep a user's events and scans in one partition so a
// history query is a single Query call.

type eventItem struct {
	PK string `dynamodbav:"PK"`
	SK string `dynamodbav:"SK"`
	models.EventRecord
}

type scanItem struct {
	PK string `dynamodbav:"PK"`
	SK string `dynamodbav:"SK"`
	models.Scan
}

func userPK(userID string) string   { return "USER#" + userID }
func eventSK(eventID string) string { return "EVENT#" + eventID }
func scanSK(scanID string) string   { return "SCAN#" + scanID }

// User operations

// CreateUser stores a new user. The email must not already exist.
func (s *DynamoDBService) CreateUser(ctx context.Context, user *models.User) error {
	user.CreatedAt = time.Now().UTC()

	item, err := attributevalue.MarshalMap(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(s.usersTable),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(Email)"),
	})
	if err != nil {
		var conditionFailed *types.ConditionalCheckFailedException
		if errors.As(err, &conditionFailed) {
			return fmt.Errorf("%s: %w", user.Email, ErrEmailExists)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetUserByEmail retrieves a user by email.
func (s *DynamoDBService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.usersTable),
		Key: map[string]types.AttributeValue{
			"Email": &types.AttributeValueMemberS{Value: email},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if result.Item == nil {
		return nil, ErrUserNotFound
	}

	var user models.User
	if err := attributevalue.UnmarshalMap(result.Item, &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}

	return &user, nil
}

// Event operations

// CreateEvent stores an extracted event in the owner's partition.
func (s *DynamoDBService) CreateEvent(ctx context.Context, event *models.EventRecord) error {
	if event.UserID == "" {
		return fmt.Errorf("event is missing an owner")
	}

	now := time.Now().UTC()
	if event.CreatedAt.IsZero() {
		event.CreatedAt = now
	}
	event.UpdatedAt = now

	item, err := attributevalue.MarshalMap(eventItem{
		PK:          userPK(event.UserID),
		SK:          eventSK(event.ID),
		EventRecord: *event,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.eventsTable),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}

	return nil
}

// GetEvent retrieves one of the user's events by ID.
func (s *DynamoDBService) GetEvent(ctx context.Context, userID, eventID string) (*models.EventRecord, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.eventsTable),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: userPK(userID)},
			"SK": &types.AttributeValueMemberS{Value: eventSK(eventID)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if result.Item == nil {
		return nil, ErrEventNotFound
	}

	var item eventItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}

	return &item.EventRecord, nil
}

// ListUserEvents returns all events for a user, newest first.
func (s *DynamoDBService) ListUserEvents(ctx context.Context, userID string) ([]models.EventRecord, error) {
	result, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(s.eventsTable),
		KeyConditionExpression: aws.String("PK = :pk AND begins_with(SK, :prefix)"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":pk":     &types.AttributeValueMemberS{Value: userPK(userID)},
			":prefix": &types.AttributeValueMemberS{Value: "EVENT#"},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}

	var items []eventItem
	if err := attributevalue.UnmarshalListOfMaps(result.Items, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal events: %w", err)
	}

	events := make([]models.EventRecord, 0, len(items))
	for _, item := range items {
		events = append(events, item.EventRecord)
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].CreatedAt.After(events[j].CreatedAt)
	})

	return events, nil
}

// DeleteEvent removes one of the user's events. Deleting an event that does
// not exist returns ErrEventNotFound.
func (s *DynamoDBService) DeleteEvent(ctx context.Context, userID, eventID string) error {
	result, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(s.eventsTable),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: userPK(userID)},
			"SK": &types.AttributeValueMemberS{Value: eventSK(eventID)},
		},
		ReturnValues: types.ReturnValueAllOld,
	})
	if err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	if len(result.Attributes) == 0 {
		return ErrEventNotFound
	}
	return nil
}

// Scan operations

// CreateScan stores the raw OCR result for an uploaded flyer.
func (s *DynamoDBService) CreateScan(ctx context.Context, scan *models.Scan) error {
	if scan.UserID == "" {
		return fmt.Errorf("scan is missing an owner")
	}

	if scan.CreatedAt.IsZero() {
		scan.CreatedAt = time.Now().UTC()
	}

	item, err := attributevalue.MarshalMap(scanItem{
		PK:   userPK(scan.UserID),
		SK:   scanSK(scan.ID),
		Scan: *scan,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal scan: %w", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.scansTable),
		Item:      item,
	})
	if err != nil {
		return fmt.Errorf("failed to create scan: %w", err)
	}

	return nil
}

// GetScan retrieves one of the user's scans by ID.
func (s *DynamoDBService) GetScan(ctx context.Context, userID, scanID string) (*models.Scan, error) {
	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.scansTable),
		Key: map[string]types.AttributeValue{
			"PK": &types.AttributeValueMemberS{Value: userPK(userID)},
			"SK": &types.AttributeValueMemberS{Value: scanSK(scanID)},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get scan: %w", err)
	}
	if result.Item == nil {
		return nil, ErrScanNotFound
	}

	var item scanItem
	if err := attributevalue.UnmarshalMap(result.Item, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal scan: %w", err)
	}

	return &item.Scan, nil
}
