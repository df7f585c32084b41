/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"github.com/suparena/slotstore/datastore"
)

const (
	// SortKey is the SK of every slot item
	SortKey = "SLOT"
	// MaxNesting is DynamoDB's limit on nested list and map attributes
	MaxNesting = 32

	valueAttribute = "Value"
)

// API is the subset of the DynamoDB client the store uses.
type API interface {
	GetItem(ctx context.Context, params *sdk.GetItemInput, optFns ...func(*sdk.Options)) (*sdk.GetItemOutput, error)
	PutItem(ctx context.Context, params *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *sdk.DeleteItemInput, optFns ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error)
	Scan(ctx context.Context, params *sdk.ScanInput, optFns ...func(*sdk.Options)) (*sdk.ScanOutput, error)
}

var _ API = (*sdk.Client)(nil)

// itemKey is the primary key of a slot item
type itemKey struct {
	PK string `dynamodbav:"PK"`
	SK string `dynamodbav:"SK"`
}

// itemHeader is a slot item without its value
type itemHeader struct {
	PK   string `dynamodbav:"PK"`
	SK   string `dynamodbav:"SK"`
	Kind string `dynamodbav:"Kind"`
}

// Store implements datastore.Store on a single DynamoDB table, one item per key.
type Store struct {
	client API
	config Config
	logger *zap.Logger
}

var (
	_ datastore.Store          = (*Store)(nil)
	_ datastore.NestingLimiter = (*Store)(nil)
	_ datastore.Lister         = (*Store)(nil)
)

// New constructs a Store with a client built from cfg.
func New(ctx context.Context, cfg Config) (*Store, error) {
	client, err := NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}
	return NewWithClient(client, cfg)
}

// NewWithClient constructs a Store on an existing client.
func NewWithClient(client API, cfg Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Store{
		client: client,
		config: cfg,
		logger: zap.NewNop(),
	}, nil
}

// WithLogger sets the logger on the store.
func (d *Store) WithLogger(l *zap.Logger) *Store {
	d.logger = l
	return d
}

func (d *Store) MaxNesting() int { return MaxNesting }

func (d *Store) Integer(key string) int64         { return datastore.Integer(d.Object(key)) }
func (d *Store) Double(key string) float64        { return datastore.Double(d.Object(key)) }
func (d *Store) Float(key string) float32         { return datastore.Float(d.Object(key)) }
func (d *Store) Bool(key string) bool             { return datastore.Bool(d.Object(key)) }
func (d *Store) String(key string) (string, bool) { return datastore.String(d.Object(key)) }
func (d *Store) Bytes(key string) ([]byte, bool)  { return datastore.Bytes(d.Object(key)) }
func (d *Store) Array(key string) ([]any, bool)   { return datastore.Array(d.Object(key)) }
func (d *Store) Map(key string) (map[string]any, bool) {
	return datastore.Map(d.Object(key))
}

// Object reads the item for key with a consistent read. Request and decode failures are
// logged and reported as absent.
func (d *Store) Object(key string) (any, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), d.config.Timeout)
	defer cancel()

	itemKey, err := d.key(key)
	if err != nil {
		d.logger.Error("Failed to build key", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	out, err := d.client.GetItem(ctx, &sdk.GetItemInput{
		TableName:      &d.config.Table,
		Key:            itemKey,
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		d.logger.Error("GetItem failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if out.Item == nil {
		return nil, false
	}

	var header itemHeader
	if err := attributevalue.UnmarshalMap(out.Item, &header); err != nil {
		d.logger.Warn("Failed to unmarshal item", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	av, ok := out.Item[valueAttribute]
	if !ok {
		d.logger.Warn("Item has no value", zap.String("key", key))
		return nil, false
	}

	v, err := fromAttribute(av, datastore.Kind(header.Kind))
	if err != nil {
		d.logger.Warn("Failed to decode value", zap.String("key", key), zap.String("kind", header.Kind), zap.Error(err))
		return nil, false
	}
	return v, true
}

// Set writes the item for key. A nil value removes it.
func (d *Store) Set(key string, value any) {
	if value == nil {
		d.Remove(key)
		return
	}

	av, err := toAttribute(value)
	if err != nil {
		d.logger.Error("Failed to encode value", zap.String("key", key), zap.Error(err))
		return
	}

	item, err := attributevalue.MarshalMap(itemHeader{
		PK:   d.config.KeyPrefix + key,
		SK:   SortKey,
		Kind: string(datastore.KindOf(value)),
	})
	if err != nil {
		d.logger.Error("Failed to marshal item", zap.String("key", key), zap.Error(err))
		return
	}
	item[valueAttribute] = av

	ctx, cancel := context.WithTimeout(context.Background(), d.config.Timeout)
	defer cancel()

	if _, err := d.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: &d.config.Table,
		Item:      item,
	}); err != nil {
		d.logger.Error("PutItem failed", zap.String("key", key), zap.Error(err))
	}
}

// Remove deletes the item for key.
func (d *Store) Remove(key string) {
	itemKey, err := d.key(key)
	if err != nil {
		d.logger.Error("Failed to build key", zap.String("key", key), zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.config.Timeout)
	defer cancel()

	if _, err := d.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName: &d.config.Table,
		Key:       itemKey,
	}); err != nil {
		d.logger.Error("DeleteItem failed", zap.String("key", key), zap.Error(err))
	}
}

// Keys scans the table for slot items under the configured prefix, returning them sorted.
func (d *Store) Keys() ([]string, error) {
	return d.KeysContext(context.Background())
}

// KeysContext is Keys bounded by ctx instead of the per-request timeout.
func (d *Store) KeysContext(ctx context.Context) ([]string, error) {
	filter := "SK = :sk"
	values := map[string]types.AttributeValue{
		":sk": &types.AttributeValueMemberS{Value: SortKey},
	}
	if d.config.KeyPrefix != "" {
		filter += " AND begins_with(PK, :prefix)"
		values[":prefix"] = &types.AttributeValueMemberS{Value: d.config.KeyPrefix}
	}

	paginator := sdk.NewScanPaginator(d.client, &sdk.ScanInput{
		TableName:                 &d.config.Table,
		FilterExpression:          &filter,
		ExpressionAttributeValues: values,
		ProjectionExpression:      aws.String("PK, SK"),
	})

	var keys []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("Scan failed: %w", err)
		}
		for _, item := range page.Items {
			var k itemKey
			if err := attributevalue.UnmarshalMap(item, &k); err != nil {
				return nil, fmt.Errorf("failed to unmarshal key: %w", err)
			}
			if k.SK != SortKey || !strings.HasPrefix(k.PK, d.config.KeyPrefix) {
				continue
			}
			keys = append(keys, strings.TrimPrefix(k.PK, d.config.KeyPrefix))
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (d *Store) key(key string) (map[string]types.AttributeValue, error) {
	return attributevalue.MarshalMap(itemKey{PK: d.config.KeyPrefix + key, SK: SortKey})
}
