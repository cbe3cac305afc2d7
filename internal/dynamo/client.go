package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/wmachuca/localstack-studio/internal/domain"
)

// API is the subset of the SDK's DynamoDB client the wrapper uses.
type API interface {
	ListTables(ctx context.Context, params *awsdynamodb.ListTablesInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.ListTablesOutput, error)
	DescribeTable(ctx context.Context, params *awsdynamodb.DescribeTableInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.DescribeTableOutput, error)
	Scan(ctx context.Context, params *awsdynamodb.ScanInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.ScanOutput, error)
	Query(ctx context.Context, params *awsdynamodb.QueryInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.QueryOutput, error)
	GetItem(ctx context.Context, params *awsdynamodb.GetItemInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *awsdynamodb.PutItemInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *awsdynamodb.DeleteItemInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.DeleteItemOutput, error)
	CreateTable(ctx context.Context, params *awsdynamodb.CreateTableInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.CreateTableOutput, error)
	DeleteTable(ctx context.Context, params *awsdynamodb.DeleteTableInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.DeleteTableOutput, error)
}

// Client implements domain.TableService against the emulator's DynamoDB API.
type Client struct {
	api API
}

// NewClient builds a table client against the given endpoint.
func NewClient(awsCfg aws.Config, endpoint string) *Client {
	api := awsdynamodb.NewFromConfig(awsCfg, func(o *awsdynamodb.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})
	return &Client{api: api}
}

// NewClientWithAPI wires an explicit API implementation (used in tests).
func NewClientWithAPI(api API) *Client {
	return &Client{api: api}
}

// ListTables returns all tables with status and item counts.
func (c *Client) ListTables(ctx context.Context) ([]domain.TableSummary, error) {
	out, err := c.api.ListTables(ctx, &awsdynamodb.ListTablesInput{})
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}

	tables := make([]domain.TableSummary, 0, len(out.TableNames))
	for _, name := range out.TableNames {
		summary := domain.TableSummary{Name: name}

		// Status and counts come from describe; tolerate per-table failures.
		desc, err := c.api.DescribeTable(ctx, &awsdynamodb.DescribeTableInput{TableName: aws.String(name)})
		if err == nil && desc.Table != nil {
			summary.Status = string(desc.Table.TableStatus)
			summary.ItemCount = aws.ToInt64(desc.Table.ItemCount)
		}

		tables = append(tables, summary)
	}
	return tables, nil
}

// DescribeTable returns the full schema and metadata view of a table.
func (c *Client) DescribeTable(ctx context.Context, name string) (*domain.TableDescription, error) {
	out, err := c.api.DescribeTable(ctx, &awsdynamodb.DescribeTableInput{TableName: aws.String(name)})
	if err != nil {
		return nil, mapTableError(err, name)
	}
	return toTableDescription(out.Table), nil
}

// Scan returns one page of table items.
func (c *Client) Scan(ctx context.Context, name string, limit int32, exclusiveStartKey domain.Key) (*domain.Page, error) {
	input := &awsdynamodb.ScanInput{TableName: aws.String(name)}
	if limit > 0 {
		input.Limit = aws.Int32(limit)
	}
	if len(exclusiveStartKey) > 0 {
		startKey, err := attributevalue.MarshalMap(map[string]any(exclusiveStartKey))
		if err != nil {
			return nil, fmt.Errorf("marshal exclusive start key: %w", err)
		}
		input.ExclusiveStartKey = startKey
	}

	out, err := c.api.Scan(ctx, input)
	if err != nil {
		return nil, mapTableError(err, name)
	}
	return toPage(out.Items, out.LastEvaluatedKey, out.Count, out.ScannedCount)
}

// Query returns one page of items matching the key conditions.
func (c *Client) Query(ctx context.Context, name string, params domain.QueryParams) (*domain.Page, error) {
	values, err := attributevalue.MarshalMap(params.ExpressionAttributeValues)
	if err != nil {
		return nil, fmt.Errorf("marshal expression attribute values: %w", err)
	}

	input := &awsdynamodb.QueryInput{
		TableName:                 aws.String(name),
		KeyConditionExpression:    aws.String(params.KeyConditionExpression),
		ExpressionAttributeValues: values,
	}
	if params.IndexName != "" {
		input.IndexName = aws.String(params.IndexName)
	}
	if params.Limit > 0 {
		input.Limit = aws.Int32(params.Limit)
	}
	if len(params.ExclusiveStartKey) > 0 {
		startKey, err := attributevalue.MarshalMap(map[string]any(params.ExclusiveStartKey))
		if err != nil {
			return nil, fmt.Errorf("marshal exclusive start key: %w", err)
		}
		input.ExclusiveStartKey = startKey
	}

	out, err := c.api.Query(ctx, input)
	if err != nil {
		return nil, mapTableError(err, name)
	}
	return toPage(out.Items, out.LastEvaluatedKey, out.Count, out.ScannedCount)
}

// GetItem fetches a single item by key. Returns domain.ErrItemNotFound when absent.
func (c *Client) GetItem(ctx context.Context, name string, key domain.Key) (domain.Item, error) {
	avKey, err := attributevalue.MarshalMap(map[string]any(key))
	if err != nil {
		return nil, fmt.Errorf("marshal key: %w", err)
	}

	out, err := c.api.GetItem(ctx, &awsdynamodb.GetItemInput{
		TableName: aws.String(name),
		Key:       avKey,
	})
	if err != nil {
		return nil, mapTableError(err, name)
	}
	if len(out.Item) == 0 {
		return nil, domain.ErrItemNotFound
	}

	var item map[string]any
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, fmt.Errorf("unmarshal item: %w", err)
	}
	return item, nil
}

// PutItem creates or replaces an item.
func (c *Client) PutItem(ctx context.Context, name string, item domain.Item) error {
	avItem, err := attributevalue.MarshalMap(map[string]any(item))
	if err != nil {
		return fmt.Errorf("marshal item: %w", err)
	}

	if _, err := c.api.PutItem(ctx, &awsdynamodb.PutItemInput{
		TableName: aws.String(name),
		Item:      avItem,
	}); err != nil {
		return mapTableError(err, name)
	}
	return nil
}

// DeleteItem removes an item by key.
func (c *Client) DeleteItem(ctx context.Context, name string, key domain.Key) error {
	avKey, err := attributevalue.MarshalMap(map[string]any(key))
	if err != nil {
		return fmt.Errorf("marshal key: %w", err)
	}

	if _, err := c.api.DeleteItem(ctx, &awsdynamodb.DeleteItemInput{
		TableName: aws.String(name),
		Key:       avKey,
	}); err != nil {
		return mapTableError(err, name)
	}
	return nil
}

// CreateTable creates a table with the given key schema.
func (c *Client) CreateTable(ctx context.Context, name string, keySchema []domain.KeyElement, attributeDefinitions []domain.AttributeDefinition, billingMode string) (*domain.TableDescription, error) {
	if billingMode == "" {
		billingMode = string(types.BillingModePayPerRequest)
	}

	input := &awsdynamodb.CreateTableInput{
		TableName:            aws.String(name),
		KeySchema:            toSDKKeySchema(keySchema),
		AttributeDefinitions: toSDKAttributeDefinitions(attributeDefinitions),
		BillingMode:          types.BillingMode(billingMode),
	}

	out, err := c.api.CreateTable(ctx, input)
	if err != nil {
		var inUse *types.ResourceInUseException
		if errors.As(err, &inUse) {
			return nil, fmt.Errorf("create table %s: table already exists: %w", name, err)
		}
		return nil, fmt.Errorf("create table %s: %w", name, err)
	}
	return toTableDescription(out.TableDescription), nil
}

// DeleteTable removes the named table.
func (c *Client) DeleteTable(ctx context.Context, name string) error {
	if _, err := c.api.DeleteTable(ctx, &awsdynamodb.DeleteTableInput{TableName: aws.String(name)}); err != nil {
		return mapTableError(err, name)
	}
	return nil
}

func mapTableError(err error, name string) error {
	var notFound *types.ResourceNotFoundException
	if errors.As(err, &notFound) {
		return fmt.Errorf("%w: %s", domain.ErrTableNotFound, name)
	}
	return fmt.Errorf("table %s: %w", name, err)
}

func toPage(items []map[string]types.AttributeValue, lastKey map[string]types.AttributeValue, count, scanned int32) (*domain.Page, error) {
	page := &domain.Page{
		Items:        make([]domain.Item, 0, len(items)),
		Count:        int(count),
		ScannedCount: int(scanned),
	}

	for _, avItem := range items {
		var item map[string]any
		if err := attributevalue.UnmarshalMap(avItem, &item); err != nil {
			return nil, fmt.Errorf("unmarshal item: %w", err)
		}
		page.Items = append(page.Items, item)
	}

	if len(lastKey) > 0 {
		var key map[string]any
		if err := attributevalue.UnmarshalMap(lastKey, &key); err != nil {
			return nil, fmt.Errorf("unmarshal last evaluated key: %w", err)
		}
		page.LastEvaluatedKey = key
	}

	return page, nil
}

func toTableDescription(table *types.TableDescription) *domain.TableDescription {
	if table == nil {
		return &domain.TableDescription{}
	}

	desc := &domain.TableDescription{
		Name:                 aws.ToString(table.TableName),
		Status:               string(table.TableStatus),
		KeySchema:            toDomainKeySchema(table.KeySchema),
		AttributeDefinitions: toDomainAttributeDefinitions(table.AttributeDefinitions),
		ItemCount:            aws.ToInt64(table.ItemCount),
		TableSizeBytes:       aws.ToInt64(table.TableSizeBytes),
	}

	if table.CreationDateTime != nil {
		desc.CreationDateTime = table.CreationDateTime.UTC().Format(time.RFC3339)
	}
	if table.BillingModeSummary != nil {
		desc.BillingMode = string(table.BillingModeSummary.BillingMode)
	}

	for _, gsi := range table.GlobalSecondaryIndexes {
		desc.GlobalSecondaryIndexes = append(desc.GlobalSecondaryIndexes, domain.IndexDescription{
			Name:      aws.ToString(gsi.IndexName),
			KeySchema: toDomainKeySchema(gsi.KeySchema),
			Status:    string(gsi.IndexStatus),
		})
	}
	for _, lsi := range table.LocalSecondaryIndexes {
		desc.LocalSecondaryIndexes = append(desc.LocalSecondaryIndexes, domain.IndexDescription{
			Name:      aws.ToString(lsi.IndexName),
			KeySchema: toDomainKeySchema(lsi.KeySchema),
		})
	}

	return desc
}

func toDomainKeySchema(schema []types.KeySchemaElement) []domain.KeyElement {
	elements := make([]domain.KeyElement, 0, len(schema))
	for _, element := range schema {
		elements = append(elements, domain.KeyElement{
			AttributeName: aws.ToString(element.AttributeName),
			KeyType:       string(element.KeyType),
		})
	}
	return elements
}

func toDomainAttributeDefinitions(defs []types.AttributeDefinition) []domain.AttributeDefinition {
	definitions := make([]domain.AttributeDefinition, 0, len(defs))
	for _, def := range defs {
		definitions = append(definitions, domain.AttributeDefinition{
			AttributeName: aws.ToString(def.AttributeName),
			AttributeType: string(def.AttributeType),
		})
	}
	return definitions
}

func toSDKKeySchema(schema []domain.KeyElement) []types.KeySchemaElement {
	elements := make([]types.KeySchemaElement, 0, len(schema))
	for _, element := range schema {
		elements = append(elements, types.KeySchemaElement{
			AttributeName: aws.String(element.AttributeName),
			KeyType:       types.KeyType(element.KeyType),
		})
	}
	return elements
}

func toSDKAttributeDefinitions(defs []domain.AttributeDefinition) []types.AttributeDefinition {
	definitions := make([]types.AttributeDefinition, 0, len(defs))
	for _, def := range defs {
		definitions = append(definitions, types.AttributeDefinition{
			AttributeName: aws.String(def.AttributeName),
			AttributeType: types.ScalarAttributeType(def.AttributeType),
		})
	}
	return definitions
}
