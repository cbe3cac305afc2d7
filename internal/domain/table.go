package domain

import "context"

// Item is a table item rendered as plain JSON-compatible values.
type Item map[string]any

// Key identifies a single item (partition key, plus sort key where defined).
type Key map[string]any

// TableSummary is one entry of the table listing.
type TableSummary struct {
	Name      string `json:"name"`
	Status    string `json:"status"`
	ItemCount int64  `json:"itemCount"`
}

// KeyElement describes one member of a table's key schema.
type KeyElement struct {
	AttributeName string `json:"attributeName"`
	KeyType       string `json:"keyType"`
}

// AttributeDefinition declares an attribute's storage type.
type AttributeDefinition struct {
	AttributeName string `json:"attributeName"`
	AttributeType string `json:"attributeType"`
}

// IndexDescription describes a secondary index on a table.
type IndexDescription struct {
	Name      string       `json:"name"`
	KeySchema []KeyElement `json:"keySchema"`
	Status    string       `json:"status,omitempty"`
}

// TableDescription is the detailed schema and metadata view of a table.
type TableDescription struct {
	Name                   string                `json:"name"`
	Status                 string                `json:"status"`
	KeySchema              []KeyElement          `json:"keySchema"`
	AttributeDefinitions   []AttributeDefinition `json:"attributeDefinitions"`
	GlobalSecondaryIndexes []IndexDescription    `json:"globalSecondaryIndexes,omitempty"`
	LocalSecondaryIndexes  []IndexDescription    `json:"localSecondaryIndexes,omitempty"`
	ItemCount              int64                 `json:"itemCount"`
	TableSizeBytes         int64                 `json:"tableSizeBytes"`
	CreationDateTime       string                `json:"creationDateTime,omitempty"`
	BillingMode            string                `json:"billingMode,omitempty"`
}

// Page is one page of a scan or query, with the pagination cursor to resume from.
type Page struct {
	Items            []Item `json:"items"`
	Count            int    `json:"count"`
	ScannedCount     int    `json:"scannedCount"`
	LastEvaluatedKey Key    `json:"lastEvaluatedKey,omitempty"`
}

// QueryParams carries the key conditions of a table query.
type QueryParams struct {
	KeyConditionExpression    string
	ExpressionAttributeValues map[string]any
	IndexName                 string
	Limit                     int32
	ExclusiveStartKey         Key
}

// TableService is the table surface the REST layer delegates to.
type TableService interface {
	ListTables(ctx context.Context) ([]TableSummary, error)
	DescribeTable(ctx context.Context, name string) (*TableDescription, error)
	Scan(ctx context.Context, name string, limit int32, exclusiveStartKey Key) (*Page, error)
	Query(ctx context.Context, name string, params QueryParams) (*Page, error)
	GetItem(ctx context.Context, name string, key Key) (Item, error)
	PutItem(ctx context.Context, name string, item Item) error
	DeleteItem(ctx context.Context, name string, key Key) error
	CreateTable(ctx context.Context, name string, keySchema []KeyElement, attributeDefinitions []AttributeDefinition, billingMode string) (*TableDescription, error)
	DeleteTable(ctx context.Context, name string) error
}
