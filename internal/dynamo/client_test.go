package dynamo

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wmachuca/localstack-studio/internal/domain"
)

// stubAPI implements API with overridable functions per operation.
type stubAPI struct {
	listTablesFn    func(*awsdynamodb.ListTablesInput) (*awsdynamodb.ListTablesOutput, error)
	describeTableFn func(*awsdynamodb.DescribeTableInput) (*awsdynamodb.DescribeTableOutput, error)
	scanFn          func(*awsdynamodb.ScanInput) (*awsdynamodb.ScanOutput, error)
	queryFn         func(*awsdynamodb.QueryInput) (*awsdynamodb.QueryOutput, error)
	getItemFn       func(*awsdynamodb.GetItemInput) (*awsdynamodb.GetItemOutput, error)
	putItemFn       func(*awsdynamodb.PutItemInput) (*awsdynamodb.PutItemOutput, error)
	deleteItemFn    func(*awsdynamodb.DeleteItemInput) (*awsdynamodb.DeleteItemOutput, error)
	createTableFn   func(*awsdynamodb.CreateTableInput) (*awsdynamodb.CreateTableOutput, error)
	deleteTableFn   func(*awsdynamodb.DeleteTableInput) (*awsdynamodb.DeleteTableOutput, error)
}

func (s *stubAPI) ListTables(ctx context.Context, params *awsdynamodb.ListTablesInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.ListTablesOutput, error) {
	return s.listTablesFn(params)
}

func (s *stubAPI) DescribeTable(ctx context.Context, params *awsdynamodb.DescribeTableInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.DescribeTableOutput, error) {
	return s.describeTableFn(params)
}

func (s *stubAPI) Scan(ctx context.Context, params *awsdynamodb.ScanInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.ScanOutput, error) {
	return s.scanFn(params)
}

func (s *stubAPI) Query(ctx context.Context, params *awsdynamodb.QueryInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.QueryOutput, error) {
	return s.queryFn(params)
}

func (s *stubAPI) GetItem(ctx context.Context, params *awsdynamodb.GetItemInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.GetItemOutput, error) {
	return s.getItemFn(params)
}

func (s *stubAPI) PutItem(ctx context.Context, params *awsdynamodb.PutItemInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.PutItemOutput, error) {
	return s.putItemFn(params)
}

func (s *stubAPI) DeleteItem(ctx context.Context, params *awsdynamodb.DeleteItemInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.DeleteItemOutput, error) {
	return s.deleteItemFn(params)
}

func (s *stubAPI) CreateTable(ctx context.Context, params *awsdynamodb.CreateTableInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.CreateTableOutput, error) {
	return s.createTableFn(params)
}

func (s *stubAPI) DeleteTable(ctx context.Context, params *awsdynamodb.DeleteTableInput, optFns ...func(*awsdynamodb.Options)) (*awsdynamodb.DeleteTableOutput, error) {
	return s.deleteTableFn(params)
}

func TestClient_ListTablesEnrichesWithDescribe(t *testing.T) {
	client := NewClientWithAPI(&stubAPI{
		listTablesFn: func(*awsdynamodb.ListTablesInput) (*awsdynamodb.ListTablesOutput, error) {
			return &awsdynamodb.ListTablesOutput{TableNames: []string{"users", "orders"}}, nil
		},
		describeTableFn: func(params *awsdynamodb.DescribeTableInput) (*awsdynamodb.DescribeTableOutput, error) {
			if aws.ToString(params.TableName) == "orders" {
				return nil, &types.ResourceNotFoundException{Message: aws.String("gone")}
			}
			return &awsdynamodb.DescribeTableOutput{Table: &types.TableDescription{
				TableName:   params.TableName,
				TableStatus: types.TableStatusActive,
				ItemCount:   aws.Int64(42),
			}}, nil
		},
	})

	tables, err := client.ListTables(context.Background())
	require.NoError(t, err)
	require.Len(t, tables, 2)

	assert.Equal(t, "users", tables[0].Name)
	assert.Equal(t, "ACTIVE", tables[0].Status)
	assert.Equal(t, int64(42), tables[0].ItemCount)

	// Describe failures leave the entry with name only.
	assert.Equal(t, "orders", tables[1].Name)
	assert.Empty(t, tables[1].Status)
}

func TestClient_DescribeTableNotFound(t *testing.T) {
	client := NewClientWithAPI(&stubAPI{
		describeTableFn: func(*awsdynamodb.DescribeTableInput) (*awsdynamodb.DescribeTableOutput, error) {
			return nil, &types.ResourceNotFoundException{Message: aws.String("no such table")}
		},
	})

	_, err := client.DescribeTable(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrTableNotFound)
}

func TestClient_DescribeTableConvertsSchema(t *testing.T) {
	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	client := NewClientWithAPI(&stubAPI{
		describeTableFn: func(*awsdynamodb.DescribeTableInput) (*awsdynamodb.DescribeTableOutput, error) {
			return &awsdynamodb.DescribeTableOutput{Table: &types.TableDescription{
				TableName:   aws.String("users"),
				TableStatus: types.TableStatusActive,
				KeySchema: []types.KeySchemaElement{
					{AttributeName: aws.String("pk"), KeyType: types.KeyTypeHash},
					{AttributeName: aws.String("sk"), KeyType: types.KeyTypeRange},
				},
				AttributeDefinitions: []types.AttributeDefinition{
					{AttributeName: aws.String("pk"), AttributeType: types.ScalarAttributeTypeS},
					{AttributeName: aws.String("sk"), AttributeType: types.ScalarAttributeTypeN},
				},
				ItemCount:        aws.Int64(3),
				TableSizeBytes:   aws.Int64(1024),
				CreationDateTime: aws.Time(created),
				BillingModeSummary: &types.BillingModeSummary{
					BillingMode: types.BillingModePayPerRequest,
				},
				GlobalSecondaryIndexes: []types.GlobalSecondaryIndexDescription{{
					IndexName:   aws.String("by-email"),
					IndexStatus: types.IndexStatusActive,
					KeySchema: []types.KeySchemaElement{
						{AttributeName: aws.String("email"), KeyType: types.KeyTypeHash},
					},
				}},
			}}, nil
		},
	})

	desc, err := client.DescribeTable(context.Background(), "users")
	require.NoError(t, err)

	assert.Equal(t, "users", desc.Name)
	assert.Equal(t, "ACTIVE", desc.Status)
	require.Len(t, desc.KeySchema, 2)
	assert.Equal(t, domain.KeyElement{AttributeName: "pk", KeyType: "HASH"}, desc.KeySchema[0])
	assert.Equal(t, domain.KeyElement{AttributeName: "sk", KeyType: "RANGE"}, desc.KeySchema[1])
	require.Len(t, desc.AttributeDefinitions, 2)
	assert.Equal(t, "S", desc.AttributeDefinitions[0].AttributeType)
	assert.Equal(t, int64(3), desc.ItemCount)
	assert.Equal(t, int64(1024), desc.TableSizeBytes)
	assert.Equal(t, "2024-03-01T12:00:00Z", desc.CreationDateTime)
	assert.Equal(t, "PAY_PER_REQUEST", desc.BillingMode)
	require.Len(t, desc.GlobalSecondaryIndexes, 1)
	assert.Equal(t, "by-email", desc.GlobalSecondaryIndexes[0].Name)
}

func TestClient_ScanReturnsPage(t *testing.T) {
	var captured *awsdynamodb.ScanInput
	client := NewClientWithAPI(&stubAPI{
		scanFn: func(params *awsdynamodb.ScanInput) (*awsdynamodb.ScanOutput, error) {
			captured = params
			return &awsdynamodb.ScanOutput{
				Items: []map[string]types.AttributeValue{
					{"pk": &types.AttributeValueMemberS{Value: "user-1"}, "age": &types.AttributeValueMemberN{Value: "30"}},
					{"pk": &types.AttributeValueMemberS{Value: "user-2"}},
				},
				Count:        2,
				ScannedCount: 2,
				LastEvaluatedKey: map[string]types.AttributeValue{
					"pk": &types.AttributeValueMemberS{Value: "user-2"},
				},
			}, nil
		},
	})

	page, err := client.Scan(context.Background(), "users", 2, nil)
	require.NoError(t, err)

	assert.Equal(t, int32(2), aws.ToInt32(captured.Limit))
	require.Len(t, page.Items, 2)
	assert.Equal(t, "user-1", page.Items[0]["pk"])
	assert.Equal(t, 2, page.Count)
	assert.Equal(t, 2, page.ScannedCount)
	assert.Equal(t, "user-2", page.LastEvaluatedKey["pk"])
}

func TestClient_ScanForwardsExclusiveStartKey(t *testing.T) {
	var captured *awsdynamodb.ScanInput
	client := NewClientWithAPI(&stubAPI{
		scanFn: func(params *awsdynamodb.ScanInput) (*awsdynamodb.ScanOutput, error) {
			captured = params
			return &awsdynamodb.ScanOutput{}, nil
		},
	})

	_, err := client.Scan(context.Background(), "users", 0, domain.Key{"pk": "user-2"})
	require.NoError(t, err)

	require.NotNil(t, captured.ExclusiveStartKey)
	member, ok := captured.ExclusiveStartKey["pk"].(*types.AttributeValueMemberS)
	require.True(t, ok)
	assert.Equal(t, "user-2", member.Value)
	assert.Nil(t, captured.Limit)
}

func TestClient_QueryBuildsInput(t *testing.T) {
	var captured *awsdynamodb.QueryInput
	client := NewClientWithAPI(&stubAPI{
		queryFn: func(params *awsdynamodb.QueryInput) (*awsdynamodb.QueryOutput, error) {
			captured = params
			return &awsdynamodb.QueryOutput{
				Items: []map[string]types.AttributeValue{
					{"pk": &types.AttributeValueMemberS{Value: "user-1"}},
				},
				Count:        1,
				ScannedCount: 1,
			}, nil
		},
	})

	page, err := client.Query(context.Background(), "users", domain.QueryParams{
		KeyConditionExpression:    "pk = :pk",
		ExpressionAttributeValues: map[string]any{":pk": "user-1"},
		IndexName:                 "by-email",
		Limit:                     10,
	})
	require.NoError(t, err)

	assert.Equal(t, "pk = :pk", aws.ToString(captured.KeyConditionExpression))
	assert.Equal(t, "by-email", aws.ToString(captured.IndexName))
	assert.Equal(t, int32(10), aws.ToInt32(captured.Limit))
	member, ok := captured.ExpressionAttributeValues[":pk"].(*types.AttributeValueMemberS)
	require.True(t, ok)
	assert.Equal(t, "user-1", member.Value)
	require.Len(t, page.Items, 1)
}

func TestClient_GetItem(t *testing.T) {
	client := NewClientWithAPI(&stubAPI{
		getItemFn: func(params *awsdynamodb.GetItemInput) (*awsdynamodb.GetItemOutput, error) {
			return &awsdynamodb.GetItemOutput{Item: map[string]types.AttributeValue{
				"pk":   &types.AttributeValueMemberS{Value: "user-1"},
				"name": &types.AttributeValueMemberS{Value: "Ada"},
			}}, nil
		},
	})

	item, err := client.GetItem(context.Background(), "users", domain.Key{"pk": "user-1"})
	require.NoError(t, err)
	assert.Equal(t, "user-1", item["pk"])
	assert.Equal(t, "Ada", item["name"])
}

func TestClient_GetItemNotFound(t *testing.T) {
	client := NewClientWithAPI(&stubAPI{
		getItemFn: func(*awsdynamodb.GetItemInput) (*awsdynamodb.GetItemOutput, error) {
			return &awsdynamodb.GetItemOutput{}, nil
		},
	})

	_, err := client.GetItem(context.Background(), "users", domain.Key{"pk": "nobody"})
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestClient_PutItemMarshalsAttributes(t *testing.T) {
	var captured *awsdynamodb.PutItemInput
	client := NewClientWithAPI(&stubAPI{
		putItemFn: func(params *awsdynamodb.PutItemInput) (*awsdynamodb.PutItemOutput, error) {
			captured = params
			return &awsdynamodb.PutItemOutput{}, nil
		},
	})

	err := client.PutItem(context.Background(), "users", domain.Item{"pk": "user-1", "age": 30})
	require.NoError(t, err)

	pk, ok := captured.Item["pk"].(*types.AttributeValueMemberS)
	require.True(t, ok)
	assert.Equal(t, "user-1", pk.Value)
	age, ok := captured.Item["age"].(*types.AttributeValueMemberN)
	require.True(t, ok)
	assert.Equal(t, "30", age.Value)
}

func TestClient_DeleteItemNotFoundTable(t *testing.T) {
	client := NewClientWithAPI(&stubAPI{
		deleteItemFn: func(*awsdynamodb.DeleteItemInput) (*awsdynamodb.DeleteItemOutput, error) {
			return nil, &types.ResourceNotFoundException{Message: aws.String("no such table")}
		},
	})

	err := client.DeleteItem(context.Background(), "missing", domain.Key{"pk": "user-1"})
	assert.ErrorIs(t, err, domain.ErrTableNotFound)
}

func TestClient_CreateTableDefaultsBillingMode(t *testing.T) {
	var captured *awsdynamodb.CreateTableInput
	client := NewClientWithAPI(&stubAPI{
		createTableFn: func(params *awsdynamodb.CreateTableInput) (*awsdynamodb.CreateTableOutput, error) {
			captured = params
			return &awsdynamodb.CreateTableOutput{TableDescription: &types.TableDescription{
				TableName:   params.TableName,
				TableStatus: types.TableStatusCreating,
			}}, nil
		},
	})

	desc, err := client.CreateTable(context.Background(), "users",
		[]domain.KeyElement{{AttributeName: "pk", KeyType: "HASH"}},
		[]domain.AttributeDefinition{{AttributeName: "pk", AttributeType: "S"}},
		"")
	require.NoError(t, err)

	assert.Equal(t, types.BillingModePayPerRequest, captured.BillingMode)
	require.Len(t, captured.KeySchema, 1)
	assert.Equal(t, types.KeyTypeHash, captured.KeySchema[0].KeyType)
	assert.Equal(t, "users", desc.Name)
	assert.Equal(t, "CREATING", desc.Status)
}

func TestClient_CreateTableAlreadyExists(t *testing.T) {
	client := NewClientWithAPI(&stubAPI{
		createTableFn: func(*awsdynamodb.CreateTableInput) (*awsdynamodb.CreateTableOutput, error) {
			return nil, &types.ResourceInUseException{Message: aws.String("table exists")}
		},
	})

	_, err := client.CreateTable(context.Background(), "users",
		[]domain.KeyElement{{AttributeName: "pk", KeyType: "HASH"}},
		[]domain.AttributeDefinition{{AttributeName: "pk", AttributeType: "S"}},
		"")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestClient_DeleteTableNotFound(t *testing.T) {
	client := NewClientWithAPI(&stubAPI{
		deleteTableFn: func(*awsdynamodb.DeleteTableInput) (*awsdynamodb.DeleteTableOutput, error) {
			return nil, &types.ResourceNotFoundException{Message: aws.String("no such table")}
		},
	})

	err := client.DeleteTable(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrTableNotFound)
}
