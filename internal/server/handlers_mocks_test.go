package server

import (
	"context"
	"errors"

	"github.com/wmachuca/localstack-studio/internal/domain"
)

var errEmulatorDown = errors.New("connection refused")

// mockQueueService implements domain.QueueService with overridable functions.
type mockQueueService struct {
	listQueuesFn         func(ctx context.Context) ([]domain.QueueSummary, error)
	getQueueURLFn        func(ctx context.Context, name string) (string, error)
	receiveMessagesFn    func(ctx context.Context, name string, maxMessages, waitSeconds, visibilityTimeout int32) ([]domain.Message, error)
	getQueueAttributesFn func(ctx context.Context, name string) (*domain.QueueAttributes, error)
	sendMessageFn        func(ctx context.Context, name, body string, attributes map[string]domain.MessageAttribute, delaySeconds int32) (*domain.SendResult, error)
	deleteMessageFn      func(ctx context.Context, name, receiptHandle string) error
	createQueueFn        func(ctx context.Context, name string, attributes map[string]string) (string, error)
	deleteQueueFn        func(ctx context.Context, name string) error
}

func (m *mockQueueService) ListQueues(ctx context.Context) ([]domain.QueueSummary, error) {
	return m.listQueuesFn(ctx)
}

func (m *mockQueueService) GetQueueURL(ctx context.Context, name string) (string, error) {
	return m.getQueueURLFn(ctx, name)
}

func (m *mockQueueService) ReceiveMessages(ctx context.Context, name string, maxMessages, waitSeconds, visibilityTimeout int32) ([]domain.Message, error) {
	return m.receiveMessagesFn(ctx, name, maxMessages, waitSeconds, visibilityTimeout)
}

func (m *mockQueueService) GetQueueAttributes(ctx context.Context, name string) (*domain.QueueAttributes, error) {
	return m.getQueueAttributesFn(ctx, name)
}

func (m *mockQueueService) SendMessage(ctx context.Context, name, body string, attributes map[string]domain.MessageAttribute, delaySeconds int32) (*domain.SendResult, error) {
	return m.sendMessageFn(ctx, name, body, attributes, delaySeconds)
}

func (m *mockQueueService) DeleteMessage(ctx context.Context, name, receiptHandle string) error {
	return m.deleteMessageFn(ctx, name, receiptHandle)
}

func (m *mockQueueService) CreateQueue(ctx context.Context, name string, attributes map[string]string) (string, error) {
	return m.createQueueFn(ctx, name, attributes)
}

func (m *mockQueueService) DeleteQueue(ctx context.Context, name string) error {
	return m.deleteQueueFn(ctx, name)
}

// mockTableService implements domain.TableService with overridable functions.
type mockTableService struct {
	listTablesFn    func(ctx context.Context) ([]domain.TableSummary, error)
	describeTableFn func(ctx context.Context, name string) (*domain.TableDescription, error)
	scanFn          func(ctx context.Context, name string, limit int32, exclusiveStartKey domain.Key) (*domain.Page, error)
	queryFn         func(ctx context.Context, name string, params domain.QueryParams) (*domain.Page, error)
	getItemFn       func(ctx context.Context, name string, key domain.Key) (domain.Item, error)
	putItemFn       func(ctx context.Context, name string, item domain.Item) error
	deleteItemFn    func(ctx context.Context, name string, key domain.Key) error
	createTableFn   func(ctx context.Context, name string, keySchema []domain.KeyElement, attributeDefinitions []domain.AttributeDefinition, billingMode string) (*domain.TableDescription, error)
	deleteTableFn   func(ctx context.Context, name string) error
}

func (m *mockTableService) ListTables(ctx context.Context) ([]domain.TableSummary, error) {
	return m.listTablesFn(ctx)
}

func (m *mockTableService) DescribeTable(ctx context.Context, name string) (*domain.TableDescription, error) {
	return m.describeTableFn(ctx, name)
}

func (m *mockTableService) Scan(ctx context.Context, name string, limit int32, exclusiveStartKey domain.Key) (*domain.Page, error) {
	return m.scanFn(ctx, name, limit, exclusiveStartKey)
}

func (m *mockTableService) Query(ctx context.Context, name string, params domain.QueryParams) (*domain.Page, error) {
	return m.queryFn(ctx, name, params)
}

func (m *mockTableService) GetItem(ctx context.Context, name string, key domain.Key) (domain.Item, error) {
	return m.getItemFn(ctx, name, key)
}

func (m *mockTableService) PutItem(ctx context.Context, name string, item domain.Item) error {
	return m.putItemFn(ctx, name, item)
}

func (m *mockTableService) DeleteItem(ctx context.Context, name string, key domain.Key) error {
	return m.deleteItemFn(ctx, name, key)
}

func (m *mockTableService) CreateTable(ctx context.Context, name string, keySchema []domain.KeyElement, attributeDefinitions []domain.AttributeDefinition, billingMode string) (*domain.TableDescription, error) {
	return m.createTableFn(ctx, name, keySchema, attributeDefinitions, billingMode)
}

func (m *mockTableService) DeleteTable(ctx context.Context, name string) error {
	return m.deleteTableFn(ctx, name)
}
