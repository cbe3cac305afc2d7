package sqs

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssqs "github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"github.com/wmachuca/localstack-studio/internal/domain"
)

// API is the subset of the SDK's SQS client the wrapper uses.
// Narrowed to an interface so tests can inject a stub.
type API interface {
	ListQueues(ctx context.Context, params *awssqs.ListQueuesInput, optFns ...func(*awssqs.Options)) (*awssqs.ListQueuesOutput, error)
	GetQueueUrl(ctx context.Context, params *awssqs.GetQueueUrlInput, optFns ...func(*awssqs.Options)) (*awssqs.GetQueueUrlOutput, error)
	GetQueueAttributes(ctx context.Context, params *awssqs.GetQueueAttributesInput, optFns ...func(*awssqs.Options)) (*awssqs.GetQueueAttributesOutput, error)
	ReceiveMessage(ctx context.Context, params *awssqs.ReceiveMessageInput, optFns ...func(*awssqs.Options)) (*awssqs.ReceiveMessageOutput, error)
	SendMessage(ctx context.Context, params *awssqs.SendMessageInput, optFns ...func(*awssqs.Options)) (*awssqs.SendMessageOutput, error)
	DeleteMessage(ctx context.Context, params *awssqs.DeleteMessageInput, optFns ...func(*awssqs.Options)) (*awssqs.DeleteMessageOutput, error)
	CreateQueue(ctx context.Context, params *awssqs.CreateQueueInput, optFns ...func(*awssqs.Options)) (*awssqs.CreateQueueOutput, error)
	DeleteQueue(ctx context.Context, params *awssqs.DeleteQueueInput, optFns ...func(*awssqs.Options)) (*awssqs.DeleteQueueOutput, error)
}

// Client implements domain.QueueService against the emulator's SQS API.
type Client struct {
	api API
}

// NewClient builds a queue client against the given endpoint.
func NewClient(awsCfg aws.Config, endpoint string) *Client {
	api := awssqs.NewFromConfig(awsCfg, func(o *awssqs.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})
	return &Client{api: api}
}

// NewClientWithAPI wires an explicit API implementation (used in tests).
func NewClientWithAPI(api API) *Client {
	return &Client{api: api}
}

// ListQueues returns all queues sorted ascending by creation timestamp.
func (c *Client) ListQueues(ctx context.Context) ([]domain.QueueSummary, error) {
	out, err := c.api.ListQueues(ctx, &awssqs.ListQueuesInput{})
	if err != nil {
		return nil, fmt.Errorf("list queues: %w", err)
	}

	queues := make([]domain.QueueSummary, 0, len(out.QueueUrls))
	for _, url := range out.QueueUrls {
		summary := domain.QueueSummary{
			Name:             queueNameFromURL(url),
			URL:              url,
			CreatedTimestamp: "0",
		}

		// Creation timestamp drives the listing order; tolerate lookup failures.
		attrs, err := c.api.GetQueueAttributes(ctx, &awssqs.GetQueueAttributesInput{
			QueueUrl:       aws.String(url),
			AttributeNames: []types.QueueAttributeName{types.QueueAttributeNameCreatedTimestamp},
		})
		if err == nil {
			if ts, ok := attrs.Attributes[string(types.QueueAttributeNameCreatedTimestamp)]; ok {
				summary.CreatedTimestamp = ts
			}
		}

		queues = append(queues, summary)
	}

	sortQueuesByCreation(queues)
	return queues, nil
}

// GetQueueURL resolves a queue name to its URL.
func (c *Client) GetQueueURL(ctx context.Context, name string) (string, error) {
	out, err := c.api.GetQueueUrl(ctx, &awssqs.GetQueueUrlInput{QueueName: aws.String(name)})
	if err != nil {
		var notFound *types.QueueDoesNotExist
		if errors.As(err, &notFound) {
			return "", fmt.Errorf("%w: %s", domain.ErrQueueNotFound, name)
		}
		return "", fmt.Errorf("get queue url for %s: %w", name, err)
	}
	return aws.ToString(out.QueueUrl), nil
}

// GetQueueAttributes returns the curated attribute view for a queue.
func (c *Client) GetQueueAttributes(ctx context.Context, name string) (*domain.QueueAttributes, error) {
	url, err := c.GetQueueURL(ctx, name)
	if err != nil {
		return nil, err
	}

	out, err := c.api.GetQueueAttributes(ctx, &awssqs.GetQueueAttributesInput{
		QueueUrl:       aws.String(url),
		AttributeNames: []types.QueueAttributeName{types.QueueAttributeNameAll},
	})
	if err != nil {
		return nil, fmt.Errorf("get queue attributes for %s: %w", name, err)
	}

	attrs := out.Attributes
	return &domain.QueueAttributes{
		Name:                                  name,
		URL:                                   url,
		ApproximateNumberOfMessages:           attrOrDefault(attrs, "ApproximateNumberOfMessages", "0"),
		ApproximateNumberOfMessagesNotVisible: attrOrDefault(attrs, "ApproximateNumberOfMessagesNotVisible", "0"),
		ApproximateNumberOfMessagesDelayed:    attrOrDefault(attrs, "ApproximateNumberOfMessagesDelayed", "0"),
		CreatedTimestamp:                      attrs["CreatedTimestamp"],
		LastModifiedTimestamp:                 attrs["LastModifiedTimestamp"],
		VisibilityTimeout:                     attrOrDefault(attrs, "VisibilityTimeout", "30"),
		MessageRetentionPeriod:                attrOrDefault(attrs, "MessageRetentionPeriod", "345600"),
		DelaySeconds:                          attrOrDefault(attrs, "DelaySeconds", "0"),
		ReceiveMessageWaitTimeSeconds:         attrOrDefault(attrs, "ReceiveMessageWaitTimeSeconds", "0"),
	}, nil
}

// ReceiveMessages long-polls the queue for up to waitSeconds, hiding returned
// messages for visibilityTimeout seconds.
func (c *Client) ReceiveMessages(ctx context.Context, name string, maxMessages, waitSeconds, visibilityTimeout int32) ([]domain.Message, error) {
	url, err := c.GetQueueURL(ctx, name)
	if err != nil {
		return nil, err
	}

	out, err := c.api.ReceiveMessage(ctx, &awssqs.ReceiveMessageInput{
		QueueUrl:                    aws.String(url),
		MaxNumberOfMessages:         maxMessages,
		WaitTimeSeconds:             waitSeconds,
		VisibilityTimeout:           visibilityTimeout,
		MessageSystemAttributeNames: []types.MessageSystemAttributeName{types.MessageSystemAttributeNameAll},
		MessageAttributeNames:       []string{"All"},
	})
	if err != nil {
		return nil, fmt.Errorf("receive messages from %s: %w", name, err)
	}

	messages := make([]domain.Message, 0, len(out.Messages))
	for _, msg := range out.Messages {
		messages = append(messages, toDomainMessage(msg))
	}
	return messages, nil
}

// SendMessage publishes a message to the named queue.
func (c *Client) SendMessage(ctx context.Context, name, body string, attributes map[string]domain.MessageAttribute, delaySeconds int32) (*domain.SendResult, error) {
	url, err := c.GetQueueURL(ctx, name)
	if err != nil {
		return nil, err
	}

	input := &awssqs.SendMessageInput{
		QueueUrl:     aws.String(url),
		MessageBody:  aws.String(body),
		DelaySeconds: delaySeconds,
	}
	if len(attributes) > 0 {
		input.MessageAttributes = toSDKAttributes(attributes)
	}

	out, err := c.api.SendMessage(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("send message to %s: %w", name, err)
	}

	return &domain.SendResult{
		MessageID:        aws.ToString(out.MessageId),
		MD5OfMessageBody: aws.ToString(out.MD5OfMessageBody),
		SequenceNumber:   aws.ToString(out.SequenceNumber),
	}, nil
}

// DeleteMessage acknowledges a specific delivery by its receipt handle.
func (c *Client) DeleteMessage(ctx context.Context, name, receiptHandle string) error {
	url, err := c.GetQueueURL(ctx, name)
	if err != nil {
		return err
	}

	if _, err := c.api.DeleteMessage(ctx, &awssqs.DeleteMessageInput{
		QueueUrl:      aws.String(url),
		ReceiptHandle: aws.String(receiptHandle),
	}); err != nil {
		return fmt.Errorf("delete message from %s: %w", name, err)
	}
	return nil
}

// CreateQueue creates a queue and returns its URL.
func (c *Client) CreateQueue(ctx context.Context, name string, attributes map[string]string) (string, error) {
	input := &awssqs.CreateQueueInput{QueueName: aws.String(name)}
	if len(attributes) > 0 {
		input.Attributes = attributes
	}

	out, err := c.api.CreateQueue(ctx, input)
	if err != nil {
		return "", fmt.Errorf("create queue %s: %w", name, err)
	}
	return aws.ToString(out.QueueUrl), nil
}

// DeleteQueue removes the named queue.
func (c *Client) DeleteQueue(ctx context.Context, name string) error {
	url, err := c.GetQueueURL(ctx, name)
	if err != nil {
		return err
	}

	if _, err := c.api.DeleteQueue(ctx, &awssqs.DeleteQueueInput{QueueUrl: aws.String(url)}); err != nil {
		return fmt.Errorf("delete queue %s: %w", name, err)
	}
	return nil
}

func queueNameFromURL(url string) string {
	idx := strings.LastIndex(url, "/")
	if idx < 0 {
		return url
	}
	return url[idx+1:]
}

func sortQueuesByCreation(queues []domain.QueueSummary) {
	sort.SliceStable(queues, func(i, j int) bool {
		return creationSeconds(queues[i]) < creationSeconds(queues[j])
	})
}

func creationSeconds(q domain.QueueSummary) float64 {
	ts, err := strconv.ParseFloat(q.CreatedTimestamp, 64)
	if err != nil {
		return 0
	}
	return ts
}

func toDomainMessage(msg types.Message) domain.Message {
	attributes := msg.Attributes
	if attributes == nil {
		attributes = map[string]string{}
	}

	messageAttributes := make(map[string]domain.MessageAttribute, len(msg.MessageAttributes))
	for key, value := range msg.MessageAttributes {
		messageAttributes[key] = domain.MessageAttribute{
			DataType:    aws.ToString(value.DataType),
			StringValue: aws.ToString(value.StringValue),
			BinaryValue: value.BinaryValue,
		}
	}

	return domain.Message{
		MessageID:         aws.ToString(msg.MessageId),
		ReceiptHandle:     aws.ToString(msg.ReceiptHandle),
		Body:              aws.ToString(msg.Body),
		Attributes:        attributes,
		MessageAttributes: messageAttributes,
	}
}

func toSDKAttributes(attributes map[string]domain.MessageAttribute) map[string]types.MessageAttributeValue {
	sdkAttrs := make(map[string]types.MessageAttributeValue, len(attributes))
	for key, attr := range attributes {
		value := types.MessageAttributeValue{
			DataType: aws.String(attr.DataType),
		}
		if len(attr.BinaryValue) > 0 {
			value.BinaryValue = attr.BinaryValue
		} else {
			value.StringValue = aws.String(attr.StringValue)
		}
		sdkAttrs[key] = value
	}
	return sdkAttrs
}

func attrOrDefault(attrs map[string]string, key, fallback string) string {
	if v, ok := attrs[key]; ok && v != "" {
		return v
	}
	return fallback
}
