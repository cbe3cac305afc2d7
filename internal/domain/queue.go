package domain

import "context"

// QueueSummary is one entry of the queue listing, ordered by creation time.
type QueueSummary struct {
	Name             string `json:"name"`
	URL              string `json:"url"`
	CreatedTimestamp string `json:"createdTimestamp"`
}

// QueueAttributes is the curated attribute view for a single queue.
type QueueAttributes struct {
	Name                                  string `json:"name"`
	URL                                   string `json:"url"`
	ApproximateNumberOfMessages           string `json:"approximateNumberOfMessages"`
	ApproximateNumberOfMessagesNotVisible string `json:"approximateNumberOfMessagesNotVisible"`
	ApproximateNumberOfMessagesDelayed    string `json:"approximateNumberOfMessagesDelayed"`
	CreatedTimestamp                      string `json:"createdTimestamp"`
	LastModifiedTimestamp                 string `json:"lastModifiedTimestamp"`
	VisibilityTimeout                     string `json:"visibilityTimeout"`
	MessageRetentionPeriod                string `json:"messageRetentionPeriod"`
	DelaySeconds                          string `json:"delaySeconds"`
	ReceiveMessageWaitTimeSeconds         string `json:"receiveMessageWaitTimeSeconds"`
}

// QueueClient is the boundary the streaming core consumes. The long-poll
// receive blocks up to waitSeconds; a short visibility timeout keeps observed
// messages quickly visible again for other consumers.
type QueueClient interface {
	ListQueues(ctx context.Context) ([]QueueSummary, error)
	GetQueueURL(ctx context.Context, name string) (string, error)
	ReceiveMessages(ctx context.Context, name string, maxMessages, waitSeconds, visibilityTimeout int32) ([]Message, error)
}

// QueueService is the full queue surface the REST layer delegates to.
// Message deletion lives here, never in the streaming core: observing a
// message over the stream and consuming it are separate client actions.
type QueueService interface {
	QueueClient
	GetQueueAttributes(ctx context.Context, name string) (*QueueAttributes, error)
	SendMessage(ctx context.Context, name, body string, attributes map[string]MessageAttribute, delaySeconds int32) (*SendResult, error)
	DeleteMessage(ctx context.Context, name, receiptHandle string) error
	CreateQueue(ctx context.Context, name string, attributes map[string]string) (string, error)
	DeleteQueue(ctx context.Context, name string) error
}
