package domain

// MessageAttribute is a user-defined attribute attached to a queue message.
type MessageAttribute struct {
	DataType    string `json:"dataType"`
	StringValue string `json:"stringValue,omitempty"`
	BinaryValue []byte `json:"binaryValue,omitempty"`
}

// Message is one delivery of a queue message as returned by the emulator.
// Immutable once received; the receipt handle identifies this specific delivery
// and is required to acknowledge (delete) it.
type Message struct {
	MessageID         string                      `json:"messageId"`
	ReceiptHandle     string                      `json:"receiptHandle"`
	Body              string                      `json:"body"`
	Attributes        map[string]string           `json:"attributes"`
	MessageAttributes map[string]MessageAttribute `json:"messageAttributes"`
}

// SendResult is the emulator's acknowledgment of a sent message.
type SendResult struct {
	MessageID        string `json:"messageId"`
	MD5OfMessageBody string `json:"md5OfMessageBody"`
	SequenceNumber   string `json:"sequenceNumber,omitempty"`
}
