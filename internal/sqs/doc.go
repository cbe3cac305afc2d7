// Package sqs wraps the AWS SDK v2 SQS client pointed at the local emulator.
//
// Implements domain.QueueService: listing, attributes, send/receive/delete,
// and queue lifecycle. The streaming core consumes the narrower
// domain.QueueClient view for its long-poll receives.
package sqs
