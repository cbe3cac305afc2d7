// Package dynamo wraps the AWS SDK v2 DynamoDB client pointed at the local emulator.
//
// Implements domain.TableService. Items cross the boundary as plain
// JSON-compatible maps; attributevalue handles the AttributeValue conversion.
package dynamo
