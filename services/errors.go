package services

import "fmt"

// ValidationError indicates missing or malformed required input.
// Controllers map it to 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError indicates that no record matches the given identifier.
// Controllers map it to 404.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.Key)
}

// StorageError wraps a connection or constraint failure on the backing
// store. Controllers map it to 500 with a generic message; the wrapped
// error is logged, never echoed to the client.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NotificationError wraps a failed outbound delivery. It is logged by the
// dispatch helper and never propagated to the caller of the operation
// that triggered it, except where the send itself is the operation (the
// site chat-bot relay).
type NotificationError struct {
	Channel string
	Err     error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notification via %s failed: %v", e.Channel, e.Err)
}

func (e *NotificationError) Unwrap() error {
	return e.Err
}
