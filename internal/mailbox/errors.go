package mailbox

import "fmt"

// ConnectionError reports a failure to reach or authenticate with the
// remote mailbox server. It aborts the ingestion cycle without retry.
type ConnectionError struct {
	Op  string
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("mailbox connection failed (%s): %v", e.Op, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// ProtocolError reports a malformed or unexpected response from the
// mailbox server after the connection was established.
type ProtocolError struct {
	Op  string
	Err error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("mailbox protocol error (%s): %v", e.Op, e.Err)
}

func (e *ProtocolError) Unwrap() error { return e.Err }

// ParseError reports a single malformed message. The ingestion pipeline
// skips the message and continues with the rest of the batch.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("message parse failed: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }
