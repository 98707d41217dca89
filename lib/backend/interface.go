package backend

import (
	"fmt"
)

// --------------------------------------------------------------------------
// Backend Kinds
// --------------------------------------------------------------------------

// Kind identifies which backend owns a key. The set of kinds is fixed at
// compile time and is used both for routing and for bulk wipe operations.
type Kind uint8

const (
	// KindPersistent stores values as plaintext files on disk.
	KindPersistent Kind = iota
	// KindEncryptedPersistent stores values on disk wrapped in an
	// authenticated-encryption envelope.
	KindEncryptedPersistent
	// KindMemory stores values in process memory only.
	KindMemory
)

func (k Kind) String() string {
	switch k {
	case KindPersistent:
		return "persistent"
	case KindEncryptedPersistent:
		return "encrypted"
	case KindMemory:
		return "memory"
	default:
		return "unknown"
	}
}

// AllKinds returns every defined backend kind.
func AllKinds() []Kind {
	return []Kind{KindPersistent, KindEncryptedPersistent, KindMemory}
}

// ParseKind converts a kind name (as used in config and CLI flags) back to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "persistent":
		return KindPersistent, nil
	case "encrypted":
		return KindEncryptedPersistent, nil
	case "memory":
		return KindMemory, nil
	default:
		return 0, NewError(RetCInvalidOperation, fmt.Sprintf("unknown backend kind %q (must be one of persistent, encrypted, memory)", s))
	}
}

// --------------------------------------------------------------------------
// Interface Definition
// --------------------------------------------------------------------------

// IBackend is the generic interface for a single storage medium.
// All methods must be safe for concurrent use.
//
// The syncNow parameter on write operations is a durability hint: if true, the
// operation must not return until the change is durable; if false, the change
// may be buffered and flushed asynchronously.
type IBackend interface {
	// Set inserts or updates the value for a key.
	Set(key string, value []byte, syncNow bool) (err error)
	// Delete removes the entry for a key. Deleting a missing key is not an error.
	Delete(key string, syncNow bool) (err error)
	// Get returns the value for a key. The boolean return value indicates
	// whether a value for the key was found.
	Get(key string) (value []byte, loaded bool, err error)
	// Destroy wipes the backend's entire contents. The wipe must be durable
	// before Destroy returns, independent of any syncNow hint, so that it
	// survives an immediate process termination.
	Destroy() (err error)
	// Close releases resources held by the backend without wiping data.
	Close() (err error)
}

// --------------------------------------------------------------------------
// Custom Error Type
// --------------------------------------------------------------------------

// Error is a custom error type that wraps a return code (of type RetCode)
// and an error message.
type Error struct {
	Code RetCode // The return code
	Msg  string  // The error message.
}

// Error implements the error interface.
func (e *Error) Error() string {
	errorCode := ""
	switch e.Code {
	case RetCInternalError:
		errorCode = "InternalError"
	case RetCInvalidOperation:
		errorCode = "InvalidOperation"
	case RetCIOError:
		errorCode = "IOError"
	default:
		errorCode = "Unknown"
	}

	return fmt.Sprintf("BackendError (code %s): %s", errorCode, e.Msg)
}

// NewError creates a new backend Error with the given code and message.
func NewError(code RetCode, msg string) *Error {
	return &Error{
		Code: code,
		Msg:  msg,
	}
}

// --------------------------------------------------------------------------
// Return Codes
// --------------------------------------------------------------------------

type RetCode uint64

const (
	RetCSuccess          RetCode = iota // 0: Command executed successfully.
	RetCInternalError                   // 1: Command failed due to an internal error.
	RetCIOError                         // 2: Command failed due to an I/O error.
	RetCInvalidOperation                // 3: Invalid operation.
)
