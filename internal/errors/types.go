package errors

// ValidationError reports missing or malformed input.
type ValidationError struct {
	Field   string
	Code    string
	Message string
}

// AuthenticationError reports a missing, invalid or expired identity.
type AuthenticationError struct {
	Code    string
	Message string
}

// AuthorizationError reports a valid identity that may not perform the action.
type AuthorizationError struct {
	Code    string
	Message string
}

// NotFoundError reports that a referenced entity does not exist.
type NotFoundError struct {
	Code    string
	Message string
}

// ConflictError reports a state conflict such as a duplicate unique key.
type ConflictError struct {
	Code    string
	Message string
}

// StorageError wraps an unexpected datastore or file store failure.
type StorageError struct {
	Message string
	Cause   error
}
