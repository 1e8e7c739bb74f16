package middleware

// Keys under which the JWT and request-id middleware stash values on the echo
// context for handlers and the request logger.
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"
)
