package ports

import "context"

// Launch is the platform's answer to a session request.
type Launch struct {
	SessionID string
	Success   bool
	Reason    string
}

// Dispatcher posts a session request document to the platform.
type Dispatcher interface {
	// Dispatch sends the request XML and reports the launched session.
	Dispatch(ctx context.Context, requestXML string) (*Launch, error)
}

// TokenProvider supplies the application token used to launch sessions.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}
