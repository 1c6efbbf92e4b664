package shared

import "context"

type sessionContextKey struct{}

// ContextWithSession attaches the request session. The session middleware
// sets it before any handler runs; handlers read it back and the commit
// writer persists it when the response header goes out.
func ContextWithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

// SessionFromContext returns the request session, nil when the session
// middleware is not in the chain.
func SessionFromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(sessionContextKey{}).(*Session)
	return sess
}
