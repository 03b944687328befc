package classroom

import "context"

type scopeKey struct{}

// WithService opens a store scope: collaborators running under the returned context
// reach svc through FromContext.
func WithService(ctx context.Context, svc *Service) context.Context {
	return context.WithValue(ctx, scopeKey{}, svc)
}

// FromContext returns the Service of the enclosing scope, or ErrNotInitialized.
func FromContext(ctx context.Context) (*Service, error) {
	if ctx == nil {
		return nil, ErrNotInitialized
	}
	if svc, ok := ctx.Value(scopeKey{}).(*Service); ok && svc != nil {
		return svc, nil
	}
	return nil, ErrNotInitialized
}

// MustFromContext is FromContext for code paths where a missing scope is a programming error.
func MustFromContext(ctx context.Context) *Service {
	svc, err := FromContext(ctx)
	if err != nil {
		panic(err)
	}
	return svc
}
