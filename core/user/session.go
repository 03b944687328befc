package user

import (
	"context"

	"github.com/pkg/errors"
)

// ErrNoSession is returned when no User was attached to the context.
var ErrNoSession = errors.New("no user session in context")

type sessionKey struct{}

// WithUser returns a copy of ctx carrying usr as the session User.
func WithUser(ctx context.Context, usr User) context.Context {
	return context.WithValue(ctx, sessionKey{}, usr)
}

// FromContext returns the session User of ctx.
func FromContext(ctx context.Context) (User, error) {
	if ctx == nil {
		return User{}, ErrNoSession
	}
	if usr, ok := ctx.Value(sessionKey{}).(User); ok {
		return usr, nil
	}
	return User{}, ErrNoSession
}
