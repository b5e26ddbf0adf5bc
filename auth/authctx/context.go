// Package authctx carries verified token claims through a request context.
//
// The server's auth middleware stores them:
//
//	ctx = authctx.Set(ctx, claims)
//
// and the command layer reads them back to tag the invocation with its
// caller:
//
//	claims, ok := authctx.Get[*jwt.Claims](ctx)
//	caller := authctx.Subject(ctx)
package authctx

import "context"

type claimsKey struct{}

// Set returns a copy of ctx carrying claims.
func Set(ctx context.Context, claims any) context.Context {
	return context.WithValue(ctx, claimsKey{}, claims)
}

// Get returns the claims stored in ctx when they have type T.
func Get[T any](ctx context.Context) (T, bool) {
	claims, ok := ctx.Value(claimsKey{}).(T)
	return claims, ok
}

// Subject returns the "sub" of the stored claims, or "" when the request
// was not authenticated.
func Subject(ctx context.Context) string {
	claims, ok := Get[interface{ GetSubject() (string, error) }](ctx)
	if !ok {
		return ""
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return ""
	}
	return sub
}
