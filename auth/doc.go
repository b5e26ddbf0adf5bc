// Package auth holds the command server's optional bearer-token
// authentication.
//
// Subpackages:
//
//   - auth/jwt     signs and verifies HS256 command tokens
//   - auth/authctx carries verified claims through a request context
//
// Authentication is off until a shared secret is configured:
//
//	server:
//	  auth:
//	    secret: "change-me"
//	    token_ttl: "12h"
package auth
