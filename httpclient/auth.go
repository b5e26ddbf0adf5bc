package httpclient

import "net/http"

// Credentials sets authentication on an outgoing request. A nil value sends
// none.
type Credentials func(req *http.Request)

// BearerAuth sends "Authorization: Bearer <token>", as the command server
// expects. An empty token yields nil.
func BearerAuth(token string) Credentials {
	if token == "" {
		return nil
	}
	return func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}

// BasicAuth sends HTTP Basic credentials. Watson takes the literal user
// "apikey" with the API key as password.
func BasicAuth(username, password string) Credentials {
	return func(req *http.Request) {
		req.SetBasicAuth(username, password)
	}
}
