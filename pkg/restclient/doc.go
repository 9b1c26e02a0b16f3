// Package restclient is a small JSON-over-HTTP client for third-party APIs
// that authenticate with a secret key.
//
// Every call goes through a bounded retry loop. Responses are classified:
//
//   - statuses in the request's accept set (200 by default) succeed and the
//     body is decoded into the caller's value;
//   - 401 fails at once with ErrUnauthorized;
//   - 400 and 403 fail at once with ErrRejected;
//   - 429, 500, 502, 503, 504 and transport errors are retried, and end in
//     ErrRetriesExhausted once attempts run out;
//   - anything else fails with ErrUnexpectedStatus.
//
// Error messages are meant to be shown to users. Before a message is built the
// request secret is removed from it, both in full and as its eight-character
// prefix, and response bodies are collapsed to one line and cut to 200
// characters.
//
// # Usage
//
//	client := restclient.New(
//	    restclient.WithService("Pinecone"),
//	    restclient.WithLogger(log),
//	)
//
//	var out struct{ Host string `json:"host"` }
//	err := client.Do(ctx, restclient.Request{
//	    Method:  http.MethodGet,
//	    URL:     "https://api.pinecone.io/indexes/docs",
//	    Headers: map[string]string{"Api-Key": key},
//	    Secret:  key,
//	}, &out)
//	if errors.Is(err, restclient.ErrUnauthorized) {
//	    // ask for a new key
//	}
//
// # Backoff
//
// The default strategy waits 1s after the first failed attempt and doubles
// after each further one, without jitter. No wait follows the final attempt.
// Use WithBackoff to change it and WithMaxAttempts to change the ceiling.
//
// # Signing
//
// Requests with SigningSecret carry X-Webhook-Signature, X-Webhook-Timestamp
// and X-Webhook-ID headers. The signature is the hex HMAC-SHA256 of
// timestamp + "." + body, keyed with the secret.
package restclient
