// Package http provides the JSON HTTP client used for outbound API calls.
//
// The Client in this package handles:
//   - User-Agent headers
//   - JSON request bodies and response decoding
//   - Status checking with a bounded error body
//   - Timeout handling
//
// # Basic Usage
//
//	client := http.NewClient(0)
//
//	var out generateResponse
//	if err := client.PostJSON(ctx, url, payload, &out); err != nil {
//	    var se *http.StatusError
//	    if errors.As(err, &se) {
//	        // se.StatusCode, se.Body
//	    }
//	}
package http
