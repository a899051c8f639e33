// Package ai is the gateway to the Gemini text model.
//
// A Gateway chooses a strategy on every call:
//   - remote: when an API key is stored, the request goes to Gemini through
//     the genai SDK or a plain REST call (config.AITransport)
//   - fallback: without a key, or when the remote call fails, a canned
//     response is built locally so callers always get text back
//
// # Basic Usage
//
//	gw, err := ai.NewGateway(store, settings, logger)
//	answer := gw.AskGuru(ctx, "How do I sidechain in FL Studio?")
//	spark := gw.Spark(ctx, "lofi")
//
// # Credentials
//
// The key is stored in plaintext in the kv.Store under kv.KeyAPIKey. When
// nothing is stored, settings.APIKey (from GEMINI_API_KEY) seeds it.
package ai
