// Package propsdk is the Go client for the PropertyPlus backend API.
//
// The backend speaks a uniform convention: JSON request bodies (multipart
// when files are attached) and JSON responses carrying at least a
// success flag plus a human-readable message on failure. The client never
// branches on HTTP status codes; only the success field drives control
// flow, and every refusal surfaces the backend's message verbatim as a
// *APIError. Network faults are reported as *APIError with Transport set.
//
// Client covers the unauthenticated operations (signup, login, lookups).
// Login returns a Session, which attaches the bearer token to every
// subsequent call. The session reads the token's exp claim without
// verifying it, purely to know when a re-login prompt is due; the backend
// remains the authority on token validity.
package propsdk
