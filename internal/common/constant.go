package common

// SessionCookieName is the cookie carrying the session token between the
// HTTP server and its clients.
const SessionCookieName = "session"

// RequestIDHeaderName is echoed on every HTTP response and logged with the request.
const RequestIDHeaderName = "X-Request-ID"
