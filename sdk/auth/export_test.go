package auth

// WithClock lets external tests pin the session's notion of "now".
var WithClock = withClock
