package event

// EventDataKey defines standard keys used in event data
type EventDataKey string

const (
	KeyError          EventDataKey = "error"
	KeySubject        EventDataKey = "subject"
	KeyRecipient      EventDataKey = "recipient"
	KeyAmount         EventDataKey = "amount"
	KeySignature      EventDataKey = "signature"
	KeyIdempotencyKey EventDataKey = "idempotency_key"
	KeyStatusCode     EventDataKey = "status_code"
)
