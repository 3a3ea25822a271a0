package outbox

// Outbox row appended after the aggregate mutation commits. An append that
// fails is logged and dropped rather than rolling the mutation back.
// The worker relay reads pending rows and publishes them to the bus.
type Message struct {
	ID         string
	EventType  string
	Payload    []byte
	Status     string // pending, published, failed
	RetryCount int
}
