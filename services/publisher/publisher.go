package publisher

// Publisher defines the interface for publishing search outcomes to
// downstream consumers
type Publisher interface {
	// Publish publishes an encoded outcome under the given key
	Publish(key string, message []byte) error

	// TrimStreams trims the outcome streams to their maximum length
	TrimStreams() error

	// Close closes the publisher
	Close() error
}
