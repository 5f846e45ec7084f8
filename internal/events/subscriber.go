package events

// Subscriber receives record-response events from the bus. Payloads are the
// raw JSON bytes the publisher emitted; decode into RecordResponseUpdated for
// the response-updated topic.
type Subscriber interface {
	// Subscribe delivers raw event payloads on the returned channel.
	// Call the returned cancel function to unsubscribe and close the channel.
	Subscribe(topic string) (<-chan []byte, func(), error)
	Close() error
}
