// Package notify abstracts outbound message delivery so the scheduling
// runtime never talks to a messaging SDK directly.
package notify

// Channel delivers a text message to an external destination identifier.
// Implementations must return an error for unlinked or invalid destinations
// rather than panicking.
type Channel interface {
	Send(destination, text string) error
}
