package domain

import "errors"

var ErrMissingPayload = errors.New("notification has no payload for its type")

// Mail is one outgoing message. Staff broadcasts use Bcc only so recipients
// never see each other.
type Mail struct {
	To      []string
	Bcc     []string
	Subject string
	Text    string
	HTML    string
}
