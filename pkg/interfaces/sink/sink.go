package sink

import "errors"

var ErrNilSink = errors.New("nil sink")

// Sink is the byte stream a real response would be flushed to.
type Sink interface {
	Destroy()
	DestroySoon()
}
