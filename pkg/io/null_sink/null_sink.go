// Package null_sink provides a byte sink that discards everything and only
// records teardown calls.
package null_sink

type Sink struct {
	DestroyCalls     int
	DestroySoonCalls int
}

func (sink *Sink) Destroy() {
	sink.DestroyCalls++
}

func (sink *Sink) DestroySoon() {
	sink.DestroySoonCalls++
}
