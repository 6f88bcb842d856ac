// Package events provides the evented capability shared by tours and steps:
// a typed, synchronous publish/subscribe table keyed by a closed event enum.
package events
