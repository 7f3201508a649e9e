// Package api defines the shared contracts of the unixgram library: the
// event-loop bridge consumed by the datagram core, the receive result and
// callback types delivered to callers, and the socket constants re-exported
// for binding layers.
package api
