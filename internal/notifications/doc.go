// Package notifications pushes queue events to the operator through
// ntfy. When no topic is configured every notification is a no-op, so
// callers never need to guard their sends.
package notifications
