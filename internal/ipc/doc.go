// Package ipc carries the waiting-list operations between the CLI and
// the daemon as JSON-RPC over a Unix domain socket. Every queue
// operation outcome, storage faults included, travels inside the
// response types: faults are logged server-side with full detail and
// cross the socket only as a generic code and message. RPC errors are
// reserved for transport problems.
package ipc
