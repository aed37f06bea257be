// Package daemon hosts the long-running waiting-list process: it owns
// the single-instance lock, the queue core, operator authorization,
// and best-effort notifications, and exposes the operations the IPC
// server maps onto the socket.
package daemon
