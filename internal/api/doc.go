// Package api implements the waiting-list core: the five queue
// operations executed as serialized transactions against the entry
// store, plus the DTOs and sentinel errors shared by the IPC and CLI
// surfaces.
package api
