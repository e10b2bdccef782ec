// Package service coordinates one inventory generation.
//
// A Generator owns the long-lived pieces (the cached device catalog, the
// resolver, the optional snapshot store) and runs the pipeline for each
// request: load, resolve, emit into an in-memory inventory, record.
//
// # Event System
//
// Generators publish events via EventBus so the watch command can report
// regenerations without polling. Event types are inventory_generated,
// generation_failed and catalog_reloaded.
//
// # Design Principles
//
// - Resolution completes before anything is emitted or stored
// - Repository pattern for snapshot storage
// - Context-aware for cancellation and timeouts
package service
