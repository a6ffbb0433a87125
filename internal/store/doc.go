// Package store provides SQLite-backed storage for simulation output.
//
// The store is the relational engine adapter the registry and cascade
// orchestrator sit on. It owns:
//   - Connection setup: pragmas, pool sizing for SQLite's single-writer
//     model
//   - Schema bootstrap: CREATE TABLE statements synthesized from the
//     record descriptors, plus external DDL script execution
//   - Configuration checks: which required tables are missing
//   - Generic Insert/Update helpers that pair a descriptor's synthesized
//     statement with its extracted value list
//   - Lookup and bulk-delete queries, built with squirrel
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//
// Referential integrity between the tables is a convention of the layout,
// not a declared constraint: dependent rows are removed by the cascade
// orchestrator, never by the engine.
package store
