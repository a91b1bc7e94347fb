// Package models defines domain entities and persistence interfaces for lvx.
//
// The package contains two categories of types:
//
// 1. Table rows: lightweight values produced by the scraping collaborators
//   - [CatalogEntry] : one tier-eligible song from the authoritative list
//   - [PersonalRecord] : one song's clear state per difficulty mode
//   - [Mode], [ClearStatus], [Outcome] : closed enumerations used by reconciliation
//
// 2. Persistent entities: database-backed models with full lifecycle management
//   - [Workout] : one play session with song count and calories burned
//   - [Snapshot] : the latest reconciliation result keyed by input content hash
//
// All persistent entities implement the [Model] interface providing ID generation, timestamps and validation.
// The [Repository] interface defines standard CRUD operations for database access.
package models
