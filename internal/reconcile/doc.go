// Package reconcile matches a tier's song catalog against a player's clear records.
//
// # Pipeline
//
// Every catalog entry goes through the same four steps:
//
//  1. [Rules.Fingerprint] turns the raw title into a join key: NFKC, trailing difficulty marker removed,
//     only ASCII alphanumerics and kana/kanji kept, lower-cased.
//  2. [Rules.ClassifyVariant] reads the raw title's marker to decide which status column(s) apply.
//  3. The key is looked up in an [Index] built once from the records (first record wins on duplicates).
//  4. [Resolve] turns the target mode and the matched record into an [models.Outcome].
//
// [Engine.Reconcile] runs the steps for the whole catalog and partitions entries into revenge and unplayed
// lists, preserving catalog order. Cleared entries are dropped from both lists and only counted.
//
// Nothing in this package performs I/O or returns errors for data content: unknown columns,
// empty titles and duplicate records all degrade to well-defined outcomes.
//
// [Suggest] is a diagnostics helper that proposes near-miss record keys for entries that found no match.
package reconcile
