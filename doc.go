// Package codex is the embeddable SDK for the codex document relationship
// engine. The pure engine functions (Classify, ExtractKeyTerms,
// FindCrossReferences, BuildSimilarityEdges, ComputeLayout) work on plain
// values without any storage; Client adds a Redis-backed corpus with the
// same operations the HTTP API exposes.
package codex
