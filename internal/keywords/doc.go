// Package keywords synthesizes a packed keyword string from public app
// metadata when the platform's authoritative keyword field is inaccessible.
//
// Synthesis is a pure function of the metadata record: candidates are
// extracted from the title, subtitle, genres, and description, normalized
// and deduplicated, scored by source field, position, and phrase length,
// then greedily packed into a fixed character budget. It is a best-effort
// approximation, not a reconstruction of the platform's private field.
package keywords
