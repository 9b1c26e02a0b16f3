// Package embedding defines the item model shared by every stage of a write:
// a dense vector plus an open set of fields carried through as metadata.
//
// Items arrive as decoded JSON objects. FromMap extracts and checks the
// "embedding" array and keeps every other key in Fields untouched; which
// fields become provider metadata is decided later by the vector database
// writer.
package embedding
