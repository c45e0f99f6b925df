// Package model defines the record types shared by the stocklens pipeline.
//
// A [CandidateRecord] is an unvalidated, possibly duplicate extraction
// produced by a single parsing strategy. A [Record] is a candidate that has
// passed validation and deduplication; within one extraction run its
// (SKU, lowercased name) key is unique.
package model
