// Package extract turns recognized text into validated inventory records.
//
// Processing happens in three phases:
//
//  1. [Normalize] cleans raw OCR output: whitespace is bounded, noise
//     lines are dropped, and common digit-context glyph confusions
//     (O/0, l/1, S/5) are corrected.
//  2. Parsing strategies scan the normalized text line by line. Each
//     [Strategy] is a pure function producing zero or more candidate
//     records; the four built-in strategies run independently in a fixed
//     order and their output is concatenated. Different capture qualities
//     and layouts favor different strategies, so the redundancy is
//     intentional — one strategy's false negatives are recovered by
//     another at the cost of tolerable duplicate noise.
//  3. [Reconcile] deduplicates candidates by (SKU, lowercased name),
//     first occurrence winning, and validates the survivors. An empty
//     survivor set fails with [ErrNoRecords].
package extract
