// Package util provides the low-level building blocks used by the dedupe
// pipeline.
//
// Key Components:
//
// Content Fingerprints:
//   - SHA-256 digests streamed in fixed ChunkSize reads
//   - Hex encoding (FingerprintLen characters), EmptyFingerprint for zero bytes
//   - IsFingerprint for validating digests parsed back out of folder names
//
// Destination Naming:
//   - FolderName / FingerprintFromFolderName for "<fingerprint>_<original>"
//   - CopyName for the "_copyN" collision variants
//   - UniqueDestination for picking a name that never overwrites an existing entry
//
// All filesystem access goes through a billy.Filesystem so the helpers work
// the same against the host filesystem and an in-memory one.
package util
