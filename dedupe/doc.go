// Package dedupe finds files with identical content under a root directory
// and gathers each set of duplicates into its own folder.
//
// The pipeline runs strictly in sequence:
//
//	Scanner -> Detector -> Organizer -> IndexBuilder
//
// The Scanner lists regular files, the Detector groups them by SHA-256
// fingerprint and keeps groups with at least two members, the Organizer
// moves each group into <root>/duplicates/<fingerprint>_<original-name>,
// and the IndexBuilder writes <root>/duplicate_files_index.txt with the
// freed-space estimate and the full listing. Execute wires the stages
// together and reports failures as a *WorkflowError tagged with the stage
// that failed.
//
// Nothing is rolled back: groups moved before a failure stay moved.
package dedupe
