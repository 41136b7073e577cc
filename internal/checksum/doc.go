// Package checksum provides document hashing with normalization support.
//
// Two checksums are computed per document:
//
//   - Raw checksum: hash of the exact file content (detects all changes)
//   - Normalized checksum: hash after removing comments and normalizing whitespace
//     (formatting-independent content identity)
//
// The merge engine also hashes its record fingerprints with CalculateString.
//
// # Example Usage
//
//	calculator := checksum.New()
//	raw := calculator.CalculateRaw(content)
//	normalized := calculator.CalculateNormalized(content)
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
