// Package scanner lists the meta documents of a workspace.
//
// A scan walks a directory tree through filesystem.Provider, keeps files
// matching the include globs and none of the exclude globs, detects each
// file's dialect and computes raw and normalized checksums. Files whose
// normalized content is identical are reported as duplicate groups.
package scanner
