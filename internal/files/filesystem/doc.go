// Package filesystem provides the filesystem collaborator used to read and
// write meta documents.
//
// Key interfaces:
//   - Provider: opens directories, reads, writes and stats files
//   - Directory: a directory that can be walked
//   - File: an entry met during a walk
//
// Implementations:
//   - OSFileSystem: the OS filesystem
//   - MemoryFileSystem: an in-memory tree for tests
package filesystem
