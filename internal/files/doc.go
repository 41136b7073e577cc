// Package files groups the workspace file handling packages:
//   - filesystem: the filesystem collaborator (OS and in-memory)
//   - scanner: workspace discovery, dialect detection and duplicate grouping
package files
