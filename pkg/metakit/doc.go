// Package metakit holds the public data model shared by every metakit
// component: the unified vehicle record, its per-dialect sub-records, the
// ordered record collection, the logger interface and the sentinel errors.
package metakit
