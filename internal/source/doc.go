// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package source resolves a dataset spec given on the command line into a
// table.Dataset. A spec is one of:
//   - "-" for stdin
//   - s3://bucket/key[?versionId=id]
//   - postgres://…?table=name[&order=col,col]
//   - anything else, taken as a local file path
//
// Versioned S3 objects never change, so their bodies are kept in the on-disk
// cache. Postgres tables are read in text result format so every value
// compares the way psql would print it.
package source
