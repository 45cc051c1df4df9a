// Package db holds the PostgreSQL schema and the sqlc-generated query layer.
package db

import _ "embed"

// Schema is the idempotent DDL applied on startup.
//
//go:embed schema.sql
var Schema string
