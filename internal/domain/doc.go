// Package domain contains shared domain types used across entity sub-packages.
// The todo entity lives in domain/todo. This root package holds sentinel
// errors, validation types, and the Action/WriteStager interfaces used by the
// application layer to stage storage writes.
package domain
