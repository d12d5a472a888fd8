// Package models defines the payloads exchanged with the platform API.
//
// Field names follow the server's JSON (Mongo-style "_id" identifiers and
// camelCase keys). Types are plain data; validation that depends on the
// server lives in the services package.
package models
