// Package models holds the records kept by the development backend. JSON
// tags match what the platform API sends, so records are written to the
// wire as they are.
package models
