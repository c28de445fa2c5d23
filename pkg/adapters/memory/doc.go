// Package memory provides an in-process ledger store for tests and single-replica demos.
package memory
