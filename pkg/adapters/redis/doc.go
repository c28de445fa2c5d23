// Package redis provides the Redis-backed ledger store and distributed locker.
package redis
