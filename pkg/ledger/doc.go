/*
Package ledger implements the demo bank behind the HTTP backend.

It authenticates customers with bcrypt password hashes, lists their accounts and moves
money between primary accounts. Transfers lock both customers (in a fixed order, so
concurrent opposite transfers cannot deadlock) with an in-process reference-counted
mutex and, optionally, a distributed lock shared by every replica.
*/
package ledger
