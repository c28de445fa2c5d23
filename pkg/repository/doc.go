/*
Package repository holds one repository per use case: login, home (accounts) and transfer.

Each repository wraps exactly one call to the network boundary. Results pass through
unchanged; failures are narrowed to domain.NetworkError and otherwise passed through.
There are no retries and no timeouts beyond the boundary's own.
*/
package repository
