/*
Package ports defines the driven ports (interfaces) of Aura.

These interfaces decouple the screens and the demo bank from concrete transports and
storage backends.

# Key Interfaces

  - NetworkService: The network boundary used by the client repositories (login, transfer, accounts).
  - Bank: The operations the demo bank backend serves over HTTP.
  - LedgerStore: Persists customers and their accounts for the bank.
  - DistributedLocker: Provides distributed locking so concurrent transfers stay consistent across replicas.
*/
package ports
