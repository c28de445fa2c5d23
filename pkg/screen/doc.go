/*
Package screen implements the Login, Home and Transfer screen state machines.

Each screen owns a single observable slot holding a domain.LCE value and is its only
writer. Front ends read the slot (State or Watch) and invoke commands; every command
writes exactly one value synchronously and, when it reaches the network, one more value
once the call resolves.

# Re-submission policy

A command issued while a previous one is still in flight is handled explicitly:

  - Login.Submit and Transfer.Submit ignore it and return domain.ErrInFlight.
  - Home.Refresh cancels the previous call and replaces it; the superseded call returns
    domain.ErrSuperseded and its result is discarded.

Close tears a screen down: in-flight calls are cancelled and watchers are released.
*/
package screen
