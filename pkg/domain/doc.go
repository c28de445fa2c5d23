/*
Package domain contains the core domain models of the Aura banking client.

It defines the screen lifecycle values, the request and response shapes exchanged with
the bank, and the closed taxonomy of network failures. This package is kept pure and free
of I/O, following Hexagonal Architecture principles.

# Key Entities

  - LCE: The Loading/Content/Error lifecycle of an asynchronous screen operation.
  - LoginContent, HomeContent, TransferContent: The payloads each screen renders.
  - UserAccount: An account returned by the accounts fetch; one of them is primary.
  - NetworkError: ServerError, ConnectivityError or UnknownError.
  - Session: The in-memory association between a logged-in identifier and the screens it unlocks.
*/
package domain
