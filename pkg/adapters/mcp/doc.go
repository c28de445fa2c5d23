// Package mcp exposes the login, balance and transfer flows as Model Context Protocol tools,
// so an agent can drive the bank through the same screens a person uses.
package mcp
