/*
Package dump provides I/O operations for collected states of the Mio Token
contracts.

A dump consists of contract states, raw storage items and balance histories
decoded from the token storage. Raw items allow to restore a "live" contract
state for testing while decoded histories are human-readable and can be
checked against snapshot queries of the contract.

The package works with dumps stored in the file system using human-readable
encoding.
*/
package dump
