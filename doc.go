/*
Package quorum defines the types shared by all packages of this repository:
addresses, conditions, caller authentication and the external call contract.

A wallet is identified by a Condition, a human readable byte string that is
hashed into an Address. Every public operation is authenticated with the
caller address carried in the context. The wallet logic itself lives in
x/wallet.
*/
package quorum
