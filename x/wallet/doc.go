/*
Package wallet implements a multisig wallet: a group of owners collects
approvals for submitted proposals and, once a threshold of distinct owner
approvals is reached, any owner can trigger the forwarded call the proposal
describes.

The wallet manages itself through the same pipeline. Changing the owner set
or the threshold requires a proposal targeted at the wallet's own address,
carrying one of the governance messages of this package as payload. There is
no other entry point for those mutations.

Every engine instance exclusively owns its state: the owner set with the
threshold, the append-only proposal list and the vote relation, all stored
in the engine's key value store. A Factory creates independent engines and
keeps track of them for enumeration.
*/
package wallet
