/*
Package eip712 computes the typed structured data hashes signed by heads-up poker players.

A signed message digest is keccak256(0x19 || 0x01 || domainSeparator || structHash), the domain
separator binds every digest to one protocol name, version, chain and verifying contract, and the
struct hash is the abi encoding of a message type hash followed by the message fields.

Action struct hashes carry the sender address as one more 32 bytes slot after the declared
fields, so a signed action can't be relabeled to another player even though the published
Action type string doesn't list it.
*/
package eip712
