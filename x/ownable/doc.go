/*
Package ownable implements a reusable ownership record with a two-step
handoff. A module registers one record under its own name and consults
it whenever an operation is restricted to the current owner.

Transferring ownership is a proposal followed by an acceptance by the
proposed owner, so a typo in the new owner address cannot brick the
record. A proposal may carry an expiry after which it can no longer be
accepted. The current owner can also renounce, leaving the record
permanently ownerless.
*/
package ownable
