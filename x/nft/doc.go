/*
Package nft implements a registry of non-fungible tokens with exclusive
ownership, delegated transfer rights and a configurable mint policy.

Every token has exactly one owner. The owner can attach per-token
approvals with an optional expiry, and any account can grant blanket
operator rights over its whole collection. Minting is open to anyone
and guarded, in order, by a collection supply cap, a per-wallet mint
cap and an optional mint price that incoming funds must cover. Proceeds
accumulate in an external treasury and can be withdrawn to a configured
address that only the collection owner may change.

Token ids are assigned sequentially at mint time and exposed as decimal
strings. Enumeration, global or per owner, pages through tokens in mint
order using an exclusive cursor.
*/
package nft
