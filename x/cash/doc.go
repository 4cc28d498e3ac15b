/*
Package cash holds native token balances of identities.

There is no logic in the token, except that the balance of any account may
not go below zero nor overflow. Escrow vaults are plain accounts in this
package, owned by derived identities.
*/
package cash
