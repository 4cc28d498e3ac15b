/*
Package sca defines the common types and interfaces shared by the escrow
protocol packages, as well as implementations of some of the simpler
components (when interfaces would be too much overhead).

An Identity is a raw 32 byte value. It names a participant (a public key) as
well as ledger accounts derived from other data, such as escrow records and
their vaults. A ContentRef is a fixed 46 byte reference to content stored
outside of the ledger.

We pass context through context.Context between the executor, decorators
and handlers. There exist two functions for every XYZ of type T that we want
to support in the context:

  WithXYZ(context.Context, T) context.Context
  GetXYZ(context.Context) (val T, ok bool)

WithXYZ may panic if the value was previously set to avoid lower-level
modules overwriting the value (eg. chain id).
*/
package sca
