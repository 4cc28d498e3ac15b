/*
Package x contains the extensions of the ledger.

Extensions implement common functionality (Handler, Decorator, etc.) and
are combined together by the app package into one executor. The sub
packages provide signature checks (sigs), native token balances (cash),
the escrow protocol (escrow) and cross cutting decorators (utils).
*/
package x
