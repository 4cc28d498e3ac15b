/*
Package escrow implements a three party escrow: a seller, a buyer and a panel
of three arbiters.

> An escrow is a financial arrangement where a third party holds and regulates
> payment of the funds required for two parties involved in a given transaction.

The whole state of one operation is a Record of fixed width (RecordSize
bytes). It is mutated only by the twelve instructions of this package, each
encoded as a one byte opcode followed by a fixed payload.

The lifecycle state of an operation is never stored. It is derived from the
record fields and from the balances of two vault accounts owned by the
record: the hold vault keeps the deposit of a funded operation, the dispute
vault keeps it while a dispute is open.

  InitializeOperation  seller creates the record
  RegisterBuyer        any identity becomes the buyer
  RegisterArbiter      three more identities fill the arbiter slots
  ApproveArbiters      seller and buyer both approve the panel
  BuyerDeposit         value moves from buyer to the hold vault
  BuyerRelease         hold vault pays the seller, record is closed
  SellerRefund         hold vault pays the buyer, record is closed
  StartDispute         hold vault moves to the dispute vault
  SellerAddInfo        seller attaches evidence
  BuyerAddInfo         buyer attaches evidence
  ArbiterVote          each arbiter votes once for buyer or seller
  ParticipantClaim     the party chosen by two arbiters is paid, record is closed

Apply is the pure transition function. Handler runs it against a store and
moves the funds.
*/
package escrow
