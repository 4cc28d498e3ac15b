package escrow

import (
	"encoding/binary"
	"fmt"

	"github.com/saftindustries/sca"
	"github.com/saftindustries/sca/errors"
)

// Opcode is the first byte of every encoded instruction.
type Opcode uint8

const (
	OpInitializeOperation Opcode = 0
	OpRegisterBuyer       Opcode = 1
	OpRegisterArbiter     Opcode = 2
	OpApproveArbiters     Opcode = 3
	OpBuyerDeposit        Opcode = 4
	OpBuyerRelease        Opcode = 5
	OpSellerRefund        Opcode = 6
	OpStartDispute        Opcode = 7
	OpSellerAddInfo       Opcode = 8
	OpBuyerAddInfo        Opcode = 9
	OpArbiterVote         Opcode = 10
	OpParticipantClaim    Opcode = 11
)

var opcodeNames = [...]string{
	OpInitializeOperation: "InitializeOperation",
	OpRegisterBuyer:       "RegisterBuyer",
	OpRegisterArbiter:     "RegisterArbiter",
	OpApproveArbiters:     "ParticipantApprovesArbiters",
	OpBuyerDeposit:        "BuyerDeposit",
	OpBuyerRelease:        "BuyerRelease",
	OpSellerRefund:        "SellerRefund",
	OpStartDispute:        "StartDispute",
	OpSellerAddInfo:       "SellerAddInfo",
	OpBuyerAddInfo:        "BuyerAddInfo",
	OpArbiterVote:         "ArbiterVote",
	OpParticipantClaim:    "ParticipantClaim",
}

func (o Opcode) String() string {
	if int(o) < len(opcodeNames) {
		return opcodeNames[o]
	}
	return fmt.Sprintf("Opcode(%d)", uint8(o))
}

// PayloadSize returns the width in bytes of the payload following the
// opcode. The second result is false for unknown opcodes.
func (o Opcode) PayloadSize() (int, bool) {
	switch o {
	case OpInitializeOperation:
		return 8 + 1 + sca.ContentRefLength, true
	case OpApproveArbiters, OpArbiterVote:
		return 1, true
	case OpSellerAddInfo, OpBuyerAddInfo:
		return sca.ContentRefLength, true
	case OpRegisterBuyer, OpRegisterArbiter, OpBuyerDeposit, OpBuyerRelease,
		OpSellerRefund, OpStartDispute, OpParticipantClaim:
		return 0, true
	default:
		return 0, false
	}
}

// Party selects either side of the trade. It is encoded as a single byte.
type Party uint8

const (
	PartyBuyer  Party = 0
	PartySeller Party = 1
)

// Valid reports whether the party value is within the supported range.
func (p Party) Valid() bool {
	return p == PartyBuyer || p == PartySeller
}

func (p Party) String() string {
	switch p {
	case PartyBuyer:
		return "buyer"
	case PartySeller:
		return "seller"
	default:
		return fmt.Sprintf("Party(%d)", uint8(p))
	}
}

// Vote returns the record vote value standing for this party.
func (p Party) Vote() Vote {
	if p == PartySeller {
		return VoteSeller
	}
	return VoteBuyer
}

// ParseParty parses the text form of a party.
func ParseParty(s string) (Party, error) {
	switch s {
	case "buyer":
		return PartyBuyer, nil
	case "seller":
		return PartySeller, nil
	default:
		return 0, errors.Wrapf(errors.ErrInput, "unknown party %q", s)
	}
}

// Instruction is implemented by the twelve instruction types of this package
// only.
type Instruction interface {
	Opcode() Opcode
	// appendPayload writes the fixed width payload following the opcode.
	appendPayload([]byte) []byte
}

// InitializeOperation creates a new record. The signer becomes the seller.
type InitializeOperation struct {
	Value        uint64
	TokenVersion TokenVersion
	ItemRef      sca.ContentRef
}

// RegisterBuyer makes the signer the buyer of the operation.
type RegisterBuyer struct{}

// RegisterArbiter fills the next free arbiter slot with the signer.
type RegisterArbiter struct{}

// ApproveArbiters records the approval of the arbiter panel by the seller or
// the buyer.
type ApproveArbiters struct {
	Party Party
}

// BuyerDeposit moves the operation value from the buyer to the hold vault.
type BuyerDeposit struct{}

// BuyerRelease pays the deposit to the seller.
type BuyerRelease struct{}

// SellerRefund pays the deposit back to the buyer.
type SellerRefund struct{}

// StartDispute moves the deposit under arbitration.
type StartDispute struct{}

// SellerAddInfo sets the seller's evidence reference.
type SellerAddInfo struct {
	Evidence sca.ContentRef
}

// BuyerAddInfo sets the buyer's evidence reference.
type BuyerAddInfo struct {
	Evidence sca.ContentRef
}

// ArbiterVote casts the signer's vote.
type ArbiterVote struct {
	For Party
}

// ParticipantClaim pays the deposit to the party two arbiters voted for.
type ParticipantClaim struct{}

func (InitializeOperation) Opcode() Opcode { return OpInitializeOperation }
func (RegisterBuyer) Opcode() Opcode       { return OpRegisterBuyer }
func (RegisterArbiter) Opcode() Opcode     { return OpRegisterArbiter }
func (ApproveArbiters) Opcode() Opcode     { return OpApproveArbiters }
func (BuyerDeposit) Opcode() Opcode        { return OpBuyerDeposit }
func (BuyerRelease) Opcode() Opcode        { return OpBuyerRelease }
func (SellerRefund) Opcode() Opcode        { return OpSellerRefund }
func (StartDispute) Opcode() Opcode        { return OpStartDispute }
func (SellerAddInfo) Opcode() Opcode       { return OpSellerAddInfo }
func (BuyerAddInfo) Opcode() Opcode        { return OpBuyerAddInfo }
func (ArbiterVote) Opcode() Opcode         { return OpArbiterVote }
func (ParticipantClaim) Opcode() Opcode    { return OpParticipantClaim }

func (m InitializeOperation) appendPayload(b []byte) []byte {
	b = binary.LittleEndian.AppendUint64(b, m.Value)
	b = append(b, byte(m.TokenVersion))
	return append(b, m.ItemRef[:]...)
}

func (m ApproveArbiters) appendPayload(b []byte) []byte { return append(b, byte(m.Party)) }
func (m SellerAddInfo) appendPayload(b []byte) []byte   { return append(b, m.Evidence[:]...) }
func (m BuyerAddInfo) appendPayload(b []byte) []byte    { return append(b, m.Evidence[:]...) }
func (m ArbiterVote) appendPayload(b []byte) []byte     { return append(b, byte(m.For)) }

func (RegisterBuyer) appendPayload(b []byte) []byte    { return b }
func (RegisterArbiter) appendPayload(b []byte) []byte  { return b }
func (BuyerDeposit) appendPayload(b []byte) []byte     { return b }
func (BuyerRelease) appendPayload(b []byte) []byte     { return b }
func (SellerRefund) appendPayload(b []byte) []byte     { return b }
func (StartDispute) appendPayload(b []byte) []byte     { return b }
func (ParticipantClaim) appendPayload(b []byte) []byte { return b }

// EncodeInstruction returns the opcode followed by the payload of given
// instruction. No business rule is validated.
func EncodeInstruction(m Instruction) []byte {
	size, _ := m.Opcode().PayloadSize()
	b := make([]byte, 0, 1+size)
	b = append(b, byte(m.Opcode()))
	return m.appendPayload(b)
}

// DecodeInstruction parses an encoded instruction. It fails on an unknown
// opcode, a payload of the wrong length or an out of range selector byte.
func DecodeInstruction(raw []byte) (Instruction, error) {
	if len(raw) == 0 {
		return nil, errors.Wrap(errors.ErrMalformed, "empty instruction")
	}
	op := Opcode(raw[0])
	size, ok := op.PayloadSize()
	if !ok {
		return nil, errors.Wrapf(errors.ErrMalformed, "unknown opcode %d", raw[0])
	}
	data := raw[1:]
	if len(data) != size {
		return nil, errors.Wrapf(errors.ErrMalformed, "%s payload must be %d bytes, got %d", op, size, len(data))
	}

	switch op {
	case OpInitializeOperation:
		m := InitializeOperation{
			Value:        binary.LittleEndian.Uint64(data[:8]),
			TokenVersion: TokenVersion(data[8]),
		}
		if !m.TokenVersion.Valid() {
			return nil, errors.Wrapf(errors.ErrMalformed, "invalid token version %d", data[8])
		}
		copy(m.ItemRef[:], data[9:])
		return m, nil
	case OpRegisterBuyer:
		return RegisterBuyer{}, nil
	case OpRegisterArbiter:
		return RegisterArbiter{}, nil
	case OpApproveArbiters:
		p, err := decodeParty(data[0])
		if err != nil {
			return nil, errors.Wrap(err, "role selector")
		}
		return ApproveArbiters{Party: p}, nil
	case OpBuyerDeposit:
		return BuyerDeposit{}, nil
	case OpBuyerRelease:
		return BuyerRelease{}, nil
	case OpSellerRefund:
		return SellerRefund{}, nil
	case OpStartDispute:
		return StartDispute{}, nil
	case OpSellerAddInfo:
		var m SellerAddInfo
		copy(m.Evidence[:], data)
		return m, nil
	case OpBuyerAddInfo:
		var m BuyerAddInfo
		copy(m.Evidence[:], data)
		return m, nil
	case OpArbiterVote:
		p, err := decodeParty(data[0])
		if err != nil {
			return nil, errors.Wrap(err, "vote selector")
		}
		return ArbiterVote{For: p}, nil
	case OpParticipantClaim:
		return ParticipantClaim{}, nil
	}
	return nil, errors.Wrapf(errors.ErrHuman, "opcode %s without decoder", op)
}

func decodeParty(b byte) (Party, error) {
	p := Party(b)
	if !p.Valid() {
		return 0, errors.Wrapf(errors.ErrMalformed, "invalid selector %d", b)
	}
	return p, nil
}
