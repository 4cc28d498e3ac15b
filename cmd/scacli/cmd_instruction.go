package main

import (
	"encoding/hex"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/saftindustries/sca"
	"github.com/saftindustries/sca/x/escrow"
)

// instructionArgs holds every value an instruction may be built from.
type instructionArgs struct {
	value    uint64
	token    escrow.TokenVersion
	itemRef  sca.ContentRef
	party    escrow.Party
	evidence sca.ContentRef
}

var instructionBuilders = map[string]func(instructionArgs) escrow.Instruction{
	"initialize":       func(a instructionArgs) escrow.Instruction { return escrow.InitializeOperation{Value: a.value, TokenVersion: a.token, ItemRef: a.itemRef} },
	"register-buyer":   func(instructionArgs) escrow.Instruction { return escrow.RegisterBuyer{} },
	"register-arbiter": func(instructionArgs) escrow.Instruction { return escrow.RegisterArbiter{} },
	"approve":          func(a instructionArgs) escrow.Instruction { return escrow.ApproveArbiters{Party: a.party} },
	"deposit":          func(instructionArgs) escrow.Instruction { return escrow.BuyerDeposit{} },
	"release":          func(instructionArgs) escrow.Instruction { return escrow.BuyerRelease{} },
	"refund":           func(instructionArgs) escrow.Instruction { return escrow.SellerRefund{} },
	"start-dispute":    func(instructionArgs) escrow.Instruction { return escrow.StartDispute{} },
	"seller-add-info":  func(a instructionArgs) escrow.Instruction { return escrow.SellerAddInfo{Evidence: a.evidence} },
	"buyer-add-info":   func(a instructionArgs) escrow.Instruction { return escrow.BuyerAddInfo{Evidence: a.evidence} },
	"vote":             func(a instructionArgs) escrow.Instruction { return escrow.ArbiterVote{For: a.party} },
	"claim":            func(instructionArgs) escrow.Instruction { return escrow.ParticipantClaim{} },
}

func instructionNames() []string {
	names := make([]string, 0, len(instructionBuilders))
	for name := range instructionBuilders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func cmdEncode(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), `
Encode an escrow instruction and print it hex encoded.

Business rules are not validated. Supported instructions are:
	%s
`, strings.Join(instructionNames(), "\n\t"))
		fl.PrintDefaults()
	}
	var (
		opFl       = fl.String("op", "", "Name of the instruction to encode.")
		valueFl    = fl.Uint64("value", 0, "Operation value, used by initialize.")
		tokenFl    = fl.Uint("token", uint(escrow.TokenNative), "Token version, used by initialize.")
		itemFl     = flRef(fl, "item", "Item reference, used by initialize.")
		partyFl    = fl.String("party", "buyer", "Either buyer or seller, used by approve and vote.")
		evidenceFl = flRef(fl, "evidence", "Evidence reference, used by seller-add-info and buyer-add-info.")
	)
	fl.Parse(args)

	build, ok := instructionBuilders[*opFl]
	if !ok {
		return fmt.Errorf("unknown instruction %q", *opFl)
	}
	if *tokenFl > 0xff {
		return fmt.Errorf("token version %d does not fit a byte", *tokenFl)
	}
	party, err := escrow.ParseParty(*partyFl)
	if err != nil {
		return err
	}
	ins := build(instructionArgs{
		value:    *valueFl,
		token:    escrow.TokenVersion(*tokenFl),
		itemRef:  *itemFl,
		party:    party,
		evidence: *evidenceFl,
	})
	_, err = fmt.Fprintln(output, hex.EncodeToString(escrow.EncodeInstruction(ins)))
	return err
}

func cmdDecodeInstruction(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Read a hex encoded instruction from standard input and print it in a
human readable JSON form.
`)
		fl.PrintDefaults()
	}
	fl.Parse(args)

	raw, err := readHex(input)
	if err != nil {
		return err
	}
	ins, err := escrow.DecodeInstruction(raw)
	if err != nil {
		return err
	}
	pretty, err := json.MarshalIndent(newInstructionView(ins), "", "\t")
	if err != nil {
		return fmt.Errorf("cannot JSON serialize: %s", err)
	}
	_, err = fmt.Fprintln(output, string(pretty))
	return err
}

type instructionView struct {
	Instruction  string               `json:"instruction"`
	Value        *uint64              `json:"value,omitempty"`
	TokenVersion *escrow.TokenVersion `json:"token_version,omitempty"`
	ItemRef      *sca.ContentRef      `json:"item_ref,omitempty"`
	Party        string               `json:"party,omitempty"`
	Evidence     *sca.ContentRef      `json:"evidence,omitempty"`
}

func newInstructionView(ins escrow.Instruction) instructionView {
	v := instructionView{Instruction: ins.Opcode().String()}
	switch m := ins.(type) {
	case escrow.InitializeOperation:
		v.Value = &m.Value
		v.TokenVersion = &m.TokenVersion
		v.ItemRef = &m.ItemRef
	case escrow.ApproveArbiters:
		v.Party = m.Party.String()
	case escrow.ArbiterVote:
		v.Party = m.For.String()
	case escrow.SellerAddInfo:
		v.Evidence = &m.Evidence
	case escrow.BuyerAddInfo:
		v.Evidence = &m.Evidence
	}
	return v
}
