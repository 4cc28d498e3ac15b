package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/saftindustries/sca"
	"github.com/saftindustries/sca/app"
	"github.com/saftindustries/sca/x/escrow"
)

func cmdDecodeRecord(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), `
Read a hex encoded %d byte escrow record from standard input and print it in
a human readable JSON form.
`, escrow.RecordSize)
		fl.PrintDefaults()
	}
	fl.Parse(args)

	raw, err := readHex(input)
	if err != nil {
		return err
	}
	rec, err := escrow.DecodeRecord(raw)
	if err != nil {
		return err
	}
	return writeJSON(output, rec)
}

func cmdViewRecord(input io.Reader, output io.Writer, args []string) error {
	fl := flag.NewFlagSet("", flag.ExitOnError)
	fl.Usage = func() {
		fmt.Fprint(flag.CommandLine.Output(), `
Open the ledger described by the configuration file and print the record
stored under given handle, together with the derived state and vault
holdings.
`)
		fl.PrintDefaults()
	}
	var (
		configFl = fl.String("config", env("SCACLI_CONFIG", "sca.toml"),
			"Path to the ledger configuration file. You can use SCACLI_CONFIG environment variable to set it.")
		handleFl = flIdentity(fl, "handle", "", "Base58 handle of the record.")
	)
	fl.Parse(args)

	if handleFl.IsZero() {
		return fmt.Errorf("handle is required")
	}
	cfg, err := app.LoadConfig(*configFl)
	if err != nil {
		return err
	}
	exec, err := app.NewFromConfig(cfg, nil, nil)
	if err != nil {
		return err
	}
	defer exec.Close()

	acc, err := exec.Holdings(*handleFl)
	if err != nil {
		return err
	}
	return writeJSON(output, recordView{
		Handle:  *handleFl,
		State:   escrow.StateOf(acc).String(),
		Hold:    acc.Hold,
		Dispute: acc.Dispute,
		Record:  acc.Record,
	})
}

type recordView struct {
	Handle  sca.Identity  `json:"handle"`
	State   string        `json:"state"`
	Hold    uint64        `json:"hold"`
	Dispute uint64        `json:"dispute"`
	Record  escrow.Record `json:"record"`
}

func writeJSON(output io.Writer, v interface{}) error {
	pretty, err := json.MarshalIndent(v, "", "\t")
	if err != nil {
		return fmt.Errorf("cannot JSON serialize: %s", err)
	}
	_, err = fmt.Fprintln(output, string(pretty))
	return err
}
