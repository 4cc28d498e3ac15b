package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/saftindustries/sca"
	"github.com/saftindustries/sca/errors"
)

// flIdentity returns a value that is being initialized with given default
// value and optionally overwritten by a command line argument if provided.
// If given value cannot be deserialized, process is terminated.
func flIdentity(fl *flag.FlagSet, name, defaultVal, usage string) *sca.Identity {
	var id identityValue
	if defaultVal != "" {
		if err := id.Set(defaultVal); err != nil {
			fmt.Fprintf(os.Stderr, "Cannot parse %q identity flag value. %s", name, err)
			os.Exit(2)
		}
	}
	fl.Var(&id, name, usage)
	return (*sca.Identity)(&id)
}

type identityValue sca.Identity

func (i identityValue) String() string {
	if sca.Identity(i).IsZero() {
		return ""
	}
	return sca.Identity(i).String()
}

func (i *identityValue) Set(raw string) error {
	id, err := sca.ParseIdentity(raw)
	if err != nil {
		return err
	}
	*i = identityValue(id)
	return nil
}

// flRef returns a content reference flag. Longer text is rejected rather
// than truncated.
func flRef(fl *flag.FlagSet, name, usage string) *sca.ContentRef {
	var r refValue
	fl.Var(&r, name, usage)
	return (*sca.ContentRef)(&r)
}

type refValue sca.ContentRef

func (r refValue) String() string {
	return sca.ContentRef(r).String()
}

func (r *refValue) Set(raw string) error {
	if len(raw) > sca.ContentRefLength {
		return fmt.Errorf("reference must not be longer than %d bytes", sca.ContentRefLength)
	}
	*r = refValue(sca.NewContentRef(raw))
	return nil
}

// readHex reads all input and decodes it as hex. Surrounding white space is
// ignored.
func readHex(input io.Reader) ([]byte, error) {
	raw, err := ioutil.ReadAll(input)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read input")
	}
	b, err := hex.DecodeString(strings.TrimSpace(string(raw)))
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, err.Error())
	}
	return b, nil
}

// env returns the value of an environment variable if provided (even if
// empty) or a fallback value.
func env(name, fallback string) string {
	if v, ok := os.LookupEnv(name); ok {
		return v
	}
	return fallback
}
