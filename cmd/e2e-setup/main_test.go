//go:build !integration

package main

import (
	"flag"
	"testing"
)

func TestSubscriberListFlag(t *testing.T) {
	var subs subscriberList
	fs := flag.NewFlagSet("e2e", flag.ContinueOnError)
	fs.Var(&subs, "subscriber", "")

	if err := fs.Parse([]string{"-subscriber", "1,2", "-subscriber", " 3 "}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if subs.String() != "1,2,3" {
		t.Errorf("unexpected subscribers: %s", subs.String())
	}

	var bad subscriberList
	if err := bad.Set("abc"); err == nil {
		t.Error("expected an error for a non-numeric id")
	}
}
