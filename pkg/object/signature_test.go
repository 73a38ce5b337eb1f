package object

import (
	"testing"
	"time"
)

func TestSignatureString(t *testing.T) {
	sig := Signature{
		Name:  "Grace",
		Email: "grace@navy.mil",
		When:  time.Unix(1234567890, 0).In(time.FixedZone("", -(5*3600 + 30*60))),
	}
	want := "Grace <grace@navy.mil> 1234567890 -0530"
	if got := sig.String(); got != want {
		t.Errorf("String: got %q, want %q", got, want)
	}
}

func TestParseSignature(t *testing.T) {
	sig, err := ParseSignature("Grace Hopper <grace@navy.mil> 1234567890 -0530")
	if err != nil {
		t.Fatalf("ParseSignature: %v", err)
	}
	if sig.Name != "Grace Hopper" || sig.Email != "grace@navy.mil" {
		t.Errorf("identity: got %q <%q>", sig.Name, sig.Email)
	}
	if sig.When.Unix() != 1234567890 {
		t.Errorf("timestamp: got %d", sig.When.Unix())
	}
	if _, off := sig.When.Zone(); off != -(5*3600 + 30*60) {
		t.Errorf("offset: got %d", off)
	}
}

func TestParseSignatureErrors(t *testing.T) {
	for _, line := range []string{
		"no email 1 +0000",
		"A <a@b>",
		"A <a@b> notanumber +0000",
		"A <a@b> 1 0000",
		"A <a@b> 1 +00x0",
		"A <a@b> 1 +0075",
	} {
		if _, err := ParseSignature(line); err == nil {
			t.Errorf("ParseSignature(%q): expected error", line)
		}
	}
}
