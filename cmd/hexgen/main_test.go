package main

import "testing"

func TestUint32FlagRejectsOverflow(t *testing.T) {
	var dst *uint32
	set := uint32Flag(&dst)

	for _, v := range []string{"4294967296", "-3", "12abc"} {
		if err := set(v); err == nil {
			t.Fatalf("uint32Flag(%q) accepted", v)
		}
	}
	if dst != nil {
		t.Fatalf("rejected values set destination to %d", *dst)
	}

	if err := set("4294967295"); err != nil {
		t.Fatalf("uint32Flag(max): %v", err)
	}
	if dst == nil || *dst != 4294967295 {
		t.Fatalf("destination = %v, want 4294967295", dst)
	}
}
