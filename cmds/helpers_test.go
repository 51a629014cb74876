package cmds

import (
	"bytes"
	"slices"
	"strings"
	"testing"
)

func TestVar(t *testing.T) {
	n := Var[int]("TestVarInt", "an int")
	s := Var[string]("TestVarString", "a string")
	GlobalExecutor.MustExecute([]string{
		"TestVarInt", "42",
		"TestVarString", "bar",
	})
	if *n != 42 {
		t.Fatalf("got %v", *n)
	}
	if *s != "bar" {
		t.Fatalf("got %v", *s)
	}
	GlobalExecutor.MustExecute([]string{
		"TestVarInt.",
	})
	if *n != 0 {
		t.Fatalf("got %v", *n)
	}
}

func TestVarBadValue(t *testing.T) {
	Var[uint16]("TestVarBadValue", "")
	if err := GlobalExecutor.Execute([]string{
		"TestVarBadValue", "-1",
	}); err == nil {
		t.Fatal()
	}
}

func TestSwitch(t *testing.T) {
	on := Switch("TestSwitch", "")
	GlobalExecutor.MustExecute([]string{
		"TestSwitch",
	})
	if !*on {
		t.Fatal()
	}
	GlobalExecutor.MustExecute([]string{
		"!TestSwitch",
	})
	if *on {
		t.Fatal()
	}
}

func TestCollect(t *testing.T) {
	list := Collect[string]("TestCollect", "")
	GlobalExecutor.MustExecute([]string{
		"TestCollect", "a",
		"TestCollect", "b",
	})
	if !slices.Equal(*list, []string{"a", "b"}) {
		t.Fatalf("got %v", *list)
	}
}

func TestTypedVar(t *testing.T) {
	type Path string
	v := Var[Path]("TestTypedVar", "")
	GlobalExecutor.MustExecute([]string{
		"TestTypedVar", "/tmp",
	})
	if *v != "/tmp" {
		t.Fatalf("got %v", *v)
	}
}

func TestHelperUsage(t *testing.T) {
	Var[uint64]("TestHelperUsage", "a limit")
	buf := new(bytes.Buffer)
	GlobalExecutor.WriteUsage(buf)
	for _, expected := range []string{
		"TestHelperUsage <uint64>\ta limit\n",
		"TestHelperUsage.\treset TestHelperUsage\n",
	} {
		if !strings.Contains(buf.String(), expected) {
			t.Fatalf("got %s", buf.String())
		}
	}
}
