package nets

import (
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/undotape/configs"
	"github.com/reusee/undotape/modes"
)

func TestIsLocalAddr(t *testing.T) {
	dscope.New(
		modes.ForTest(t),
		new(Module),
		dscope.Provide(configs.NewLoader(nil, "")),
	).Call(func(
		isLocalAddr IsLocalAddr,
	) {
		yes, err := isLocalAddr("127.0.0.1:10000")
		if err != nil {
			t.Fatal(err)
		}
		if !yes {
			t.Fatal()
		}
		yes, err = isLocalAddr("192.0.2.1:80")
		if err != nil {
			t.Fatal(err)
		}
		if yes {
			t.Fatal()
		}
	})
}

func TestIsLocalAddrForms(t *testing.T) {
	dscope.New(
		modes.ForTest(t),
		new(Module),
		dscope.Provide(configs.NewLoader(nil, "")),
	).Call(func(
		isLocalAddr IsLocalAddr,
	) {
		for addr, expected := range map[string]bool{
			"localhost":        true,
			"LOCALHOST:8080":   true,
			"[::1]:443":        true,
			"10.1.2.3":         true,
			"192.168.0.1:53":   true,
			"169.254.1.1:80":   true,
			"203.0.113.9:8080": false,
			"[2001:db8::1]:80": false,
		} {
			got, err := isLocalAddr(addr)
			if err != nil {
				t.Fatal(err)
			}
			if got != expected {
				t.Fatalf("%s: got %v", addr, got)
			}
		}
	})
}
