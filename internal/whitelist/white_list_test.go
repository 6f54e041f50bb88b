package whitelist

import (
	"reflect"
	"testing"
)

func TestVerifyIP(t *testing.T) {
	if err := Setup([]string{`^127\.0\.0\.1$`, `^192\.168\.1\.\d+$`}); err != nil {
		t.Fatal(err)
	}
	defer ClearIPList()

	m := map[string]bool{
		"127.0.0.1":     true,
		"127.0.0.2":     false,
		"192.168.1.1":   true,
		"192.168.1.255": true,
		"192.168.0.1":   false,
	}

	for k, v := range m {
		if VerifyIP(k) != v {
			t.Fatalf("expect: %v, got: %v, ip: %s", v, !v, k)
		}
	}
	if !Enabled() {
		t.Fatalf("expect: enabled, got: disabled")
	}
}

func TestIPList(t *testing.T) {
	Setup([]string{"b", "a"})
	defer ClearIPList()

	if list := IPList(); !reflect.DeepEqual(list, []string{"a", "b"}) {
		t.Fatalf("expect: [a b], got: %v", list)
	}
	// Setup replaces, it does not merge
	Setup([]string{"c"})
	if list := IPList(); !reflect.DeepEqual(list, []string{"c"}) {
		t.Fatalf("expect: [c], got: %v", list)
	}
}

func TestClearIPList(t *testing.T) {
	Setup([]string{"127.0.0.1"})
	ClearIPList()
	if Enabled() || VerifyIP("127.0.0.1") {
		t.Fatalf("expect: empty list, got: %v", IPList())
	}
}

func TestSetupInvalid(t *testing.T) {
	if err := Setup([]string{"("}); err == nil {
		t.Fatalf("expect: error, got: nil")
	}
}
