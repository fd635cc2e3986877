package preflight

import (
	"testing"
)

func TestValidateHook(t *testing.T) {
	for _, h := range BuiltinHooks() {
		t.Run(h.ID, func(t *testing.T) {
			if err := ValidateHook(h.ID); err != nil {
				t.Errorf("ValidateHook(%q) = %v", h.ID, err)
			}
		})
	}
}

func TestValidateHookUnknown(t *testing.T) {
	if err := ValidateHook("no-such-hook"); err == nil {
		t.Error("unknown hook id should fail")
	}
}
