package conv

import "testing"

func TestIntToUint32(t *testing.T) {
	if got := IntToUint32(42); got != 42 {
		t.Errorf("IntToUint32(42) = %d, want 42", got)
	}
	if got := IntToUint32(0); got != 0 {
		t.Errorf("IntToUint32(0) = %d, want 0", got)
	}
}

func TestIntToUint32PanicsOnNegative(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on negative input")
		}
	}()
	IntToUint32(-1)
}
