package vm

import "testing"

func TestSignExtend(t *testing.T) {
	cases := []struct {
		name string
		x    Word
		n    uint8
		want Word
	}{
		{"positive imm5", 0x0F, 5, 0x000F},
		{"negative imm5", 0x1F, 5, 0xFFFF},
		{"zero", 0x00, 5, 0x0000},
		{"full width is identity", 0xBEEF, 16, 0xBEEF},
		{"negative offset9", 0x1FF, 9, 0xFFFF},
		{"positive offset9", 0x0FF, 9, 0x00FF},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := SignExtend(c.x, c.n); got != c.want {
				t.Errorf("SignExtend(%#x, %d) = %#x, want %#x", c.x, c.n, got, c.want)
			}
		})
	}
}

func TestSwap16_involution(t *testing.T) {
	for _, x := range []Word{0x0000, 0xFFFF, 0x1234, 0xBEEF, 0x00FF, 0xFF00} {
		if got := Swap16(Swap16(x)); got != x {
			t.Errorf("Swap16(Swap16(%#x)) = %#x, want %#x", x, got, x)
		}
	}
}

func TestSwap16(t *testing.T) {
	if got := Swap16(0x3000); got != 0x0030 {
		t.Errorf("Swap16(0x3000) = %#x, want 0x0030", got)
	}
}

func TestGPR_String(t *testing.T) {
	if got := R3.String(); got != "R3" {
		t.Errorf("R3.String() = %q, want %q", got, "R3")
	}
}
