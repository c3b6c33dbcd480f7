package interrupts

import "testing"

func TestRequestAndClear(t *testing.T) {
	s := NewService()
	s.Request(Timer)
	if !bitSet(s.IF, Timer) {
		t.Fatal("expected Timer flag set after Request")
	}
	s.Clear(Timer)
	if bitSet(s.IF, Timer) {
		t.Fatal("expected Timer flag clear after Clear")
	}
}

func bitSet(v uint8, f Flag) bool { return v&(1<<f) != 0 }

func TestPending_RequiresBothIFAndIE(t *testing.T) {
	s := NewService()
	s.Request(VBlank)
	if s.Pending(VBlank) {
		t.Fatal("expected not pending: IE not set")
	}
	s.IE = 1 << VBlank
	if !s.Pending(VBlank) {
		t.Fatal("expected pending once IE is set")
	}
}

func TestNextPending_PriorityOrder(t *testing.T) {
	s := NewService()
	s.IE = 0x1F
	s.Request(Joypad)
	s.Request(LCD)

	f, ok := s.NextPending()
	if !ok || f != LCD {
		t.Fatalf("expected LCD to win priority, got %v ok=%v", f, ok)
	}
}

func TestRead_IFTopBitsAlwaysOne(t *testing.T) {
	s := NewService()
	s.IF = 0x01
	if got := s.Read(FlagRegister); got&0xE0 != 0xE0 {
		t.Fatalf("expected top 3 bits set, got %08b", got)
	}
}

func TestVector(t *testing.T) {
	cases := map[Flag]uint16{VBlank: 0x0040, LCD: 0x0048, Timer: 0x0050, Serial: 0x0058, Joypad: 0x0060}
	for f, want := range cases {
		if got := Vector(f); got != want {
			t.Errorf("Vector(%d): expected %#04x, got %#04x", f, want, got)
		}
	}
}
