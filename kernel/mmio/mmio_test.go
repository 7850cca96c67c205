package mmio

import "testing"

func TestLoadStore16(t *testing.T) {
	specs := []uint16{0, 1, 0x0e41, 0x00fe, 0xffff}

	buf := make([]uint16, 4)
	for specIndex, val := range specs {
		for i := range buf {
			buf[i] = 0xdead
		}

		Store16(&buf[1], val)

		if got := Load16(&buf[1]); got != val {
			t.Errorf("[spec %d] expected Load16 to return 0x%x; got 0x%x", specIndex, val, got)
		}

		// Neighbouring words must not be touched by a 16-bit store
		if buf[0] != 0xdead || buf[2] != 0xdead {
			t.Errorf("[spec %d] expected Store16 to only modify the target word; got %x", specIndex, buf)
		}
	}
}
