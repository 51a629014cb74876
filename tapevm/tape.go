package tapevm

const TapeSize = 1 << 16

// Tape is indexed by uint16, so every pointer value is in range.
type Tape [TapeSize]byte

func (t *Tape) Read(pointer uint16) byte {
	return t[pointer]
}

func (t *Tape) Increment(pointer uint16) {
	t[pointer]++
}

func (t *Tape) Decrement(pointer uint16) {
	t[pointer]--
}

// Window returns a copy of the cells in [pointer-radius, pointer+radius], wrapping around the tape ends.
func (t *Tape) Window(pointer uint16, radius uint16) []byte {
	ret := make([]byte, 0, 2*int(radius)+1)
	p := pointer - radius
	for range 2*int(radius) + 1 {
		ret = append(ret, t[p])
		p++
	}
	return ret
}
