package frames

import "strings"

// idx1 flag masks. MidPart overlaps FirstPart|LastPart and CompUse spans
// twelve bits; both are kept as the container defines them.
const (
	FlagList      uint32 = 0x00000001
	FlagTwoCC     uint32 = 0x00000002
	FlagKeyframe  uint32 = 0x00000010
	FlagFirstPart uint32 = 0x00000020
	FlagLastPart  uint32 = 0x00000040
	FlagMidPart   uint32 = 0x00000060
	FlagNoTime    uint32 = 0x00000100
	FlagCompUse   uint32 = 0x0FFF0000
)

// IndexFlags is the decoded flag set of one idx1 entry.
//
// A named flag is true when every bit of its mask is set; CompUse is true
// when any of its bits is set. Bits that no true flag accounts for, and the
// CompUse bits themselves, are kept in Retained so that Bits reproduces the
// original word.
type IndexFlags struct {
	List      bool
	TwoCC     bool
	Keyframe  bool
	FirstPart bool
	LastPart  bool
	MidPart   bool
	NoTime    bool
	CompUse   bool

	Retained uint32
}

type namedFlag struct {
	name string
	mask uint32
	get  func(*IndexFlags) *bool
}

var namedFlags = []namedFlag{
	{"LIST", FlagList, func(f *IndexFlags) *bool { return &f.List }},
	{"TWOCC", FlagTwoCC, func(f *IndexFlags) *bool { return &f.TwoCC }},
	{"KEYFRAME", FlagKeyframe, func(f *IndexFlags) *bool { return &f.Keyframe }},
	{"FIRSTPART", FlagFirstPart, func(f *IndexFlags) *bool { return &f.FirstPart }},
	{"LASTPART", FlagLastPart, func(f *IndexFlags) *bool { return &f.LastPart }},
	{"MIDPART", FlagMidPart, func(f *IndexFlags) *bool { return &f.MidPart }},
	{"NOTIME", FlagNoTime, func(f *IndexFlags) *bool { return &f.NoTime }},
}

// DecodeFlags splits an idx1 flag word into named flags.
func DecodeFlags(bits uint32) IndexFlags {
	var f IndexFlags
	covered := uint32(0)
	for _, nf := range namedFlags {
		if bits&nf.mask == nf.mask {
			*nf.get(&f) = true
			covered |= nf.mask
		}
	}
	f.CompUse = bits&FlagCompUse != 0
	f.Retained = bits &^ covered
	return f
}

// Bits encodes the flag set: the OR of every true flag's mask plus the
// retained bits. A CompUse set by hand with no retained CompUse bits
// encodes the whole mask; a cleared CompUse drops them.
func (f IndexFlags) Bits() uint32 {
	bits := f.Retained
	if f.CompUse {
		if bits&FlagCompUse == 0 {
			bits |= FlagCompUse
		}
	} else {
		bits &^= FlagCompUse
	}
	for _, nf := range namedFlags {
		if *nf.get(&f) {
			bits |= nf.mask
		}
	}
	return bits
}

// Names returns the names of the true flags in mask order.
func (f IndexFlags) Names() []string {
	var out []string
	for _, nf := range namedFlags {
		if *nf.get(&f) {
			out = append(out, nf.name)
		}
	}
	if f.CompUse {
		out = append(out, "COMPUSE")
	}
	return out
}

func (f IndexFlags) String() string {
	names := f.Names()
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, "|")
}
