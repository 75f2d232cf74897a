package vmpu

// HasUserRead, HasUserWrite and friends test individual ACL flags. These
// are deliberately thin: the ACL word is opaque to every component
// except the driver and the region table, which only need to test and
// combine flags, never interpret them further.
func (a ACL) HasUserRead() bool          { return a&ACLUserRead != 0 }
func (a ACL) HasUserWrite() bool         { return a&ACLUserWrite != 0 }
func (a ACL) HasUserExecute() bool       { return a&ACLUserExecute != 0 }
func (a ACL) HasSecureExecute() bool     { return a&ACLSecureExecute != 0 }
func (a ACL) HasNonSecureCallable() bool { return a&ACLNonSecureCallable != 0 }

// ACLDefaultStack and ACLDefaultData are the ACL words uVisor assigns to
// a box's stack and bss regions respectively.
const (
	ACLDefaultStack = ACLUserRead | ACLUserWrite
	ACLDefaultData  = ACLUserRead | ACLUserWrite
)

func (a ACL) String() string {
	if a == 0 {
		return "-"
	}
	flags := [5]struct {
		bit  ACL
		name string
	}{
		{ACLUserRead, "UR"},
		{ACLUserWrite, "UW"},
		{ACLUserExecute, "UX"},
		{ACLSecureExecute, "SX"},
		{ACLNonSecureCallable, "NSC"},
	}
	out := make([]byte, 0, 16)
	for _, f := range flags {
		if a&f.bit != 0 {
			if len(out) > 0 {
				out = append(out, '|')
			}
			out = append(out, f.name...)
		}
	}
	return string(out)
}
