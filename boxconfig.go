package vmpu

import (
	"encoding/binary"
	"fmt"
)

// Box-config blob magic and version, carried over bit-for-bit from the
// uVisor box descriptor this format was distilled from.
const (
	BoxConfigMagic   uint32 = 0x42CFB66F
	BoxConfigVersion uint32 = 100

	boxConfigAlign = 32
)

// ACLListEntry mirrors UvBoxAclItem: a single ACL-list entry inside a
// box-config blob. Address is recorded instead of a pointer, since a Go
// process has no link-time pointer into a flashed blob.
type ACLListEntry struct {
	Start  uint32
	Length uint32
	ACL    ACL
}

const aclListEntrySize = 12 // start(4) + length(4) + acl(4)

// BoxConfig mirrors UvBoxConfig: magic, version, stack_size, an ACL
// list, a function list, and one reserved word, packed and rounded up
// to the next 32-byte boundary. The padding is part of the layout and
// must be preserved for signature parity.
type BoxConfig struct {
	Magic     uint32
	Version   uint32
	StackSize uint32
	ACLs      []ACLListEntry
	Functions []uint32 // function-table entries, recorded as addresses
	Reserved  uint32
}

// boxConfigHeaderSize is the fixed-width portion of the blob: magic, version,
// stack_size, acl_count, fn_count, reserved. The variable-length ACL and
// function payloads are appended after it, in that order, before the
// 32-byte padding.
const boxConfigHeaderSize = 4 * 6

// Encode produces the packed, 32-byte-aligned wire representation of c.
func (c BoxConfig) Encode() []byte {
	payloadSize := boxConfigHeaderSize + len(c.ACLs)*aclListEntrySize + len(c.Functions)*4
	total := roundUpTo(payloadSize, boxConfigAlign)

	buf := make([]byte, total)
	binary.LittleEndian.PutUint32(buf[0:], c.Magic)
	binary.LittleEndian.PutUint32(buf[4:], c.Version)
	binary.LittleEndian.PutUint32(buf[8:], c.StackSize)
	binary.LittleEndian.PutUint32(buf[12:], uint32(len(c.ACLs)))
	binary.LittleEndian.PutUint32(buf[16:], uint32(len(c.Functions)))
	binary.LittleEndian.PutUint32(buf[20:], c.Reserved)

	off := boxConfigHeaderSize
	for _, a := range c.ACLs {
		binary.LittleEndian.PutUint32(buf[off:], a.Start)
		binary.LittleEndian.PutUint32(buf[off+4:], a.Length)
		binary.LittleEndian.PutUint32(buf[off+8:], uint32(a.ACL))
		off += aclListEntrySize
	}
	for _, fn := range c.Functions {
		binary.LittleEndian.PutUint32(buf[off:], fn)
		off += 4
	}
	return buf
}

// DecodeBoxConfig parses a blob produced by Encode. It returns an error
// if the buffer is too short or the magic doesn't match.
func DecodeBoxConfig(buf []byte) (BoxConfig, error) {
	if len(buf) < boxConfigHeaderSize {
		return BoxConfig{}, fmt.Errorf("vmpu: box-config blob too short (%d bytes)", len(buf))
	}

	c := BoxConfig{
		Magic:     binary.LittleEndian.Uint32(buf[0:]),
		Version:   binary.LittleEndian.Uint32(buf[4:]),
		StackSize: binary.LittleEndian.Uint32(buf[8:]),
		Reserved:  binary.LittleEndian.Uint32(buf[20:]),
	}
	if c.Magic != BoxConfigMagic {
		return BoxConfig{}, fmt.Errorf("vmpu: bad box-config magic 0x%08x", c.Magic)
	}

	aclCount := binary.LittleEndian.Uint32(buf[12:])
	fnCount := binary.LittleEndian.Uint32(buf[16:])

	off := boxConfigHeaderSize
	need := off + int(aclCount)*aclListEntrySize + int(fnCount)*4
	if len(buf) < need {
		return BoxConfig{}, fmt.Errorf("vmpu: box-config blob truncated: need %d bytes, have %d", need, len(buf))
	}

	c.ACLs = make([]ACLListEntry, aclCount)
	for i := range c.ACLs {
		c.ACLs[i] = ACLListEntry{
			Start:  binary.LittleEndian.Uint32(buf[off:]),
			Length: binary.LittleEndian.Uint32(buf[off+4:]),
			ACL:    ACL(binary.LittleEndian.Uint32(buf[off+8:])),
		}
		off += aclListEntrySize
	}

	c.Functions = make([]uint32, fnCount)
	for i := range c.Functions {
		c.Functions[i] = binary.LittleEndian.Uint32(buf[off:])
		off += 4
	}

	return c, nil
}

func roundUpTo(x, align int) int {
	return (x + align - 1) &^ (align - 1)
}
