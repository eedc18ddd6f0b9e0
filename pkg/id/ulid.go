// Package id generates and checks sortable identifiers.
package id

import (
	"crypto/rand"
	"encoding/binary"
	"strings"
	"time"
)

// Crockford's Base32 alphabet (excludes I, L, O, U to avoid confusion).
const crockfordBase32 = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// ULIDLength is the length of an encoded ULID.
const ULIDLength = 26

// NewULID returns a 26-character ULID: a 48-bit millisecond timestamp followed
// by 80 random bits. ULIDs sort lexicographically by creation time.
func NewULID() string {
	return newULIDAt(time.Now())
}

func newULIDAt(t time.Time) string {
	var raw [16]byte

	ms := uint64(t.UnixMilli())
	binary.BigEndian.PutUint16(raw[0:2], uint16(ms>>32))
	binary.BigEndian.PutUint32(raw[2:6], uint32(ms))

	if _, err := rand.Read(raw[6:]); err != nil {
		// degraded but still unique per nanosecond
		binary.BigEndian.PutUint64(raw[8:], uint64(t.UnixNano()))
	}

	return encode(raw)
}

// encode writes the 128-bit value as 26 base32 digits, padding two zero bits
// in front so the first digit carries only three bits.
func encode(raw [16]byte) string {
	var out [ULIDLength]byte
	for i := range out {
		var v byte
		for j := range 5 {
			pos := i*5 + j - 2
			v <<= 1
			if pos >= 0 && raw[pos/8]&(0x80>>(pos%8)) != 0 {
				v |= 1
			}
		}
		out[i] = crockfordBase32[v]
	}
	return string(out[:])
}

// IsULID reports whether s is a canonical upper-case ULID.
func IsULID(s string) bool {
	if len(s) != ULIDLength || s[0] > '7' {
		return false
	}
	for i := range len(s) {
		if strings.IndexByte(crockfordBase32, s[i]) < 0 {
			return false
		}
	}
	return true
}
