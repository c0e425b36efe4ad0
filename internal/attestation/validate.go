package attestation

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
	"unicode/utf8"

	"github.com/majorcontext/attestlint/internal/jsonvalue"
)

// RootKey is the top-level member that holds the attestation object.
const RootKey = "attestation"

const maxByte = 255

// Validate checks doc against the attestation schema and returns one
// human-readable message per violation, in a stable order. An empty
// result means the document is structurally valid.
//
// Validate never fails: malformed input is reported as messages.
func Validate(doc jsonvalue.Value) []string {
	att, ok := doc.Lookup(RootKey)
	if !ok {
		return []string{fmt.Sprintf("Missing top-level '%s' field", RootKey)}
	}
	if att.Kind() != jsonvalue.Object {
		return []string{fmt.Sprintf("Field '%s' has wrong type: expected object, got %s", RootKey, att.Kind())}
	}

	v := &validator{att: att}
	v.checkRequired()
	v.checkByteArrayMembers()
	v.checkMessageHash()
	v.checkAccountIDHash()
	v.checkRanges()
	return v.errs
}

type validator struct {
	att  jsonvalue.Value
	errs []string
}

func (v *validator) addf(format string, args ...any) {
	v.errs = append(v.errs, fmt.Sprintf(format, args...))
}

// checkRequired reports every missing or mistyped field. Fields are
// checked independently so one bad field never hides another.
func (v *validator) checkRequired() {
	for _, f := range schema {
		val, ok := v.att.Lookup(f.Name)
		if !ok {
			v.addf("Missing required field: %s (%s)", f.Name, f.Description)
			continue
		}
		if !val.Is(f.Kinds...) {
			v.addf("Field '%s' has wrong type: expected %s, got %s", f.Name, f.expected(), val.Kind())
		}
	}
}

// checkByteArrayMembers validates x/y of custodian_pubkey and r/s of
// signature when the parent is an object.
func (v *validator) checkByteArrayMembers() {
	for _, group := range byteArrayMembers {
		parent, ok := v.att.Lookup(group.parent)
		if !ok || parent.Kind() != jsonvalue.Object {
			continue
		}
		for _, name := range group.members {
			member, ok := parent.Lookup(name)
			if !ok {
				v.addf("%s missing '%s' field", group.parent, name)
				continue
			}
			path := group.parent + "." + name
			if !v.checkLength(path, member) {
				continue
			}
			v.checkBytes(path, member)
		}
	}
}

// checkLength reports whether val is an array of DigestSize elements,
// recording an error if it is not.
func (v *validator) checkLength(path string, val jsonvalue.Value) bool {
	if val.Kind() != jsonvalue.Array {
		v.addf("%s must be array of %d bytes, got %s", path, DigestSize, val.Kind())
		return false
	}
	if val.Len() != DigestSize {
		v.addf("%s must be array of %d bytes, got %d bytes", path, DigestSize, val.Len())
		return false
	}
	return true
}

// checkBytes reports the first element of arr that is not a byte.
func (v *validator) checkBytes(path string, arr jsonvalue.Value) {
	for i, e := range arr.Elems() {
		if !fitsUnsigned(e, big.NewInt(maxByte)) {
			v.addf("%s[%d] must be byte (0-%d), got %s", path, i, maxByte, e)
			return
		}
	}
}

func (v *validator) checkMessageHash() {
	mh, ok := v.att.Lookup("message_hash")
	if !ok {
		return
	}
	if mh.Kind() != jsonvalue.Array {
		v.addf("message_hash must be array of %d bytes, got non-array", DigestSize)
		return
	}
	if mh.Len() != DigestSize {
		v.addf("message_hash must be array of %d bytes, got %d", DigestSize, mh.Len())
		return
	}
	v.checkBytes("message_hash", mh)
}

// checkAccountIDHash validates the encoding of account_id_hash. The
// length and hex checks on the string form are independent, so a short
// non-hex value yields two messages.
func (v *validator) checkAccountIDHash() {
	aih, ok := v.att.Lookup("account_id_hash")
	if !ok {
		return
	}

	switch aih.Kind() {
	case jsonvalue.String:
		raw, _ := aih.Str()
		digits := trimHexPrefix(raw)
		if n := utf8.RuneCountInString(digits); n != 2*DigestSize {
			v.addf("account_id_hash hex string must be %d chars (%d bytes), got %d", 2*DigestSize, DigestSize, n)
		}
		if _, err := hex.DecodeString(digits); err != nil {
			v.addf("account_id_hash is not valid hex: %s", raw)
		}
	case jsonvalue.Array:
		if aih.Len() != DigestSize {
			v.addf("account_id_hash array must be %d bytes, got %d", DigestSize, aih.Len())
		}
	default:
		v.addf("account_id_hash must be hex string or byte array, got %s", aih.Kind())
	}
}

// checkRanges enforces the unsigned width of every integer field that
// passed the type check.
func (v *validator) checkRanges() {
	for _, f := range schema {
		if f.Bits == 0 {
			continue
		}
		val, ok := v.att.Lookup(f.Name)
		if !ok {
			continue
		}
		n, ok := val.Int()
		if !ok {
			continue
		}
		if f.Name == "balance_raw" && n.Sign() < 0 {
			v.addf("%s must be non-negative", f.Name)
			continue
		}
		if n.Sign() < 0 || n.Cmp(maxUnsigned(f.Bits)) > 0 {
			v.addf("%s must fit in u%d", f.Name, f.Bits)
		}
	}
}

// trimHexPrefix strips a single leading "0x" or "0X".
func trimHexPrefix(s string) string {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return s[2:]
	}
	return s
}

// fitsUnsigned reports whether val is an integer in [0, max].
func fitsUnsigned(val jsonvalue.Value, max *big.Int) bool {
	n, ok := val.Int()
	if !ok {
		return false
	}
	return n.Sign() >= 0 && n.Cmp(max) <= 0
}

// maxUnsigned returns 2^bits - 1.
func maxUnsigned(bits uint) *big.Int {
	n := new(big.Int).Lsh(big.NewInt(1), bits)
	return n.Sub(n, big.NewInt(1))
}
