// Package attestation checks the structure of custodian balance
// attestation documents before they reach signature verification.
//
// The checks are purely structural. Byte arrays, hashes and keys are
// treated as opaque blobs whose presence, type and size are verified;
// nothing is hashed and no signature is verified.
package attestation

import (
	"strings"

	"github.com/majorcontext/attestlint/internal/jsonvalue"
)

// DigestSize is the length in bytes of every hash, key coordinate and
// signature scalar in an attestation.
const DigestSize = 32

// Field describes one required member of the attestation object.
type Field struct {
	// Name is the JSON member name.
	Name string `json:"name"`
	// Kinds lists the JSON kinds accepted for the member.
	Kinds []jsonvalue.Kind `json:"kinds"`
	// Description is the human-readable expectation shown in errors.
	Description string `json:"description"`
	// Bits is the unsigned integer width for integer fields, 0 otherwise.
	Bits uint `json:"bits,omitempty"`
}

// KindNames returns the accepted kinds as strings.
func (f Field) KindNames() []string {
	names := make([]string, len(f.Kinds))
	for i, k := range f.Kinds {
		names[i] = k.String()
	}
	return names
}

// expected renders the accepted kinds for error messages.
func (f Field) expected() string {
	return strings.Join(f.KindNames(), " or ")
}

// schema is the declaration order of the attestation fields. Errors are
// reported in this order.
var schema = []Field{
	{Name: "balance_raw", Kinds: kinds(jsonvalue.Integer), Description: "u64", Bits: 64},
	{Name: "currency_code_int", Kinds: kinds(jsonvalue.Integer), Description: "u32", Bits: 32},
	{Name: "custodian_id", Kinds: kinds(jsonvalue.Integer), Description: "u32", Bits: 32},
	{Name: "attestation_id", Kinds: kinds(jsonvalue.Integer), Description: "u64", Bits: 64},
	{Name: "issued_at", Kinds: kinds(jsonvalue.Integer), Description: "u64", Bits: 64},
	{Name: "valid_until", Kinds: kinds(jsonvalue.Integer), Description: "u64", Bits: 64},
	{Name: "account_id_hash", Kinds: kinds(jsonvalue.String, jsonvalue.Array), Description: "32-byte hex or array"},
	{Name: "custodian_pubkey", Kinds: kinds(jsonvalue.Object), Description: "object with x, y"},
	{Name: "signature", Kinds: kinds(jsonvalue.Object), Description: "object with r, s"},
	{Name: "message_hash", Kinds: kinds(jsonvalue.Array), Description: "32-byte array"},
}

// byteArrayMembers lists the nested byte arrays checked under each
// object-valued field.
var byteArrayMembers = []struct {
	parent  string
	members []string
}{
	{parent: "custodian_pubkey", members: []string{"x", "y"}},
	{parent: "signature", members: []string{"r", "s"}},
}

// Fields returns a copy of the attestation schema in declaration order.
func Fields() []Field {
	out := make([]Field, len(schema))
	for i, f := range schema {
		f.Kinds = append([]jsonvalue.Kind(nil), f.Kinds...)
		out[i] = f
	}
	return out
}

func kinds(k ...jsonvalue.Kind) []jsonvalue.Kind { return k }
