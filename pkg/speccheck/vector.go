package speccheck

import (
	"bufio"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// VectorCount is the fixed size of the vector set.
const VectorCount = 12

// TestVector is one generated (message, signature, public key) bundle
// together with its construction metadata. Vectors are created once by
// BuildVectors and never mutated afterwards.
type TestVector struct {
	Index     int
	Message   []byte
	PublicKey *Point
	R         *Point
	S         *Scalar

	// Expected outcomes under the two verification policies, taken from the
	// condition table. For the non-canonical vectors the flags are stated
	// under the hash convention the vector was ground for.
	ExpectedCofactored   bool
	ExpectedCofactorless bool

	// Comment is the rationale line from the condition table.
	Comment string
}

// SignatureBytes returns the 64-byte R||S wire encoding, using each
// component's own canonicity flag.
func (tv *TestVector) SignatureBytes() []byte {
	out := make([]byte, 0, 64)
	out = append(out, tv.R.Bytes()...)
	out = append(out, tv.S.Bytes()...)
	return out
}

// PublicKeyBytes returns the 32-byte public key wire encoding.
func (tv *TestVector) PublicKeyBytes() []byte {
	return tv.PublicKey.Bytes()
}

// Wire strips a vector down to the byte level consumed by the harness.
func (tv *TestVector) Wire() WireVector {
	return WireVector{
		Index:                tv.Index,
		Message:              append([]byte(nil), tv.Message...),
		PublicKey:            tv.PublicKeyBytes(),
		Signature:            tv.SignatureBytes(),
		ExpectedCofactored:   tv.ExpectedCofactored,
		ExpectedCofactorless: tv.ExpectedCofactorless,
	}
}

// Wires converts a full vector set to wire form.
func Wires(vectors []TestVector) []WireVector {
	out := make([]WireVector, len(vectors))
	for i := range vectors {
		out[i] = vectors[i].Wire()
	}
	return out
}

// WireVector is the byte-level view of a test vector: what a verifier
// backend actually receives, plus the expectation flags.
type WireVector struct {
	Index                int
	Message              []byte
	PublicKey            []byte
	Signature            []byte
	ExpectedCofactored   bool
	ExpectedCofactorless bool
}

type vectorJSON struct {
	Index                int    `json:"index"`
	Message              string `json:"message"`
	PubKey               string `json:"pub_key"`
	Signature            string `json:"signature"`
	ExpectedCofactored   bool   `json:"expected_cofactored"`
	ExpectedCofactorless bool   `json:"expected_cofactorless"`
}

// WriteVectorsJSON writes the structured vector file format.
func WriteVectorsJSON(w io.Writer, vectors []TestVector) error {
	out := make([]vectorJSON, len(vectors))
	for i, tv := range vectors {
		out[i] = vectorJSON{
			Index:                tv.Index,
			Message:              hex.EncodeToString(tv.Message),
			PubKey:               hex.EncodeToString(tv.PublicKeyBytes()),
			Signature:            hex.EncodeToString(tv.SignatureBytes()),
			ExpectedCofactored:   tv.ExpectedCofactored,
			ExpectedCofactorless: tv.ExpectedCofactorless,
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	return nil
}

// WriteVectorsText writes the plain-text line-oriented rendering: the vector
// count on the first line, then msg=/pbk=/sig= lines per vector.
func WriteVectorsText(w io.Writer, vectors []TestVector) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d", len(vectors))
	for _, tv := range vectors {
		fmt.Fprintf(bw, "\nmsg=%s", hex.EncodeToString(tv.Message))
		fmt.Fprintf(bw, "\npbk=%s", hex.EncodeToString(tv.PublicKeyBytes()))
		fmt.Fprintf(bw, "\nsig=%s", hex.EncodeToString(tv.SignatureBytes()))
	}
	fmt.Fprintln(bw)
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	return nil
}

// LoadVectorsJSON reads a vector file back into wire form for harness runs
// against a previously generated set.
func LoadVectorsJSON(r io.Reader) ([]WireVector, error) {
	var raw []vectorJSON
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("parsing vector file: %w", err)
	}
	out := make([]WireVector, len(raw))
	for i, v := range raw {
		wv := WireVector{
			Index:                v.Index,
			ExpectedCofactored:   v.ExpectedCofactored,
			ExpectedCofactorless: v.ExpectedCofactorless,
		}
		var err error
		if wv.Message, err = decodeHexField(v.Message, "message", i); err != nil {
			return nil, err
		}
		if wv.PublicKey, err = decodeHexField(v.PubKey, "pub_key", i); err != nil {
			return nil, err
		}
		if wv.Signature, err = decodeHexField(v.Signature, "signature", i); err != nil {
			return nil, err
		}
		if len(wv.PublicKey) != 32 {
			return nil, fmt.Errorf("vector %d: public key must be 32 bytes, got %d", i, len(wv.PublicKey))
		}
		if len(wv.Signature) != 64 {
			return nil, fmt.Errorf("vector %d: signature must be 64 bytes, got %d", i, len(wv.Signature))
		}
		out[i] = wv
	}
	return out, nil
}

func decodeHexField(s, name string, index int) ([]byte, error) {
	b, err := hex.DecodeString(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, fmt.Errorf("vector %d: invalid hex in %s: %w", index, name, err)
	}
	return b, nil
}

// DescribeVector renders the order-class, canonicity and scalar-range
// metadata of a vector, used by the debug verbosity mode.
func (tv *TestVector) DescribeVector() string {
	var sb strings.Builder
	sb.WriteString("vector " + strconv.Itoa(tv.Index))
	sb.WriteString(": S=" + tv.S.Class.String())
	sb.WriteString(" A=" + tv.PublicKey.Class.String())
	if !tv.PublicKey.Canonical {
		sb.WriteString("(non-canonical)")
	}
	sb.WriteString(" R=" + tv.R.Class.String())
	if !tv.R.Canonical {
		sb.WriteString("(non-canonical)")
	}
	fmt.Fprintf(&sb, " cofactored=%t cofactorless=%t", tv.ExpectedCofactored, tv.ExpectedCofactorless)
	if tv.Comment != "" {
		sb.WriteString(" # " + tv.Comment)
	}
	return sb.String()
}
