package speccheck

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The two serializations are part of the stable interface: regenerating the
// set must reproduce these files bit for bit. Regenerate with go test -update
// only when the construction itself is deliberately changed.
func TestWriteVectorsGolden(t *testing.T) {
	vectors, err := BuildVectors()
	require.NoError(t, err)

	g := goldie.New(t)

	var text bytes.Buffer
	require.NoError(t, WriteVectorsText(&text, vectors))
	g.Assert(t, "cases_text", text.Bytes())

	var js bytes.Buffer
	require.NoError(t, WriteVectorsJSON(&js, vectors))
	g.Assert(t, "cases_json", js.Bytes())
}

func TestLoadVectorsJSONRoundTrip(t *testing.T) {
	vectors, err := BuildVectors()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteVectorsJSON(&buf, vectors))

	loaded, err := LoadVectorsJSON(&buf)
	require.NoError(t, err)
	require.Len(t, loaded, VectorCount)

	for i, want := range Wires(vectors) {
		assert.Equal(t, want.Index, loaded[i].Index, "vector %d", i)
		assert.Equal(t, want.Message, loaded[i].Message, "vector %d", i)
		assert.Equal(t, want.PublicKey, loaded[i].PublicKey, "vector %d", i)
		assert.Equal(t, want.Signature, loaded[i].Signature, "vector %d", i)
		assert.Equal(t, want.ExpectedCofactored, loaded[i].ExpectedCofactored, "vector %d", i)
		assert.Equal(t, want.ExpectedCofactorless, loaded[i].ExpectedCofactorless, "vector %d", i)
	}
}

func TestLoadVectorsJSONValidation(t *testing.T) {
	cases := []struct {
		name string
		in   string
	}{
		{"not json", "nope"},
		{"bad hex", `[{"index":0,"message":"zz","pub_key":"00","signature":"00"}]`},
		{"short pub key", `[{"index":0,"message":"00","pub_key":"0011","signature":"` + strings.Repeat("00", 64) + `"}]`},
		{"short signature", `[{"index":0,"message":"00","pub_key":"` + strings.Repeat("00", 32) + `","signature":"0011"}]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadVectorsJSON(strings.NewReader(tc.in))
			assert.Error(t, err)
		})
	}
}

func TestDescribeVector(t *testing.T) {
	vectors, err := BuildVectors()
	require.NoError(t, err)

	desc := vectors[5].DescribeVector()
	assert.Contains(t, desc, "vector 5")
	assert.Contains(t, desc, "S=pre-reduced")
	assert.Contains(t, desc, "cofactorless=false")

	desc = vectors[10].DescribeVector()
	assert.Contains(t, desc, "A=small(non-canonical)")
}
