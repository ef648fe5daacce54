package inscription

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/btcsuite/btcd/txscript"
	"github.com/inscription-c/pins/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func payload(n int) []byte {
	return bytes.Repeat([]byte("abcdefghijklmnopqrstuvwxyz"), n/26+1)[:n]
}

func TestNewInscriptionRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 239, 240, 241, 480, 1000, 5 * constants.MaxChunkLen} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			data := payload(n)
			ins := NewInscription(data, "text/plain")
			require.GreaterOrEqual(t, len(ins), 3)
			assert.Equal(t, []byte(constants.InscriptionMarker), ins[0].Data())
			assert.Equal(t, []byte("text/plain"), ins[2].Data())

			var got []byte
			for i := 4; i < len(ins); i += 2 {
				require.True(t, ins[i].IsData())
				assert.LessOrEqual(t, len(ins[i].Data()), constants.MaxChunkLen)
				got = append(got, ins[i].Data()...)
			}
			assert.Equal(t, len(data), len(got))
			assert.True(t, bytes.Equal(data, got))
		})
	}
}

func TestNewInscriptionDescendingIndex(t *testing.T) {
	data := payload(20 * constants.MaxChunkLen)
	ins := NewInscription(data, "text/plain")
	k := (len(ins) - 3) / 2
	require.Equal(t, 20, k)
	assert.Equal(t, NumberChunk(k), ins[1])
	for n := 0; n < k; n++ {
		assert.Equal(t, NumberChunk(k-n-1), ins[3+2*n], "part %d", n)
	}
	assert.Equal(t, OpcodeChunk(txscript.OP_0), ins[len(ins)-2])
}

func TestNewInscriptionEmpty(t *testing.T) {
	ins := NewInscription(nil, "text/plain")
	require.Len(t, ins, 3)
	assert.Equal(t, OpcodeChunk(txscript.OP_0), ins[1])
}

func TestNumberChunk(t *testing.T) {
	assert.Equal(t, OpcodeChunk(txscript.OP_0), NumberChunk(0))
	assert.Equal(t, OpcodeChunk(txscript.OP_1), NumberChunk(1))
	assert.Equal(t, OpcodeChunk(txscript.OP_16), NumberChunk(16))
	assert.Equal(t, DataChunk([]byte{17}), NumberChunk(17))
	assert.Equal(t, DataChunk([]byte{0x80, 0x00}), NumberChunk(128))
	assert.Equal(t, DataChunk([]byte{0x2c, 0x01}), NumberChunk(300))
}

func TestChunkImmutable(t *testing.T) {
	src := []byte("abc")
	c := DataChunk(src)
	src[0] = 'x'
	assert.Equal(t, []byte("abc"), c.Data())

	out := c.Data()
	out[0] = 'y'
	assert.Equal(t, []byte("abc"), c.Data())
	assert.Nil(t, OpcodeChunk(txscript.OP_DROP).Data())
}

func TestCompile(t *testing.T) {
	script, err := Compile([]Chunk{DataChunk([]byte("ord")), OpcodeChunk(txscript.OP_1)})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x03, 'o', 'r', 'd', txscript.OP_1}, script)
}
