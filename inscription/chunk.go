package inscription

import (
	"github.com/btcsuite/btcd/txscript"
	"github.com/inscription-c/pins/constants"
)

// Chunk is a single script element of an inscription: either a data push or
// a bare opcode. Chunks are immutable once created.
type Chunk struct {
	data   []byte
	opcode byte
	isData bool
}

// DataChunk returns a chunk pushing a copy of data.
func DataChunk(data []byte) Chunk {
	d := make([]byte, len(data))
	copy(d, data)
	return Chunk{data: d, isData: true}
}

// OpcodeChunk returns a chunk holding a single opcode.
func OpcodeChunk(opcode byte) Chunk {
	return Chunk{opcode: opcode}
}

// NumberChunk returns the minimal script encoding of n: OP_0 and OP_1..OP_16
// for small values, a script number push otherwise.
func NumberChunk(n int) Chunk {
	script, err := txscript.NewScriptBuilder().AddInt64(int64(n)).Script()
	if err != nil {
		return OpcodeChunk(txscript.OP_0)
	}
	tokenizer := txscript.MakeScriptTokenizer(0, script)
	if !tokenizer.Next() {
		return OpcodeChunk(txscript.OP_0)
	}
	if tokenizer.Data() != nil {
		return DataChunk(tokenizer.Data())
	}
	return OpcodeChunk(tokenizer.Opcode())
}

func (c Chunk) IsData() bool {
	return c.isData
}

// Data returns a copy of the pushed bytes, nil for opcode chunks.
func (c Chunk) Data() []byte {
	if !c.isData {
		return nil
	}
	d := make([]byte, len(c.data))
	copy(d, c.data)
	return d
}

func (c Chunk) Opcode() byte {
	return c.opcode
}

func (c Chunk) addTo(builder *txscript.ScriptBuilder) *txscript.ScriptBuilder {
	if c.isData {
		return builder.AddData(c.data)
	}
	return builder.AddOp(c.opcode)
}

// Compile serializes chunks into a script using canonical pushes.
func Compile(chunks []Chunk) ([]byte, error) {
	builder := txscript.NewScriptBuilder()
	for _, c := range chunks {
		c.addTo(builder)
	}
	return builder.Script()
}

// Inscription is the ordered chunk sequence describing a payload:
//
//	"ord" <part count> <content type> (<countdown index> <part>)...
//
// The countdown index of part n is partCount-n-1, so the last part carries 0.
type Inscription []Chunk

// NewInscription splits data into parts of at most MaxChunkLen bytes and
// lays them out behind the marker, part count and content type.
func NewInscription(data []byte, contentType string) Inscription {
	parts := splitParts(data, constants.MaxChunkLen)
	ins := make(Inscription, 0, 3+2*len(parts))
	ins = append(ins,
		DataChunk([]byte(constants.InscriptionMarker)),
		NumberChunk(len(parts)),
		DataChunk([]byte(contentType)),
	)
	for n, part := range parts {
		ins = append(ins, NumberChunk(len(parts)-n-1), DataChunk(part))
	}
	return ins
}

func splitParts(data []byte, size int) [][]byte {
	parts := make([][]byte, 0, (len(data)+size-1)/size)
	for len(data) > 0 {
		n := size
		if len(data) < n {
			n = len(data)
		}
		parts = append(parts, data[:n])
		data = data[n:]
	}
	return parts
}
