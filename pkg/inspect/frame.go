package inspect

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/vango-dev/dotrender/pkg/render"
)

// Frame is one message of the websocket stream. Frames are CBOR maps with
// integer keys.
type Frame struct {
	Seq     uint64 `cbor:"1,keyasint"`
	Root    string `cbor:"2,keyasint"`
	Name    string `cbor:"3,keyasint,omitempty"`
	Hash    uint64 `cbor:"4,keyasint"`
	HTML    string `cbor:"5,keyasint"`
	Records int    `cbor:"6,keyasint"`
	Handles int    `cbor:"7,keyasint"`
	Removed bool   `cbor:"8,keyasint,omitempty"`
}

// frameMode encodes frames deterministically.
var frameMode = func() cbor.EncMode {
	mode, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
	return mode
}()

// EncodeFrame returns the CBOR encoding of f.
func EncodeFrame(f Frame) ([]byte, error) {
	return frameMode.Marshal(f)
}

// DecodeFrame parses a frame produced by EncodeFrame.
func DecodeFrame(data []byte) (Frame, error) {
	var f Frame
	err := cbor.Unmarshal(data, &f)
	return f, err
}

func statsFrame(f *Frame, s render.Stats) {
	f.Records = s.Records
	f.Handles = s.Handles
}
