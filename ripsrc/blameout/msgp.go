package blameout

import (
	"io"

	"github.com/tinylib/msgp/msgp"

	"github.com/yonasBSD/gitoxide/ripsrc/incblame"
)

// Encode writes outcome as msgpack.
func Encode(wr io.Writer, res incblame.Outcome) error {
	w := msgp.NewWriter(wr)
	rec := NewRecord(res)
	if err := rec.EncodeMsg(w); err != nil {
		return err
	}
	return w.Flush()
}

// Decode reads outcome written by Encode.
func Decode(r io.Reader) (incblame.Outcome, error) {
	var rec Record
	if err := rec.DecodeMsg(msgp.NewReader(r)); err != nil {
		return incblame.Outcome{}, err
	}
	return rec.Outcome(), nil
}
