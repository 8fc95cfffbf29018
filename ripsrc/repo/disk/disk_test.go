package disk

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinylib/msgp/msgp"
)

func TestCommitEncodeDecode(t *testing.T) {
	want := Commit{
		Hash:    "c2",
		Parents: []string{"c1", "b1"},
		Time:    1577836800000000000,
		Files:   []File{{Path: "a.txt", Blob: "00ff"}, {Path: "dir/b.txt", Blob: "0a0b"}},
	}
	buf := bytes.NewBuffer(nil)
	wr := msgp.NewWriter(buf)
	require.NoError(t, want.EncodeMsg(wr))
	require.NoError(t, wr.Flush())

	var got Commit
	require.NoError(t, got.DecodeMsg(msgp.NewReader(buf)))
	assert.Equal(t, want, got)
}

func TestBlobEncodeDecode(t *testing.T) {
	want := Blob{ID: "00ff", Data: []byte("a\nb\n")}
	buf := bytes.NewBuffer(nil)
	wr := msgp.NewWriter(buf)
	require.NoError(t, want.EncodeMsg(wr))
	require.NoError(t, wr.Flush())

	var got Blob
	require.NoError(t, got.DecodeMsg(msgp.NewReader(buf)))
	assert.Equal(t, want, got)
}

func TestDecodeSkipsUnknownFields(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	wr := msgp.NewWriter(buf)
	require.NoError(t, wr.WriteMapHeader(2))
	require.NoError(t, wr.WriteString("x"))
	require.NoError(t, wr.WriteInt(5))
	require.NoError(t, wr.WriteString("p"))
	require.NoError(t, wr.WriteString("a.txt"))
	require.NoError(t, wr.Flush())

	var got File
	require.NoError(t, got.DecodeMsg(msgp.NewReader(buf)))
	assert.Equal(t, File{Path: "a.txt"}, got)
}
