//go:generate msgp -marshal=false -tests=false

// Package disk contains checkpoint records of the in-memory repo.
package disk

type Commit struct {
	Hash    string   `msg:"h"`
	Parents []string `msg:"p"`
	Time    int64    `msg:"t"`
	Files   []File   `msg:"f"`
}

type File struct {
	Path string `msg:"p"`
	Blob string `msg:"b"`
}

type Blob struct {
	ID   string `msg:"id"`
	Data []byte `msg:"d"`
}
