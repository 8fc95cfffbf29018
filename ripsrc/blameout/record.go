//go:generate msgp -marshal=false -tests=false

package blameout

import "github.com/yonasBSD/gitoxide/ripsrc/incblame"

//msgp:tuple StatsRecord EntryRecord

// Record is the msgpack form of incblame.Outcome.
type Record struct {
	Revision    string        `msg:"r"`
	Path        string        `msg:"p"`
	Lines       int           `msg:"l"`
	Interrupted bool          `msg:"i"`
	Stats       StatsRecord   `msg:"s"`
	Entries     []EntryRecord `msg:"e"`
}

type StatsRecord struct {
	CommitsVisited int
	DiffsComputed  int
	BlobsFetched   int
	FastPathHops   int
	Replays        int
}

type EntryRecord struct {
	FinalStart  int
	FinalEnd    int
	SourceStart int
	SourceEnd   int
	Revision    string
	Path        string
	Boundary    bool
}

func NewRecord(res incblame.Outcome) Record {
	rec := Record{
		Revision:    string(res.Revision),
		Path:        res.Path,
		Lines:       res.Lines,
		Interrupted: res.Interrupted,
		Stats:       StatsRecord(res.Stats),
	}
	for _, e := range res.Entries {
		rec.Entries = append(rec.Entries, EntryRecord{
			FinalStart:  e.Final.Start,
			FinalEnd:    e.Final.End,
			SourceStart: e.Source.Start,
			SourceEnd:   e.Source.End,
			Revision:    string(e.Revision),
			Path:        e.Path,
			Boundary:    e.Boundary,
		})
	}
	return rec
}

func (s Record) Outcome() incblame.Outcome {
	res := incblame.Outcome{
		Revision:    incblame.ObjectID(s.Revision),
		Path:        s.Path,
		Lines:       s.Lines,
		Interrupted: s.Interrupted,
		Stats:       incblame.Statistics(s.Stats),
	}
	for _, e := range s.Entries {
		res.Entries = append(res.Entries, incblame.BlameEntry{
			Final:    incblame.Range(e.FinalStart, e.FinalEnd),
			Source:   incblame.Range(e.SourceStart, e.SourceEnd),
			Revision: incblame.ObjectID(e.Revision),
			Path:     e.Path,
			Boundary: e.Boundary,
		})
	}
	return res
}
