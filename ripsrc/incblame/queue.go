package incblame

import (
	"container/heap"
)

// SuspectQueue is the frontier of suspects to process.
// Suspects with larger OrderKey (descendants) are popped first, ties in insertion order.
// Each suspect key is accepted only once per run.
type SuspectQueue struct {
	items  queueItems
	seq    uint64
	pushed map[SuspectKey]bool
	popped map[SuspectKey]bool
}

type queueItem struct {
	suspect Suspect
	seq     uint64
}

type queueItems struct {
	data []queueItem
	fifo bool
}

func (q queueItems) Len() int { return len(q.data) }

func (q queueItems) Less(i, j int) bool {
	a := q.data[i]
	b := q.data[j]
	if !q.fifo {
		ak := a.suspect.Revision.OrderKey
		bk := b.suspect.Revision.OrderKey
		if ak != bk {
			return ak > bk
		}
	}
	return a.seq < b.seq
}

func (q queueItems) Swap(i, j int) { q.data[i], q.data[j] = q.data[j], q.data[i] }

func (q *queueItems) Push(x interface{}) {
	q.data = append(q.data, x.(queueItem))
}

func (q *queueItems) Pop() interface{} {
	n := len(q.data)
	it := q.data[n-1]
	q.data = q.data[:n-1]
	return it
}

func NewSuspectQueue() *SuspectQueue {
	s := &SuspectQueue{}
	s.pushed = map[SuspectKey]bool{}
	s.popped = map[SuspectKey]bool{}
	return s
}

// Push adds suspect to the queue. Returns false and does nothing if the same key was pushed before.
func (s *SuspectQueue) Push(suspect Suspect) bool {
	k := suspect.Key()
	if s.pushed[k] {
		return false
	}
	s.pushed[k] = true
	s.seq++
	heap.Push(&s.items, queueItem{suspect: suspect, seq: s.seq})
	return true
}

// Pop returns the next suspect to process.
func (s *SuspectQueue) Pop() (Suspect, bool) {
	if s.items.Len() == 0 {
		return Suspect{}, false
	}
	it := heap.Pop(&s.items).(queueItem)
	s.popped[it.suspect.Key()] = true
	return it.suspect, true
}

func (s *SuspectQueue) Len() int {
	return s.items.Len()
}

// Seen returns true if the key was pushed in this run, whether or not it is still queued.
func (s *SuspectQueue) Seen(k SuspectKey) bool {
	return s.pushed[k]
}

func (s *SuspectQueue) Popped(k SuspectKey) bool {
	return s.popped[k]
}

// UseInsertionOrder drops OrderKey ordering for the rest of the run. Used when order keys are not monotonic along parent edges.
func (s *SuspectQueue) UseInsertionOrder() {
	if s.items.fifo {
		return
	}
	s.items.fifo = true
	heap.Init(&s.items)
}

func (s *SuspectQueue) InsertionOrder() bool {
	return s.items.fifo
}
