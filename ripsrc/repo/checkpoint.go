package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/pkg/errors"

	"github.com/yonasBSD/gitoxide/ripsrc/incblame"
	"github.com/yonasBSD/gitoxide/ripsrc/repo/disk"
)

const checkpointDirName = "checkpoint"

// WriteCheckpoint saves all commits and blobs into dir. Previous checkpoint in the same dir is replaced.
func (s *Repo) WriteCheckpoint(dir string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	tmpDir := filepath.Join(dir, "tmp")
	err := os.RemoveAll(tmpDir)
	if err != nil {
		return err
	}

	commitsWr, err := newMsgWriter(tmpDir, "commits")
	if err != nil {
		return err
	}
	hashes := make([]string, 0, len(s.commits))
	for h := range s.commits {
		hashes = append(hashes, h)
	}
	sort.Strings(hashes)
	if err := commitsWr.WriteCount(len(hashes)); err != nil {
		return err
	}
	for _, h := range hashes {
		c := s.commits[h]
		obj := &disk.Commit{Hash: c.hash, Parents: c.parents, Time: c.time.UnixNano()}
		for p, id := range c.files {
			obj.Files = append(obj.Files, disk.File{Path: p, Blob: string(id)})
		}
		sort.Slice(obj.Files, func(i, j int) bool {
			return obj.Files[i].Path < obj.Files[j].Path
		})
		if err := commitsWr.Write(obj); err != nil {
			return errors.Wrapf(err, "could not write commit %v", h)
		}
	}
	if err := commitsWr.Finish(); err != nil {
		return err
	}

	blobsWr, err := newMsgWriter(tmpDir, "blobs")
	if err != nil {
		return err
	}
	ids := make([]string, 0, len(s.blobs))
	for id := range s.blobs {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)
	if err := blobsWr.WriteCount(len(ids)); err != nil {
		return err
	}
	for _, id := range ids {
		obj := &disk.Blob{ID: id, Data: s.blobs[incblame.ObjectID(id)]}
		if err := blobsWr.Write(obj); err != nil {
			return errors.Wrapf(err, "could not write blob %v", id)
		}
	}
	if err := blobsWr.Finish(); err != nil {
		return err
	}

	final := filepath.Join(dir, checkpointDirName)
	err = os.RemoveAll(final)
	if err != nil {
		return err
	}
	return os.Rename(tmpDir, final)
}

// ReadCheckpoint loads repo saved with WriteCheckpoint.
func ReadCheckpoint(dir string, opts Opts) (*Repo, error) {
	dir = filepath.Join(dir, checkpointDirName)
	s := New(opts)

	blobsR, err := newMsgReader(dir, "blobs")
	if err != nil {
		return nil, err
	}
	n, err := blobsR.ReadCount()
	if err != nil {
		blobsR.Finish()
		return nil, errors.Wrap(err, "could not read blob count")
	}
	for i := 0; i < n; i++ {
		obj := &disk.Blob{}
		if err := blobsR.Read(obj); err != nil {
			blobsR.Finish()
			return nil, errors.Wrapf(err, "could not read blob %v", i)
		}
		id := incblame.ObjectID(obj.ID)
		if BlobID(obj.Data) != id {
			blobsR.Finish()
			return nil, fmt.Errorf("checkpoint blob %v does not match its content", id)
		}
		s.blobs[id] = obj.Data
	}
	if err := blobsR.Finish(); err != nil {
		return nil, err
	}

	commitsR, err := newMsgReader(dir, "commits")
	if err != nil {
		return nil, err
	}
	defer commitsR.Finish()
	n, err = commitsR.ReadCount()
	if err != nil {
		return nil, errors.Wrap(err, "could not read commit count")
	}
	for i := 0; i < n; i++ {
		obj := &disk.Commit{}
		if err := commitsR.Read(obj); err != nil {
			return nil, errors.Wrapf(err, "could not read commit %v", i)
		}
		c := &commit{hash: obj.Hash, parents: obj.Parents, time: time.Unix(0, obj.Time)}
		c.files = map[string]incblame.ObjectID{}
		for _, f := range obj.Files {
			id := incblame.ObjectID(f.Blob)
			if _, ok := s.blobs[id]; !ok {
				return nil, fmt.Errorf("checkpoint commit %v references missing blob %v", obj.Hash, id)
			}
			c.files[f.Path] = id
		}
		s.commits[c.hash] = c
		s.graph.Add(c.hash, c.parents...)
	}
	return s, nil
}
