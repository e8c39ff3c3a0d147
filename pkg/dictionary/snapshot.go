package dictionary

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// snapshot is the msgpack layout written by Save.
type snapshot struct {
	Words   []snapshotWord   `msgpack:"words"`
	Bigrams []snapshotBigram `msgpack:"bigrams"`
}

type snapshotWord struct {
	CodePoints  []rune `msgpack:"cp"`
	Probability int    `msgpack:"p"`
}

type snapshotBigram struct {
	Prev        int `msgpack:"prev"`
	Next        int `msgpack:"next"`
	Probability int `msgpack:"p"`
}

// Save writes every word and bigram to w.
func (d *Dictionary) Save(w io.Writer) error {
	d.mu.RLock()
	snap := snapshot{Words: make([]snapshotWord, len(d.entries))}
	for i, e := range d.entries {
		snap.Words[i] = snapshotWord{CodePoints: e.codePoints, Probability: e.probability}
		if e.bigramList < 0 {
			continue
		}
		for _, b := range d.lists[e.bigramList] {
			snap.Bigrams = append(snap.Bigrams, snapshotBigram{
				Prev:        i,
				Next:        int(b.TargetPos),
				Probability: b.Probability,
			})
		}
	}
	d.mu.RUnlock()

	if err := msgpack.NewEncoder(w).Encode(&snap); err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return nil
}

// Load adds the words and bigrams of a snapshot written by Save.
func (d *Dictionary) Load(r io.Reader) error {
	var snap snapshot
	if err := msgpack.NewDecoder(r).Decode(&snap); err != nil {
		return fmt.Errorf("failed to decode snapshot: %w", err)
	}

	for i, w := range snap.Words {
		if _, err := d.AddWord(w.CodePoints, w.Probability); err != nil {
			return fmt.Errorf("snapshot word %d: %w", i, err)
		}
	}
	for i, b := range snap.Bigrams {
		if b.Prev < 0 || b.Prev >= len(snap.Words) || b.Next < 0 || b.Next >= len(snap.Words) {
			return fmt.Errorf("snapshot bigram %d: %w", i, ErrUnknownPosition)
		}
		if err := d.AddBigram(snap.Words[b.Prev].CodePoints, snap.Words[b.Next].CodePoints, b.Probability); err != nil {
			return fmt.Errorf("snapshot bigram %d: %w", i, err)
		}
	}
	log.Debugf("Loaded snapshot: %d words, %d bigrams", len(snap.Words), len(snap.Bigrams))
	return nil
}

// LoadFile loads a snapshot from disk.
func (d *Dictionary) LoadFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open snapshot %s: %w", path, err)
	}
	defer file.Close()
	return d.Load(file)
}

// SaveFile writes a snapshot to disk.
func (d *Dictionary) SaveFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create snapshot %s: %w", path, err)
	}
	if err := d.Save(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
