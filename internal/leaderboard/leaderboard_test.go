package leaderboard

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"

	"github.com/vovakirdan/bubble-pop/internal/storage"
)

type failingKV struct{ sets int }

func (f *failingKV) Get(string) ([]byte, bool, error) { return nil, false, storage.ErrUnavailable }
func (f *failingKV) Set(string, []byte) error {
	f.sets++
	return storage.ErrUnavailable
}

func TestRecordSortsDescending(t *testing.T) {
	b := New(nil, 0, nil)

	for _, s := range []int{5, 20, 1, 13} {
		b.Record(Entry{Name: "p", Score: s})
	}

	want := []int{20, 13, 5, 1}
	got := b.Entries()
	for i, w := range want {
		if got[i].Score != w {
			t.Errorf("entry %d score = %d, want %d", i, got[i].Score, w)
		}
	}
}

func TestRecordTiesKeepRecordingOrder(t *testing.T) {
	b := New(nil, 0, nil)

	b.Record(Entry{Name: "first", Score: 10})
	b.Record(Entry{Name: "high", Score: 50})
	b.Record(Entry{Name: "second", Score: 10})
	b.Record(Entry{Name: "third", Score: 10})

	got := b.Entries()
	names := []string{got[0].Name, got[1].Name, got[2].Name, got[3].Name}
	want := []string{"high", "first", "second", "third"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("order = %v, want %v", names, want)
		}
	}
}

func TestRecordCapsAtCapacity(t *testing.T) {
	b := New(nil, 0, nil)

	for i := 1; i <= 25; i++ {
		b.Record(Entry{Name: "p", Score: i})
	}

	got := b.Entries()
	if len(got) != DefaultCapacity {
		t.Fatalf("len = %d, want %d", len(got), DefaultCapacity)
	}
	if got[0].Score != 25 || got[9].Score != 16 {
		t.Errorf("board should hold the top 10, got %d..%d", got[0].Score, got[9].Score)
	}
}

func TestRecordRandomSequencesKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 50; run++ {
		b := New(nil, 0, nil)
		// seq tracks recording order so ties can be checked.
		seq := make(map[Entry]int)

		for i := 0; i < 40; i++ {
			e := Entry{Name: fmt.Sprintf("p%d", i), Score: rng.Intn(8)}
			seq[e] = i
			b.Record(e)

			got := b.Entries()
			if len(got) > DefaultCapacity {
				t.Fatalf("run %d: len %d exceeds capacity", run, len(got))
			}
			for j := 1; j < len(got); j++ {
				if got[j-1].Score < got[j].Score {
					t.Fatalf("run %d: not sorted at %d: %v", run, j, got)
				}
				if got[j-1].Score == got[j].Score && seq[got[j-1]] > seq[got[j]] {
					t.Fatalf("run %d: tie order broken at %d: %v", run, j, got)
				}
			}
		}
	}
}

func TestRecordReturnsRank(t *testing.T) {
	b := New(nil, 3, nil)

	if pos := b.Record(Entry{Name: "a", Score: 10}); pos != 0 {
		t.Errorf("first entry rank = %d, want 0", pos)
	}
	if pos := b.Record(Entry{Name: "b", Score: 20}); pos != 0 {
		t.Errorf("new best rank = %d, want 0", pos)
	}
	if pos := b.Record(Entry{Name: "c", Score: 10}); pos != 2 {
		t.Errorf("tied entry rank = %d, want 2", pos)
	}
	// Board is full; an equal score does not displace older entries.
	if pos := b.Record(Entry{Name: "c", Score: 10}); pos != -1 {
		t.Errorf("duplicate that misses the board rank = %d, want -1", pos)
	}
	if b.Qualifies(10) {
		t.Error("a score equal to the last entry should not qualify on a full board")
	}
	if !b.Qualifies(11) {
		t.Error("a better score should qualify")
	}
}

func TestRecordPersistsAndLoadRestores(t *testing.T) {
	kv := storage.NewMemory()
	b := New(kv, 0, nil)
	b.Record(Entry{Name: "ann", Score: 7})
	b.Record(Entry{Name: "bob", Score: 9})

	restored := New(kv, 0, nil).Load()
	if len(restored) != 2 || restored[0] != (Entry{Name: "bob", Score: 9}) || restored[1] != (Entry{Name: "ann", Score: 7}) {
		t.Errorf("Load() = %+v", restored)
	}
}

func TestLoadOnceKeepsUnsavedEntries(t *testing.T) {
	kv := storage.NewMemory()
	New(kv, 0, nil).Record(Entry{Name: "ann", Score: 7})

	b := New(kv, 0, nil)
	b.LoadOnce()
	b.Insert(Entry{Name: "bob", Score: 9})
	b.LoadOnce()

	got := b.Entries()
	if len(got) != 2 || got[0].Name != "bob" || got[1].Name != "ann" {
		t.Errorf("Entries() = %+v, want [bob ann]", got)
	}
}

func TestLoadPayloadFormat(t *testing.T) {
	kv := storage.NewMemory()
	kv.Set(Key, []byte("- name: zed\n  score: 4\n- name: amy\n  score: 12\n"))

	got := New(kv, 0, nil).Load()
	if len(got) != 2 || got[0].Name != "amy" || got[1].Name != "zed" {
		t.Errorf("Load() should sort persisted entries, got %+v", got)
	}
}

func TestLoadCorruptIsEmpty(t *testing.T) {
	kv := storage.NewMemory()
	kv.Set(Key, []byte("name: [this is not a list"))

	b := New(kv, 0, nil)
	if got := b.Load(); len(got) != 0 {
		t.Errorf("Load() of corrupt data = %+v, want empty", got)
	}

	// The board still works after a corrupt load.
	b.Record(Entry{Name: "x", Score: 1})
	if len(b.Entries()) != 1 {
		t.Error("Record after corrupt load failed")
	}
}

func TestLoadAbsentIsEmpty(t *testing.T) {
	if got := New(storage.NewMemory(), 0, nil).Load(); len(got) != 0 {
		t.Errorf("Load() with nothing stored = %+v", got)
	}
	if got := New(nil, 0, nil).Load(); len(got) != 0 {
		t.Errorf("Load() with nil store = %+v", got)
	}
}

func TestSaveFailureKeepsMemory(t *testing.T) {
	kv := &failingKV{}
	b := New(kv, 0, nil)

	if got := b.Load(); len(got) != 0 {
		t.Fatalf("Load() on failing store = %+v", got)
	}

	b.Record(Entry{Name: "ann", Score: 3})
	if kv.sets != 1 {
		t.Errorf("Record should attempt one save, attempted %d", kv.sets)
	}
	if got := b.Entries(); len(got) != 1 {
		t.Errorf("in-memory board lost the entry: %+v", got)
	}
	if err := b.Save(); !errors.Is(err, storage.ErrUnavailable) {
		t.Errorf("Save() err = %v, want ErrUnavailable", err)
	}
}

func TestClear(t *testing.T) {
	kv := storage.NewMemory()
	b := New(kv, 0, nil)
	b.Record(Entry{Name: "a", Score: 1})

	if err := b.Clear(); err != nil {
		t.Fatalf("Clear() failed: %v", err)
	}
	if len(b.Entries()) != 0 {
		t.Error("Clear() left entries behind")
	}
	if got := New(kv, 0, nil).Load(); len(got) != 0 {
		t.Errorf("cleared board persisted %+v", got)
	}
}
