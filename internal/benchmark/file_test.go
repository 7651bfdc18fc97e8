package benchmark

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSaveCanonicalLayout(t *testing.T) {
	s := newTestStore(0.4, 0)
	s.entries["Morgan Dollar|1883|O"] = Entry{EMAPrice: 63, Samples: 17, LastTotalPrice: 63, LastUpdated: 1765618492, ObserversTotal: 30}
	s.entries["Barber Half|1905|S"] = Entry{EMAPrice: 21.5, Samples: 2, LastTotalPrice: 22, LastUpdated: 1765618000, ObserversTotal: 4}

	path := filepath.Join(t.TempDir(), "price_store.json")
	if err := s.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	want := "{\n" +
		"  \"Barber Half|1905|S\": [21.5,2,22,1765618000,4],\n" +
		"  \"Morgan Dollar|1883|O\": [63,17,63,1765618492,30]\n" +
		"}\n"
	if string(data) != want {
		t.Errorf("file layout mismatch:\ngot:\n%s\nwant:\n%s", data, want)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(0.4, 0.08)
	s.UpdatePrice("Morgan Dollar|1921|P", 50, 2, 1, "1921 Morgan Dollar VG")
	s.UpdatePrice("Peace Dollar|1923|S", 38.5, 1, 1, "1923-S Peace Dollar")
	s.UpdatePrice("Morgan Dollar|1921|P", 61, 4, 1, "1921 Morgan Dollar nice one")

	path := filepath.Join(t.TempDir(), "price_store.json")
	if err := s.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded := Load(path, 0.4, 0.08)
	if !reflect.DeepEqual(s.Entries(), loaded.Entries()) {
		t.Errorf("round trip mismatch:\nsaved:  %+v\nloaded: %+v", s.Entries(), loaded.Entries())
	}
}

func TestLoadMissingFileFailsOpen(t *testing.T) {
	s := Load(filepath.Join(t.TempDir(), "does_not_exist.json"), 0.4, 0.08)
	if s.Len() != 0 {
		t.Errorf("Len = %d, want empty store for missing file", s.Len())
	}
}

func TestLoadCorruptFileFailsOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "price_store.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := Load(path, 0.4, 0.08)
	if s.Len() != 0 {
		t.Errorf("Len = %d, want empty store for corrupt file", s.Len())
	}
}

func TestLoadSkipsMalformedRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "price_store.json")
	raw := "{\n" +
		"  \"Good|1900|P\": [10.5,3,11,1765618492,6],\n" +
		"  \"Short|1901|P\": [1,2],\n" +
		"  \"Unsampled|1902|P\": [5,0,5,1765618492,0]\n" +
		"}\n"
	if err := os.WriteFile(path, []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	s := Load(path, 0.4, 0.08)
	if s.Len() != 1 {
		t.Fatalf("Len = %d, want only the well-formed row", s.Len())
	}
	if _, _, ok := s.Lookup("Good|1900|P"); !ok {
		t.Error("well-formed row should survive loading")
	}
}

func TestSaveErrorSurfaced(t *testing.T) {
	s := newTestStore(0.4, 0)
	s.entries["Morgan Dollar|1921|P"] = Entry{EMAPrice: 50, Samples: 1, LastTotalPrice: 50, LastUpdated: 1, ObserversTotal: 1}

	path := filepath.Join(t.TempDir(), "missing-dir", "price_store.json")
	if err := s.Save(path); err == nil {
		t.Error("Save into a missing directory should return an error")
	}
}

func TestSaveEmptyStore(t *testing.T) {
	s := newTestStore(0.4, 0)
	path := filepath.Join(t.TempDir(), "price_store.json")
	if err := s.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "{\n}\n" {
		t.Errorf("empty store layout = %q, want {\\n}\\n", data)
	}
}
