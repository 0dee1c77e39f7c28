package sprite

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/vovakirdan/maenggu/internal/pet"
)

func TestBuiltinPack(t *testing.T) {
	p, err := Builtin()
	if err != nil {
		t.Fatalf("Builtin() error: %v", err)
	}
	if p.Name() != BuiltinName {
		t.Errorf("Name() = %q", p.Name())
	}

	// The built-in art must agree with the simulation's default timings.
	for _, s := range pet.AnimStates {
		got := p.Frames(s)
		expected := pet.DefaultFrames.Frames(s)
		if got != expected {
			t.Errorf("Frames(%s) = %+v, expected %+v", s, got, expected)
		}
		if f := p.Frame(s, 0); len(f) == 0 {
			t.Errorf("Frame(%s, 0) is empty", s)
		}
	}

	w, h := p.Size()
	if w > 8 || h > 4 {
		t.Errorf("Size() = %dx%d, expected at most 8x4 cells", w, h)
	}
}

func TestParseManifestErrors(t *testing.T) {
	tests := []struct {
		name     string
		json     string
		expected error
	}{
		{"not json", `{`, ErrInvalidManifest},
		{"wrong types", `{"name":1,"version":1,"frameSize":32,"states":{},"fallback":"idle"}`, ErrInvalidManifest},
		{"missing fallback field", `{"name":"x","version":1,"frameSize":32,"states":{"idle":{"frames":["a"],"loop":true}}}`, ErrInvalidManifest},
		{"missing happy", `{"name":"x","version":1,"frameSize":32,"fallback":"idle","states":{
			"idle":{"frames":["a"],"loop":true},
			"walk":{"frames":["a"],"loop":true},
			"eat":{"frames":["a"],"loop":false}}}`, ErrMissingState},
		{"empty eat", `{"name":"x","version":1,"frameSize":32,"fallback":"idle","states":{
			"idle":{"frames":["a"],"loop":true},
			"walk":{"frames":["a"],"loop":true},
			"eat":{"frames":[],"loop":false},
			"happy":{"frames":["a"],"loop":false}}}`, ErrMissingFrame},
		{"bad fallback", `{"name":"x","version":1,"frameSize":32,"fallback":"dance","states":{
			"idle":{"frames":["a"],"loop":true},
			"walk":{"frames":["a"],"loop":true},
			"eat":{"frames":["a"],"loop":false},
			"happy":{"frames":["a"],"loop":false}}}`, ErrMissingState},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseManifest([]byte(tc.json))
			if !errors.Is(err, tc.expected) {
				t.Errorf("ParseManifest() error = %v, expected %v", err, tc.expected)
			}
		})
	}
}

const minimalManifest = `{"name":"tiny","version":1,"frameSize":16,"fallback":"idle","states":{
	"idle":{"frames":["i.txt"],"loop":true},
	"walk":{"frames":["w0.txt","w1.txt"],"frameDuration":120,"loop":true},
	"eat":{"frames":["i.txt"],"loop":false},
	"happy":{"frames":["i.txt"],"loop":false}}}`

func tinyFS() fstest.MapFS {
	return fstest.MapFS{
		"tiny/sprite.json": {Data: []byte(minimalManifest)},
		"tiny/i.txt":       {Data: []byte("(o)\n\n")},
		"tiny/w0.txt":      {Data: []byte("(o\r\n/ \r\n")},
		"tiny/w1.txt":      {Data: []byte(" o)\n \\\n")},
	}
}

func TestLoadFSFallback(t *testing.T) {
	p, err := LoadFS(tinyFS(), "tiny")
	if err != nil {
		t.Fatalf("LoadFS() error: %v", err)
	}

	walk := p.Frames(pet.Walk)
	if walk.FrameCount != 2 || walk.FrameDurationMs != 120 || !walk.Loop {
		t.Errorf("Frames(walk) = %+v", walk)
	}

	// Sleep is not in the pack: fallback to idle.
	sleep := p.Frames(pet.Sleep)
	if sleep.FrameCount != 1 || sleep.FrameDurationMs != pet.DefaultFrameDurationMs || !sleep.Loop {
		t.Errorf("Frames(sleep) = %+v, expected idle fallback", sleep)
	}
	if got := p.Frame(pet.Sleep, 0); len(got) != 1 || got[0] != "(o)" {
		t.Errorf("Frame(sleep) = %q", got)
	}

	if got := p.Frame(pet.Walk, 0); got[0] != "(o" || got[1] != "/ " {
		t.Errorf("Frame(walk, 0) = %q", got)
	}
	if got := p.Frame(pet.Walk, 9); got[0] != " o)" {
		t.Errorf("Frame(walk, 9) should clamp to last frame, got %q", got)
	}
}

func TestLoadFSMissingFrameFile(t *testing.T) {
	fsys := tinyFS()
	delete(fsys, "tiny/w1.txt")

	_, err := LoadFS(fsys, "tiny")
	if !errors.Is(err, ErrMissingFrame) {
		t.Errorf("LoadFS() error = %v, expected ErrMissingFrame", err)
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	for name, file := range tinyFS() {
		target := filepath.Join(dir, filepath.Base(name))
		if err := os.WriteFile(target, file.Data, 0o644); err != nil {
			t.Fatal(err)
		}
	}

	p, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if p.Source != dir || p.Name() != "tiny" {
		t.Errorf("Load() = %q from %q", p.Name(), p.Source)
	}
}

func TestMirror(t *testing.T) {
	got := Mirror(Frame{"(o.<", "/_"})
	expected := Frame{">.o)", "  _\\"}

	if len(got) != len(expected) {
		t.Fatalf("Mirror() = %q", got)
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("line %d = %q, expected %q", i, got[i], expected[i])
		}
	}
}
