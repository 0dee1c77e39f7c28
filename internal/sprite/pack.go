package sprite

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"

	"github.com/vovakirdan/maenggu/internal/pet"
)

//go:embed packs
var builtinFS embed.FS

// BuiltinName is the name of the pack compiled into the binary.
const BuiltinName = "maenggu"

// Frame is one animation frame as text lines. Spaces are transparent.
type Frame []string

// Pack is a loaded sprite pack.
type Pack struct {
	Manifest Manifest
	Source   string // directory the pack was loaded from

	frames map[string][]Frame
	width  int
	height int
}

// Builtin loads the embedded default pack.
func Builtin() (*Pack, error) {
	return LoadFS(builtinFS, path.Join("packs", BuiltinName))
}

// Load reads a pack from a directory on disk.
func Load(dir string) (*Pack, error) {
	p, err := LoadFS(os.DirFS(dir), ".")
	if err != nil {
		return nil, err
	}
	p.Source = dir
	return p, nil
}

// LoadFS reads a pack rooted at dir inside fsys.
func LoadFS(fsys fs.FS, dir string) (*Pack, error) {
	data, err := fs.ReadFile(fsys, path.Join(dir, ManifestFile))
	if err != nil {
		return nil, fmt.Errorf("sprite: reading manifest: %w", err)
	}

	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("sprite: %s: %w", dir, err)
	}

	p := &Pack{
		Manifest: m,
		Source:   dir,
		frames:   make(map[string][]Frame, len(m.States)),
	}

	for name, cfg := range m.States {
		frames := make([]Frame, 0, len(cfg.Frames))
		for _, file := range cfg.Frames {
			raw, err := fs.ReadFile(fsys, path.Join(dir, file))
			if err != nil {
				return nil, fmt.Errorf("sprite: state %q: %w: %v", name, ErrMissingFrame, err)
			}
			frame := parseFrame(string(raw))
			p.growTo(frame)
			frames = append(frames, frame)
		}
		p.frames[name] = frames
	}

	return p, nil
}

// parseFrame splits frame text into lines, dropping trailing blank lines.
func parseFrame(text string) Frame {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return Frame(lines)
}

func (p *Pack) growTo(f Frame) {
	if len(f) > p.height {
		p.height = len(f)
	}
	for _, line := range f {
		if w := len([]rune(line)); w > p.width {
			p.width = w
		}
	}
}

// Name returns the manifest name.
func (p *Pack) Name() string {
	return p.Manifest.Name
}

// Size returns the largest frame extent in cells.
func (p *Pack) Size() (w, h int) {
	return p.width, p.height
}

// Frames implements pet.FrameSource. Unknown states resolve to the fallback.
func (p *Pack) Frames(state pet.AnimState) pet.FrameSpec {
	cfg, ok := p.Manifest.StateFor(state)
	if !ok {
		return pet.FrameSpec{FrameCount: 1, FrameDurationMs: pet.DefaultFrameDurationMs, Loop: state.Looping()}
	}

	duration := cfg.FrameDuration
	if duration <= 0 {
		duration = pet.DefaultFrameDurationMs
	}
	return pet.FrameSpec{
		FrameCount:      len(cfg.Frames),
		FrameDurationMs: duration,
		Loop:            cfg.Loop,
	}
}

// Frame returns the art for a state's frame. Out of range indexes clamp to
// the last frame.
func (p *Pack) Frame(state pet.AnimState, index int) Frame {
	frames, ok := p.frames[string(state)]
	if !ok || len(frames) == 0 {
		frames = p.frames[p.Manifest.Fallback]
	}
	if len(frames) == 0 {
		return nil
	}
	if index < 0 {
		index = 0
	}
	if index >= len(frames) {
		index = len(frames) - 1
	}
	return frames[index]
}

var mirrored = map[rune]rune{
	'(': ')', ')': '(',
	'[': ']', ']': '[',
	'{': '}', '}': '{',
	'<': '>', '>': '<',
	'/': '\\', '\\': '/',
	'd': 'b', 'b': 'd',
	'p': 'q', 'q': 'p',
}

// Mirror flips a frame horizontally, padding lines to a common width so the
// flipped art stays aligned.
func Mirror(f Frame) Frame {
	width := 0
	for _, line := range f {
		if w := len([]rune(line)); w > width {
			width = w
		}
	}

	out := make(Frame, len(f))
	for i, line := range f {
		runes := []rune(line)
		flipped := make([]rune, width)
		for j := range flipped {
			flipped[j] = ' '
		}
		for j, r := range runes {
			if m, ok := mirrored[r]; ok {
				r = m
			}
			flipped[width-1-j] = r
		}
		out[i] = strings.TrimRight(string(flipped), " ")
	}
	return out
}
