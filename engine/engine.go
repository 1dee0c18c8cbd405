// Package engine implements the translation engine state machine (spec
// §4.H): NORMAL/ADD_TRANSLATION/CONSOLE modes, stroke dispatch, and
// incremental diff-emission between successive key-code buffers.
// Dispatch discipline -- one stroke fully handled before the next is
// accepted -- is grounded on the teacher's wal_writer.go single-
// goroutine loop() (spec §5 "Scheduling model").
package engine

import (
	"github.com/stenocore/steno/convert"
	"github.com/stenocore/steno/dictstack"
	"github.com/stenocore/steno/history"
	"github.com/stenocore/steno/segment"
	"github.com/stenocore/steno/stroke"
)

// Mode is one of the engine's operating modes, spec §4.H.
type Mode int

const (
	Normal Mode = iota
	AddTranslation
	Console
)

// Sink is the host key-code emission interface, spec §6 "Host key-code
// emission interface".
type Sink interface {
	EmitBackspaces(n int)
	EmitText(utf8 string)
	EmitRawKey(scanCode, modifiers int)
}

// UserDictionary is the user-dictionary collaborator interface, spec
// §6 "User dictionary interface (collaborator)". The core does not
// specify persistence; package userdict supplies the default
// file-backed implementation.
type UserDictionary interface {
	Lookup(key stroke.Key) (string, bool)
	Add(key stroke.Key, text string) error
	Remove(key stroke.Key) error
}

// Config bundles the strokes that drive mode transitions, since
// spec.md leaves their concrete bit patterns to the firmware/console
// layer it treats as out of scope. No default strokes are applied: a
// zero AddTranslationStroke, CommitStroke or CancelStroke is never
// matched, so that transition does not occur, and a zero
// SeparatorStroke makes every accumulated stroke part of the outline
// with an empty translation. Callers building a real keyboard layout
// supply deliberate sentinel strokes that cannot arise from normal
// chording, the same way spec §3 reserves stroke.Undo.
type Config struct {
	HistoryCapacity      int
	AddTranslationStroke stroke.Stroke
	SeparatorStroke      stroke.Stroke
	CommitStroke         stroke.Stroke
	CancelStroke         stroke.Stroke
}

// Engine is the translation engine: dictionary stack, history, segment
// builder, and converter wired together behind a single stroke
// dispatch entry point.
type Engine struct {
	cfg       Config
	dicts     *dictstack.Stack
	hist      *history.History
	builder   *segment.Builder
	converter *convert.Converter
	sink      Sink
	userDict  UserDictionary

	mode  Mode
	state convert.State
	prev  *convert.Buffer

	addTranslationStrokes []stroke.Stroke
	addTranslationSnap    convert.State
}

// New builds an Engine. dicts and builder must share the same
// dictionary stack (builder.Dicts == dicts, structurally) so the
// segment window's maximumOutlineLength tracks the stack's enabled
// dictionaries.
func New(cfg Config, dicts *dictstack.Stack, builder *segment.Builder, converter *convert.Converter, sink Sink, userDict UserDictionary) *Engine {
	return &Engine{
		cfg:       cfg,
		dicts:     dicts,
		hist:      history.New(cfg.HistoryCapacity),
		builder:   builder,
		converter: converter,
		sink:      sink,
		userDict:  userDict,
		state:     convert.DefaultState(),
		prev:      &convert.Buffer{},
	}
}

// Mode reports the engine's current mode.
func (e *Engine) Mode() Mode { return e.mode }

// Stroke dispatches one stroke event, spec §4.H.
func (e *Engine) Stroke(s stroke.Stroke) {
	switch e.mode {
	case AddTranslation:
		e.strokeAddTranslation(s)
	default:
		e.strokeNormal(s)
	}
}

func (e *Engine) strokeNormal(s stroke.Stroke) {
	switch {
	case s == stroke.Undo:
		e.undo()
	case e.cfg.AddTranslationStroke != 0 && s == e.cfg.AddTranslationStroke:
		e.enterAddTranslation()
	default:
		e.commitStroke(s)
	}
}

// commitStroke implements spec §4.H step 2.
func (e *Engine) commitStroke(s stroke.Stroke) {
	e.hist.Push(history.Entry{Stroke: s, FormatState: e.state.Clone()})

	maxLen := e.dicts.MaximumOutlineLength()
	if maxLen <= 0 {
		maxLen = 1
	}
	entries := e.hist.Entries()
	end := len(entries)
	pStart := end - maxLen
	if pStart < 0 {
		pStart = 0
	}

	window := entries[pStart:]
	strokes := make([]stroke.Stroke, len(window))
	startState := convert.DefaultState()
	for i, entry := range window {
		strokes[i] = entry.Stroke
		if i == 0 {
			if fs, ok := entry.FormatState.(convert.State); ok {
				startState = fs
			}
		}
	}

	segs := e.builder.Build(strokes)
	if len(segs) > 0 {
		lastSpan := segs[len(segs)-1].Length
		e.hist.UpdateTop(func(ent *history.Entry) { ent.StrokesInSegment = lastSpan })
	}

	next, nextState := e.converter.Convert(segs, startState)
	e.emitDiff(next)
	e.state = nextState
	e.prev = next
}

// undo implements spec §4.H step 1 / §4.D.
func (e *Engine) undo() {
	top, ok := e.hist.Peek(0)
	if !ok {
		return // spec §7 "Undo beyond history: no-op"
	}
	n := top.StrokesInSegment
	if n <= 0 {
		n = 1
	}
	if len(e.hist.UndoLast(n)) == 0 {
		return
	}

	entries := e.hist.Entries()
	if len(entries) == 0 {
		e.emitDiff(&convert.Buffer{})
		e.state = convert.DefaultState()
		e.prev = &convert.Buffer{}
		return
	}

	maxLen := e.dicts.MaximumOutlineLength()
	if maxLen <= 0 {
		maxLen = 1
	}
	end := len(entries)
	pStart := end - maxLen
	if pStart < 0 {
		pStart = 0
	}

	window := entries[pStart:]
	strokes := make([]stroke.Stroke, len(window))
	startState := convert.DefaultState()
	for i, entry := range window {
		strokes[i] = entry.Stroke
		if i == 0 {
			if fs, ok := entry.FormatState.(convert.State); ok {
				startState = fs
			}
		}
	}

	segs := e.builder.Build(strokes)
	if len(segs) > 0 {
		lastSpan := segs[len(segs)-1].Length
		e.hist.UpdateTop(func(ent *history.Entry) { ent.StrokesInSegment = lastSpan })
	}

	next, nextState := e.converter.Convert(segs, startState)
	e.emitDiff(next)
	e.state = nextState
	e.prev = next
}

// emitDiff computes the longest common prefix between the previous and
// next buffers and emits backspaces plus the new suffix, spec §4.H
// step 2 / §4.G "the engine layer diffs the previous buffer against
// it".
func (e *Engine) emitDiff(next *convert.Buffer) {
	prevRunes := []rune(e.prev.Text)
	nextRunes := []rune(next.Text)

	p := 0
	for p < len(prevRunes) && p < len(nextRunes) && prevRunes[p] == nextRunes[p] {
		p++
	}

	if backspaces := len(prevRunes) - p; backspaces > 0 {
		e.sink.EmitBackspaces(backspaces)
	}
	if p < len(nextRunes) {
		e.sink.EmitText(string(nextRunes[p:]))
	}
	for _, ev := range next.Events {
		if ev.Kind == convert.RawKey {
			e.sink.EmitRawKey(ev.ScanCode, ev.Modifiers)
		}
	}
}
