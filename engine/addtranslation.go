package engine

import (
	"github.com/stenocore/steno/convert"
	"github.com/stenocore/steno/stroke"
)

// enterAddTranslation switches to ADD_TRANSLATION mode, snapshotting
// formatting state so cancellation can restore it (spec §4.H
// "Cancellation").
func (e *Engine) enterAddTranslation() {
	e.mode = AddTranslation
	e.addTranslationStrokes = nil
	e.addTranslationSnap = e.state.Clone()
	e.prev = &convert.Buffer{}
}

// strokeAddTranslation implements spec §4.H's ADD_TRANSLATION mode:
// strokes accumulate into an outline and a translation field, split by
// the configured separator stroke, displayed via the normal pipeline
// without committing to history; the commit stroke persists the
// mapping (or deletes it if the translation field is empty), and the
// cancel stroke restores pre-entry state.
func (e *Engine) strokeAddTranslation(s stroke.Stroke) {
	switch {
	case e.cfg.CancelStroke != 0 && s == e.cfg.CancelStroke:
		e.exitAddTranslation(false)
		return
	case e.cfg.CommitStroke != 0 && s == e.cfg.CommitStroke:
		e.exitAddTranslation(true)
		return
	default:
		e.addTranslationStrokes = append(e.addTranslationStrokes, s)
	}

	segs := e.builder.Build(e.addTranslationStrokes)
	next, _ := e.converter.Convert(segs, e.addTranslationSnap)
	e.emitDiff(next)
	e.prev = next
}

// exitAddTranslation commits or cancels the pending translation and
// returns to NORMAL, restoring formatting state from the pre-entry
// snapshot.
func (e *Engine) exitAddTranslation(commit bool) {
	outline, text := e.splitAddTranslation()

	if commit && len(outline) > 0 {
		key := make(stroke.Key, len(outline))
		copy(key, outline)
		if text == "" {
			e.userDict.Remove(key)
		} else {
			e.userDict.Add(key, text)
		}
	}

	e.mode = Normal
	e.state = e.addTranslationSnap
	e.addTranslationStrokes = nil

	segs := e.builder.Build(nil)
	next, nextState := e.converter.Convert(segs, e.state)
	e.emitDiff(next)
	e.state = nextState
	e.prev = next
}

// splitAddTranslation divides the accumulated strokes at the separator
// stroke into the new outline and the strokes whose translated text
// becomes the new entry's text.
func (e *Engine) splitAddTranslation() ([]stroke.Stroke, string) {
	strokes := e.addTranslationStrokes
	if e.cfg.SeparatorStroke == 0 {
		return strokes, ""
	}

	for i, s := range strokes {
		if s == e.cfg.SeparatorStroke {
			outline := strokes[:i]
			rest := strokes[i+1:]
			if len(rest) == 0 {
				return outline, ""
			}
			segs := e.builder.Build(rest)
			buf, _ := e.converter.Convert(segs, convert.DefaultState())
			return outline, buf.Text
		}
	}
	return strokes, ""
}
