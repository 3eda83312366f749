package sprites

import (
	"encoding/json"
	"fmt"
)

// ScriptStep is one action of a Script.
type ScriptStep struct {
	Action string  `json:"action"` // click, move, select, screenshot or wait
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	Sprite string  `json:"sprite,omitempty"` // select: sprite name
	State  string  `json:"state,omitempty"`  // select: state name
	Label  string  `json:"label,omitempty"`  // screenshot: file label
	Frames int     `json:"frames,omitempty"` // wait: number of updates
}

// Script drives a Group from a list of steps, one step per Update, so a
// sprite sheet can be exercised and captured without a person at the mouse:
//
//	{"steps": [
//		{"action": "move", "x": 40, "y": 40},
//		{"action": "wait", "frames": 30},
//		{"action": "screenshot", "label": "hover"},
//		{"action": "select", "sprite": "play", "state": "pressed"}
//	]}
type Script struct {
	Steps []ScriptStep `json:"steps"`

	cursor int
	wait   int
	done   bool
	err    error
}

// LoadScript parses a JSON script.
func LoadScript(data []byte) (*Script, error) {
	var sc Script
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("sprites: parse script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("sprites: parse script: no steps")
	}
	for i, st := range sc.Steps {
		switch st.Action {
		case "click", "move", "screenshot", "wait":
		case "select":
			if st.Sprite == "" || st.State == "" {
				return nil, fmt.Errorf("sprites: script step %d: select needs sprite and state", i)
			}
		default:
			return nil, fmt.Errorf("sprites: script step %d: unknown action %q", i, st.Action)
		}
	}
	return &sc, nil
}

// Done reports whether every step has run.
func (sc *Script) Done() bool { return sc.done }

// Err returns the first step failure, e.g. a select naming an unknown
// sprite. Failing steps are skipped.
func (sc *Script) Err() error { return sc.err }

// SetScript attaches sc to the group. Its steps run from the next Update.
func (g *Group) SetScript(sc *Script) { g.script = sc }

// step runs at most one step. Injected input must drain and waits must
// elapse before the next step starts.
func (sc *Script) step(g *Group) {
	if sc.done || len(g.injectQueue) > 0 {
		return
	}
	if sc.wait > 0 {
		sc.wait--
		return
	}
	if sc.cursor >= len(sc.Steps) {
		sc.done = true
		return
	}

	st := sc.Steps[sc.cursor]
	sc.cursor++
	switch st.Action {
	case "click":
		g.InjectClick(st.X, st.Y)
	case "move":
		g.InjectMove(st.X, st.Y)
	case "screenshot":
		g.Screenshot(st.Label)
	case "wait":
		if st.Frames > 0 {
			sc.wait = st.Frames - 1
		}
	case "select":
		sc.selectState(g, st)
	}

	if sc.cursor >= len(sc.Steps) && sc.wait == 0 && len(g.injectQueue) == 0 {
		sc.done = true
	}
}

func (sc *Script) selectState(g *Group, st ScriptStep) {
	s := g.Find(st.Sprite)
	if s == nil {
		sc.fail(fmt.Errorf("sprites: script: no sprite %q", st.Sprite))
		return
	}
	if err := s.SelectState(st.State); err != nil {
		sc.fail(err)
	}
}

func (sc *Script) fail(err error) {
	logger.Error("script step failed", "step", sc.cursor-1, "err", err)
	if sc.err == nil {
		sc.err = err
	}
}
