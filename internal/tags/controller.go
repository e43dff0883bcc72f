package tags

import "strings"

// MaxSuggestions caps the suggestion panel.
const MaxSuggestions = 5

// State is the autocomplete input state.
type State int

const (
	StateIdle State = iota
	StateSuggesting
)

func (s State) String() string {
	switch s {
	case StateSuggesting:
		return "suggesting"
	default:
		return "idle"
	}
}

// Key is a keyboard event the controller reacts to.
type Key int

const (
	KeyEnter Key = iota + 1
	KeyBackspace
	KeyArrowUp
	KeyArrowDown
	KeyEscape
)

// Suggestion is one entry of the suggestion panel.
type Suggestion struct {
	Tag      Tag
	Segments []Segment
}

// View is the surface the controller renders into.
type View interface {
	RenderChips(names []string)
	// RenderSuggestions shows the panel; an empty slice hides it.
	RenderSuggestions(items []Suggestion, highlighted int)
	SetInput(text string)
	FocusInput()
}

type nopView struct{}

func (nopView) RenderChips([]string)                {}
func (nopView) RenderSuggestions([]Suggestion, int) {}
func (nopView) SetInput(string)                     {}
func (nopView) FocusInput()                         {}

// Controller couples the tag input, the matcher and the selection.
type Controller struct {
	view       View
	opts       []MatcherOption
	candidates []Tag
	matcher    *Matcher
	selection  *Selection

	input       string
	query       string
	suggestions []Suggestion
	highlighted int
	state       State
	blurred     bool
}

// NewController returns an idle controller with no candidates. A nil view
// discards rendering.
func NewController(view View, opts ...MatcherOption) *Controller {
	if view == nil {
		view = nopView{}
	}
	return &Controller{
		view:        view,
		opts:        opts,
		matcher:     NewMatcher(nil, opts...),
		selection:   NewSelection(),
		highlighted: -1,
	}
}

// SetCandidates replaces the candidate tags and rebuilds the matcher. A
// pending query is re-run against the new candidates unless the input has
// lost focus.
func (c *Controller) SetCandidates(candidates []Tag) {
	c.candidates = append([]Tag(nil), candidates...)
	c.matcher = NewMatcher(c.candidates, c.opts...)
	if !c.blurred && strings.TrimSpace(c.input) != "" {
		c.InputChanged(c.input)
	}
}

// InputChanged handles an edit of the input text.
func (c *Controller) InputChanged(text string) {
	c.input = text
	c.blurred = false
	query := strings.TrimSpace(text)
	if query == "" {
		c.clearSuggestions()
		return
	}

	items := make([]Suggestion, 0, MaxSuggestions)
	for _, match := range c.matcher.Search(query) {
		if c.selection.Contains(match.Tag.Name) {
			continue
		}
		items = append(items, Suggestion{Tag: match.Tag, Segments: Highlight(match.Tag.Name, query)})
		if len(items) == MaxSuggestions {
			break
		}
	}
	if len(items) == 0 {
		c.clearSuggestions()
		return
	}

	c.query = query
	c.suggestions = items
	c.highlighted = -1
	c.state = StateSuggesting
	c.view.RenderSuggestions(c.Suggestions(), c.highlighted)
}

// KeyDown handles a key press on the input. It reports whether the key was
// consumed.
func (c *Controller) KeyDown(key Key) bool {
	switch key {
	case KeyEnter:
		if c.highlighted >= 0 && c.highlighted < len(c.suggestions) {
			c.Commit(c.suggestions[c.highlighted].Tag.Name)
			return true
		}
		name := strings.TrimSpace(c.input)
		if name != "" && !c.selection.Contains(name) {
			c.Commit(name)
		}
		return true
	case KeyBackspace:
		if c.input != "" {
			return false
		}
		if _, ok := c.selection.RemoveLast(); ok {
			c.view.RenderChips(c.selection.Names())
			return true
		}
		return false
	case KeyArrowDown:
		return c.navigate(1)
	case KeyArrowUp:
		return c.navigate(-1)
	case KeyEscape:
		visible := c.state == StateSuggesting
		c.clearSuggestions()
		return visible
	}
	return false
}

// ClickSuggestion commits the i-th visible suggestion and refocuses the input.
func (c *Controller) ClickSuggestion(i int) bool {
	if i < 0 || i >= len(c.suggestions) {
		return false
	}
	c.Commit(c.suggestions[i].Tag.Name)
	c.view.FocusInput()
	return true
}

// OutsideClick dismisses the suggestion panel.
func (c *Controller) OutsideClick() {
	c.clearSuggestions()
}

// Focus marks the input as focused again. The panel stays hidden until the
// next edit.
func (c *Controller) Focus() {
	c.blurred = false
}

// Blur dismisses the suggestion panel when the input loses focus.
func (c *Controller) Blur() {
	c.blurred = true
	c.clearSuggestions()
}

// Commit adds name to the selection, then clears the input and the panel.
func (c *Controller) Commit(name string) {
	if name == "" {
		return
	}
	if c.selection.Add(name) {
		c.view.RenderChips(c.selection.Names())
	}
	c.input = ""
	c.view.SetInput("")
	c.clearSuggestions()
}

// Remove deletes name from the selection.
func (c *Controller) Remove(name string) bool {
	if !c.selection.Remove(name) {
		return false
	}
	c.view.RenderChips(c.selection.Names())
	return true
}

func (c *Controller) navigate(direction int) bool {
	n := len(c.suggestions)
	if n == 0 {
		return false
	}
	c.highlighted += direction
	if c.highlighted < 0 {
		c.highlighted = n - 1
	} else if c.highlighted >= n {
		c.highlighted = 0
	}
	c.view.RenderSuggestions(c.Suggestions(), c.highlighted)
	return true
}

func (c *Controller) clearSuggestions() {
	c.query = ""
	c.suggestions = nil
	c.highlighted = -1
	c.state = StateIdle
	c.view.RenderSuggestions(nil, -1)
}

func (c *Controller) State() State {
	return c.state
}

func (c *Controller) Input() string {
	return c.input
}

// Query returns the trimmed query behind the visible suggestions.
func (c *Controller) Query() string {
	return c.query
}

func (c *Controller) Highlighted() int {
	return c.highlighted
}

// Suggestions returns a copy of the visible suggestions.
func (c *Controller) Suggestions() []Suggestion {
	return append([]Suggestion(nil), c.suggestions...)
}

// Selected returns the selected tag names in display order.
func (c *Controller) Selected() []string {
	return c.selection.Names()
}

func (c *Controller) Candidates() []Tag {
	return append([]Tag(nil), c.candidates...)
}

// ResolveIDs maps the selected names to candidate ids, dropping free-text tags.
func (c *Controller) ResolveIDs() []int {
	return Resolve(c.selection.Names(), c.candidates)
}
