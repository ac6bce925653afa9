// Package wizard models the multi-step signup forms as linear step
// counters. The HTTP API only serves the step definitions; the Telegram
// bot walks users through them one answer at a time.
package wizard

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Freeeeeet/tuition_site/internal/validation"
)

// SkipWord lets a user leave an optional step empty.
const SkipWord = "skip"

var ErrFinished = errors.New("form already finished")

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Step is one question. Tag is a validator tag applied to the answer (to
// every item when List is set). Max bounds a whole-number answer.
type Step struct {
	Key      string   `json:"key"`
	Prompt   string   `json:"prompt"`
	Options  []Option `json:"options,omitempty"`
	Optional bool     `json:"optional,omitempty"`
	List     bool     `json:"list,omitempty"`
	Max      int      `json:"max,omitempty"`
	Tag      string   `json:"-"`
}

type Form struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	Steps []Step `json:"steps"`
}

// Session tracks one user's position in a form and the answers so far.
type Session struct {
	form    *Form
	index   int
	answers map[string]string
}

func NewSession(form *Form) *Session {
	return &Session{form: form, answers: make(map[string]string)}
}

func (s *Session) Form() *Form {
	return s.form
}

// Current returns the step awaiting an answer; false once the form is done.
func (s *Session) Current() (Step, bool) {
	if s.Done() {
		return Step{}, false
	}
	return s.form.Steps[s.index], true
}

// Position is the zero-based index of the current step.
func (s *Session) Position() int {
	return s.index
}

func (s *Session) Done() bool {
	return s.index >= len(s.form.Steps)
}

// Answer validates input for the current step, stores it and advances.
// On a validation error the session stays on the same step.
func (s *Session) Answer(v *validation.Validator, input string) error {
	step, ok := s.Current()
	if !ok {
		return ErrFinished
	}

	value, err := step.parse(v, input)
	if err != nil {
		return err
	}
	s.answers[step.Key] = value
	s.index++
	return nil
}

// Back moves to the previous step; false when already at the first one.
func (s *Session) Back() bool {
	if s.index == 0 {
		return false
	}
	s.index--
	delete(s.answers, s.form.Steps[s.index].Key)
	return true
}

// Rewind moves back to the step with key and drops the answers from there
// on. Keys such as "subjects[0]" match the "subjects" step.
func (s *Session) Rewind(key string) bool {
	if i := strings.IndexByte(key, '['); i >= 0 {
		key = key[:i]
	}
	for i, step := range s.form.Steps {
		if step.Key != key || i > s.index {
			continue
		}
		for _, later := range s.form.Steps[i:] {
			delete(s.answers, later.Key)
		}
		s.index = i
		return true
	}
	return false
}

// RewindToError rewinds to the earliest step named in a validation error.
func (s *Session) RewindToError(err error) bool {
	var verr *validation.Error
	if !errors.As(err, &verr) {
		return false
	}
	for _, step := range s.form.Steps {
		for field := range verr.Fields {
			if f, _, _ := strings.Cut(field, "["); f == step.Key {
				return s.Rewind(step.Key)
			}
		}
	}
	return false
}

// Progress is shown above each prompt, e.g. "Step 2 of 6".
func (s *Session) Progress() string {
	n := s.index + 1
	if n > len(s.form.Steps) {
		n = len(s.form.Steps)
	}
	return fmt.Sprintf("Step %d of %d", n, len(s.form.Steps))
}

// Answers returns a copy of the collected values keyed by step key.
func (s *Session) Answers() Answers {
	out := make(Answers, len(s.answers))
	for k, v := range s.answers {
		out[k] = v
	}
	return out
}

func (st Step) parse(v *validation.Validator, input string) (string, error) {
	input = strings.TrimSpace(input)
	if st.Optional && (input == "" || strings.EqualFold(input, SkipWord)) {
		return "", nil
	}
	if input == "" {
		return "", validation.FieldError(st.Key, "is required")
	}

	if len(st.Options) > 0 {
		for _, o := range st.Options {
			if strings.EqualFold(input, o.Value) || strings.EqualFold(input, o.Label) {
				return o.Value, nil
			}
		}
		return "", validation.FieldError(st.Key, "choose one of the options")
	}

	if st.List {
		items := SplitList(input)
		if len(items) == 0 {
			return "", validation.FieldError(st.Key, "is required")
		}
		if st.Tag != "" {
			for _, item := range items {
				if err := v.Var(st.Key, item, st.Tag); err != nil {
					return "", err
				}
			}
		}
		return strings.Join(items, ", "), nil
	}

	if st.Tag != "" {
		if err := v.Var(st.Key, input, st.Tag); err != nil {
			return "", err
		}
	}
	if st.Max > 0 {
		n, err := strconv.Atoi(input)
		if err != nil || n < 0 {
			return "", validation.FieldError(st.Key, "must be a whole number")
		}
		if n > st.Max {
			return "", validation.FieldError(st.Key, fmt.Sprintf("must be at most %d", st.Max))
		}
	}
	return input, nil
}

// SplitList splits "Math, Science; English" into trimmed items.
func SplitList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' || r == '\n' })
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
