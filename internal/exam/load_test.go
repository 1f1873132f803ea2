package exam

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Basic(t *testing.T) {
	e, err := Load(filepath.Join("testdata", "basic.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "algebra-quiz", e.ID)
	assert.Equal(t, "Algebra Quiz", e.Title)
	assert.Equal(t, 10*time.Minute, e.TimeLimit)
	assert.Equal(t, 600, e.DurationSeconds())
	require.Equal(t, 3, e.Total())
	assert.Equal(t, KindChoice, e.Questions[0].Kind)
	assert.Equal(t, []string{"x = 1", "x = 2", "x = 3"}, e.Questions[0].Choices)
	assert.Equal(t, KindText, e.Questions[1].Kind)
	assert.Empty(t, e.Questions[1].Choices)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidExam)
}

func TestParse_Rejects(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "not yaml",
			yaml: "id: [unclosed",
		},
		{
			name: "missing title",
			yaml: `
id: x
format: v1.0.0
duration: 1m
questions:
  - {id: q1, prompt: p, kind: text}
`,
		},
		{
			name: "no questions",
			yaml: `
id: x
title: X
format: v1.0.0
duration: 1m
questions: []
`,
		},
		{
			name: "unknown kind",
			yaml: `
id: x
title: X
format: v1.0.0
duration: 1m
questions:
  - {id: q1, prompt: p, kind: essay}
`,
		},
		{
			name: "choice without choices",
			yaml: `
id: x
title: X
format: v1.0.0
duration: 1m
questions:
  - {id: q1, prompt: p, kind: choice}
`,
		},
		{
			name: "choice with one option",
			yaml: `
id: x
title: X
format: v1.0.0
duration: 1m
questions:
  - {id: q1, prompt: p, kind: choice, choices: [a]}
`,
		},
		{
			name: "unknown field",
			yaml: `
id: x
title: X
format: v1.0.0
duration: 1m
shuffle: true
questions:
  - {id: q1, prompt: p, kind: text}
`,
		},
		{
			name: "format not semver",
			yaml: `
id: x
title: X
format: "1.0"
duration: 1m
questions:
  - {id: q1, prompt: p, kind: text}
`,
		},
		{
			name: "unsupported major",
			yaml: `
id: x
title: X
format: v2.1.0
duration: 1m
questions:
  - {id: q1, prompt: p, kind: text}
`,
		},
		{
			name: "bad duration",
			yaml: `
id: x
title: X
format: v1.0.0
duration: forever
questions:
  - {id: q1, prompt: p, kind: text}
`,
		},
		{
			name: "zero duration",
			yaml: `
id: x
title: X
format: v1.0.0
duration: 0s
questions:
  - {id: q1, prompt: p, kind: text}
`,
		},
		{
			name: "duplicate question id",
			yaml: `
id: x
title: X
format: v1.0.0
duration: 1m
questions:
  - {id: q1, prompt: p, kind: text}
  - {id: q1, prompt: p2, kind: text}
`,
		},
		{
			name: "blank choice",
			yaml: `
id: x
title: X
format: v1.0.0
duration: 1m
questions:
  - {id: q1, prompt: p, kind: choice, choices: ["a", "   "]}
`,
		},
		{
			name: "choices equal once trimmed",
			yaml: `
id: x
title: X
format: v1.0.0
duration: 1m
questions:
  - {id: q1, prompt: p, kind: choice, choices: ["a", " a "]}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidExam)
		})
	}
}

func TestParse_FormatShorthand(t *testing.T) {
	e, err := Parse([]byte(`
id: x
title: X
format: v1
duration: 90s
questions:
  - {id: q1, prompt: p, kind: text}
`))
	require.NoError(t, err)
	assert.Equal(t, 90, e.DurationSeconds())
}

func TestParse_TrimsChoices(t *testing.T) {
	e, err := Parse([]byte(`
id: x
title: X
format: v1.0.0
duration: 1m
questions:
  - {id: q1, prompt: p, kind: choice, choices: [" Paris ", "Rome"]}
`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Paris", "Rome"}, e.Questions[0].Choices)

	s := NewSession(e)
	require.NoError(t, s.Answer(" Paris "))
	got, ok := s.Response(1)
	assert.True(t, ok)
	assert.Equal(t, "Paris", got)
}

func TestQuestion_HasChoice(t *testing.T) {
	q := Question{Kind: KindChoice, Choices: []string{"a", "b"}}
	assert.True(t, q.HasChoice("a"))
	assert.False(t, q.HasChoice("c"))
	assert.False(t, q.HasChoice(""))
}
