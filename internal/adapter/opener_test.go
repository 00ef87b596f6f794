package adapter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type startCall struct {
	name string
	args []string
}

func newTestOpener(command string, args []string, inPath map[string]bool) (*Opener, *[]startCall) {
	var calls []startCall
	o := NewOpener(command, args, NullLogger())
	o.start = func(name string, args ...string) error {
		calls = append(calls, startCall{name: name, args: args})
		return nil
	}
	o.lookPath = func(file string) (string, error) {
		if inPath[file] {
			return "/usr/bin/" + file, nil
		}
		return "", errors.New("not found")
	}
	return o, &calls
}

func TestOpenerRejectsNonHTTP(t *testing.T) {
	o, calls := newTestOpener("firefox", nil, nil)

	for _, raw := range []string{"", "file:///etc/passwd", "javascript:alert(1)", "not a url"} {
		assert.Error(t, o.Open(raw), raw)
	}
	assert.Empty(t, *calls)
}

func TestOpenerConfiguredCommand(t *testing.T) {
	o, calls := newTestOpener("firefox", []string{"--new-tab"}, nil)

	require.NoError(t, o.Open("https://img.example/p/1.jpg"))
	require.Len(t, *calls, 1)
	assert.Equal(t, "firefox", (*calls)[0].name)
	assert.Equal(t, []string{"--new-tab", "https://img.example/p/1.jpg"}, (*calls)[0].args)

	// Configured args are not mutated between calls
	require.NoError(t, o.Open("https://img.example/p/2.jpg"))
	assert.Equal(t, []string{"--new-tab", "https://img.example/p/2.jpg"}, (*calls)[1].args)
}

func TestOpenerNoCandidates(t *testing.T) {
	o, calls := newTestOpener("", nil, map[string]bool{})

	err := o.Open("https://img.example/p/1.jpg")
	assert.ErrorIs(t, err, ErrNoOpener)
	assert.Empty(t, *calls)
}
