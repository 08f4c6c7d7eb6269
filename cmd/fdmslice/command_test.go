//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"testing"

	"bytes"
	"os"
	"path/filepath"

	"github.com/google/go-cmp/cmp"
)

func TestCommandExpand(t *testing.T) {
	table := map[string]struct {
		In    string
		Out   []string
		Error error
	}{
		"hello":  {`hello world`, []string{"hello", "world"}, nil},
		"setenv": {`hello ${MONKEY}`, []string{"hello", "monkey"}, nil},
		"oct":    {`\101`, []string{"A"}, nil},
		"escape": {`hello\ you\e[7m\z\e[m\r\n\101`, []string{"hello you\033[7mz\033[m\r\nA"}, nil},
		"quotes": {`"hello world" 'and you "too"'`, []string{"hello world", "and you \"too\""}, nil},
		"quoted": {`"hello 'nice' world" "you \'too"`, []string{"hello 'nice' world", "you 'too"}, nil},
		"multi": {`cube.stl --layer-height 0.3
info --layer
cube.fdz
`, []string{"cube.stl", "--layer-height", "0.3", "info", "--layer", "cube.fdz"}, nil},
	}

	os.Setenv("MONKEY", "monkey")

	for key, item := range table {
		reader := bytes.NewReader([]byte(item.In))
		args, err := CommandExpand(reader)
		if err != item.Error {
			t.Errorf("%v: expected %v, got %v", key, item.Error, err)
			continue
		}

		if err != nil {
			continue
		}

		if diff := cmp.Diff(item.Out, args); diff != "" {
			t.Errorf("%v: (-want +got):\n%s", key, diff)
		}
	}
}

func TestCommandExpandIncomplete(t *testing.T) {
	_, err := CommandExpand(bytes.NewReader([]byte(`"hello world`)))
	if err == nil {
		t.Errorf("unterminated quote accepted")
	}
}

func TestExpandArgs(t *testing.T) {
	script := filepath.Join(t.TempDir(), "draft.args")
	err := os.WriteFile(script, []byte("--layer-height 0.3\n--density 0.1\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}

	args, err := ExpandArgs([]string{"cube.stl", "@" + script, "info", "@"})
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"cube.stl", "--layer-height", "0.3", "--density", "0.1", "info", "@"}
	if diff := cmp.Diff(want, args); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	_, err = ExpandArgs([]string{"@" + script + ".missing"})
	if err == nil {
		t.Errorf("missing script accepted")
	}
}
