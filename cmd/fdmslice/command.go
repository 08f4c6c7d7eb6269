//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

var escapes = map[byte]byte{
	'b':  '\b',
	't':  '\t',
	'n':  '\n',
	'r':  '\r',
	'e':  '\033',
	'"':  '"',
	'\'': '\'',
	' ':  ' ',
	'\\': '\\',
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n'
}

// argScanner splits a script into shell-like words
type argScanner struct {
	token   []byte
	squote  bool
	dquote  bool
	escape  bool
	octal   int
	octals  int
	started bool
}

func (as *argScanner) flushOctal() {
	if as.octals > 0 {
		as.token = append(as.token, byte(as.octal))
		as.octal = 0
		as.octals = 0
	}
}

// next consumes c, and returns true at the end of a word
func (as *argScanner) next(c byte) (done bool) {
	if as.escape {
		if c >= '0' && c <= '7' {
			as.octal = as.octal*8 + int(c-'0')
			as.octals++
			if as.octals == 3 {
				as.flushOctal()
			}
			as.escape = as.octals != 0
			return
		}

		as.flushOctal()
		if esc, ok := escapes[c]; ok {
			c = esc
		}
		as.token = append(as.token, c)
		as.escape = false
		return
	}

	switch {
	case c == '"' && !as.squote:
		as.dquote = !as.dquote
	case c == '\'' && !as.dquote:
		as.squote = !as.squote
	case c == '\\':
		as.escape = true
	case isSpace(c) && !as.squote && !as.dquote:
		done = true
	default:
		as.token = append(as.token, c)
	}

	return
}

// ScanArgs is a bufio.SplitFunc for shell-like words, with quotes,
// backslash escapes and octal escapes
func ScanArgs(data []byte, atEOF bool) (advance int, token []byte, err error) {
	skip := 0
	for ; skip < len(data) && isSpace(data[skip]); skip++ {
	}

	data = data[skip:]
	if len(data) == 0 {
		advance = skip
		return
	}

	as := &argScanner{}
	for here := range data {
		if as.next(data[here]) {
			advance = skip + here
			token = as.token
			return
		}
	}

	if as.escape && as.octals > 0 {
		as.flushOctal()
		as.escape = false
	}

	if !as.dquote && !as.squote && !as.escape {
		advance = skip + len(data)
		if len(as.token) > 0 {
			token = as.token
		}
		return
	}

	if atEOF {
		err = fmt.Errorf("incomplete line: '%v' => '%v'", string(data), string(as.token))
	}

	return
}

// CommandExpand splits a script into words, expanding environment
// variables in each
func CommandExpand(reader io.Reader) (out []string, err error) {
	var words []string
	scanner := bufio.NewScanner(reader)
	scanner.Split(ScanArgs)
	for scanner.Scan() {
		words = append(words, os.ExpandEnv(scanner.Text()))
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	out = words

	return
}

// ExpandArgs replaces every '@script' argument with the words of the
// script file
func ExpandArgs(args []string) (out []string, err error) {
	for _, arg := range args {
		if !strings.HasPrefix(arg, "@") || len(arg) == 1 {
			out = append(out, arg)
			continue
		}

		var file *os.File
		file, err = os.Open(arg[1:])
		if err != nil {
			return
		}

		var words []string
		words, err = CommandExpand(file)
		file.Close()
		if err != nil {
			err = fmt.Errorf("%s: %w", arg[1:], err)
			return
		}

		out = append(out, words...)
	}

	return
}
