//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package fdmslice

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Reader needs io.ReaderAt for archive/zip
type Reader interface {
	io.Reader
	io.ReaderAt
}

// Writer
type Writer interface {
	io.Writer
}

// Formatter decodes and encodes a Printable in a file format. Formats
// that can not be written return ErrFormatReadOnly from Encode.
type Formatter interface {
	Parse(args []string) (err error)
	Parsed() bool
	Args() (args []string)
	NArg() int
	PrintDefaults()

	Decode(reader Reader, size int64) (printable Printable, err error)
	Encode(writer Writer, printable Printable) (err error)
}

// Printable to file format
type NewFormatter func(suffix string) (formatter Formatter)

var formatterMap map[string]NewFormatter

type ErrFormatReadOnly string

func (e ErrFormatReadOnly) Error() string {
	return fmt.Sprintf("%s: format can not be written", string(e))
}

func RegisterFormatter(suffix string, newFormatter NewFormatter) {
	if formatterMap == nil {
		formatterMap = make(map[string]NewFormatter)
	}

	formatterMap[suffix] = newFormatter
}

func FormatterUsage() {
	if formatterMap != nil {
		list := []string{}
		for suffix := range formatterMap {
			list = append(list, suffix)
		}
		sort.Strings(list)

		for _, suffix := range list {
			newFormatter := formatterMap[suffix]
			fmt.Fprintln(os.Stderr)
			fmt.Fprintf(os.Stderr, "Options for '%s':\n", suffix)
			fmt.Fprintln(os.Stderr)
			newFormatter(suffix).PrintDefaults()
		}
	}
}

type Format struct {
	Formatter
	Suffix   string
	Filename string
}

func NewFormat(filename string, args []string) (format *Format, err error) {
	var formatter Formatter
	var suffix string
	var newFormatter NewFormatter

	// Longest matching suffix wins
	for known, newKnown := range formatterMap {
		if !strings.HasSuffix(strings.ToLower(filename), known) {
			continue
		}
		if len(known) > len(suffix) {
			suffix = known
			newFormatter = newKnown
		}
	}

	if newFormatter != nil {
		formatter = newFormatter(suffix)
	}

	if formatter == nil {
		err = fmt.Errorf("%s: File extension unknown", filename)
		return
	}

	err = formatter.Parse(args)
	if err != nil {
		return
	}

	format = &Format{
		Formatter: formatter,
		Suffix:    suffix,
		Filename:  filename,
	}
	return
}

func (format *Format) Printable() (printable Printable, err error) {
	var reader *os.File
	var filesize int64

	reader, err = os.Open(format.Filename)
	if err != nil {
		return
	}
	defer func() { reader.Close() }()

	filesize, err = reader.Seek(0, io.SeekEnd)
	if err != nil {
		return
	}

	_, err = reader.Seek(0, io.SeekStart)
	if err != nil {
		return
	}

	decoded, err := format.Decode(reader, filesize)
	if err != nil {
		err = fmt.Errorf("%s: %w", format.Filename, err)
		return
	}

	printable = decoded
	return
}

// SetPrintable writes a printable to the file format
func (format *Format) SetPrintable(printable Printable) (err error) {
	writer, err := os.Create(format.Filename)
	if err != nil {
		return
	}

	err = format.Encode(writer, printable)
	cerr := writer.Close()
	if err != nil {
		os.Remove(format.Filename)
		return
	}

	err = cerr
	return
}
