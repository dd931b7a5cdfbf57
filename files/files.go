package files

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
)

// Read returns the lines of the file at path without their line endings.
// A trailing newline does not start another line, an empty file has one
// empty line.
func Read(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}

	text := strings.TrimSuffix(string(content), "\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines, nil
}

func Write(path string, buffer io.Reader) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
	if err != nil {
		return errors.Wrapf(err, "open %s", path)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	if _, err = io.Copy(writer, buffer); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	if err = writer.Flush(); err != nil {
		return errors.Wrapf(err, "flush %s", path)
	}
	return nil
}
