package logtail

import (
	"bufio"
	"fmt"
	"os"
)

const maxLineBytes = 4 * 1024 * 1024

// Scan calls fn for every line of the file at path, top to bottom.
func Scan(path string, fn func(line string)) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		fn(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read log: %w", err)
	}
	return nil
}
