package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// maxInputBytes caps text read from a file or stdin
const maxInputBytes = 1 << 20

var errNoInput = errors.New("no input: pass the text as arguments, use --file, or pipe it on stdin")

// readInput resolves the text to process: arguments first, then --file,
// then stdin when it is not a terminal
func readInput(args []string, file string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	if file != "" {
		if err := validateFilePath(file); err != nil {
			return "", fmt.Errorf("invalid file path: %w", err)
		}
		cleanPath := filepath.Clean(file)
		// #nosec G304 - path is validated above
		f, err := os.Open(cleanPath)
		if err != nil {
			return "", fmt.Errorf("failed to open file %s: %w", file, err)
		}
		defer f.Close()
		if isVerbose() {
			fmt.Fprintf(os.Stderr, "Reading file: %s\n", cleanPath)
		}
		return readLimited(f)
	}

	if f, ok := stdin.(*os.File); ok && isTerminal(f) {
		return "", errNoInput
	}
	if isVerbose() {
		fmt.Fprintf(os.Stderr, "Reading from stdin...\n")
	}
	return readLimited(stdin)
}

func readLimited(r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxInputBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	if len(data) > maxInputBytes {
		return "", fmt.Errorf("input exceeds %d bytes", maxInputBytes)
	}
	return string(data), nil
}

func validateFilePath(path string) error {
	if path == "" {
		return fmt.Errorf("empty file path")
	}

	cleanPath := filepath.Clean(path)

	info, err := os.Stat(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file does not exist: %s", cleanPath)
		}
		return fmt.Errorf("cannot access file: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", cleanPath)
	}

	return nil
}

// writeOutput sends output to outputFile, or to w when none is given
func writeOutput(w io.Writer, output []byte, outputFile string) error {
	if outputFile == "" {
		_, err := w.Write(output)
		return err
	}

	if err := writeOutputBytesToFile(output, outputFile); err != nil {
		return fmt.Errorf("failed to write output to file: %w", err)
	}
	if isVerbose() {
		fmt.Fprintf(os.Stderr, "Output saved to: %s\n", outputFile)
	}
	return nil
}

// writeOutputBytesToFile writes output to a file with proper error handling
func writeOutputBytesToFile(output []byte, filePath string) error {
	cleanPath := filepath.Clean(filePath)

	file, err := os.Create(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && isVerbose() {
			fmt.Fprintf(os.Stderr, "Warning: failed to close output file: %v\n", closeErr)
		}
	}()

	if _, err := file.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	return file.Sync()
}
