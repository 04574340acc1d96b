package resources

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
)

// Checksum computes the hex SHA-256 checksum of the file at path.
func Checksum(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open for checksum: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Verify compares the file at path against an expected hex SHA-256 sum.
// Returns ErrChecksumMismatch if they don't match.
func Verify(path, wantHex string) error {
	got, err := Checksum(path)
	if err != nil {
		return err
	}
	if !strings.EqualFold(got, wantHex) {
		return fmt.Errorf("%w: %s: got %s, want %s", ErrChecksumMismatch, path, got, wantHex)
	}
	return nil
}
