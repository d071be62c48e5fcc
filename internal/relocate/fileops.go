package relocate

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// copyFile streams src to dst with default permissions, leaving src intact.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// copyFileVerified streams src to dst while hashing both sides of the copy,
// so a torn or short write never lands in the library as a placed item. The
// partial destination is removed whenever the byte count or digest disagrees.
func copyFileVerified(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	readDigest := sha256.New()
	wroteDigest := sha256.New()
	written, err := io.Copy(io.MultiWriter(out, wroteDigest), io.TeeReader(in, readDigest))
	if err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	if written != info.Size() {
		_ = os.Remove(dst)
		return fmt.Errorf("verify copy: wrote %d of %d bytes for %s", written, info.Size(), filepath.Base(src))
	}
	if !bytes.Equal(readDigest.Sum(nil), wroteDigest.Sum(nil)) {
		_ = os.Remove(dst)
		return fmt.Errorf("verify copy: digest mismatch for %s", filepath.Base(src))
	}
	return nil
}

// nextAvailablePath allocates name-1.ext, name-2.ext, ... beside an occupied
// destination.
func nextAvailablePath(dest string) (string, error) {
	const maxAttempts = 10000
	ext := filepath.Ext(dest)
	stem := strings.TrimSuffix(dest, ext)
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		candidate := fmt.Sprintf("%s-%d%s", stem, attempt, ext)
		if _, err := os.Stat(candidate); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return candidate, nil
			}
			return "", err
		}
	}
	return "", fmt.Errorf("exhausted rename slots near %s", dest)
}
