package client

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"strings"
)

type namedHash struct {
	name     string
	expected string
	h        hash.Hash
}

// checksumWriter hashes everything written to it with each algorithm the
// asset publishes a checksum for.
type checksumWriter struct {
	hashes []namedHash
}

func newChecksumWriter(sum Checksum) *checksumWriter {
	cw := &checksumWriter{}
	cw.add("md5", sum.MD5, md5.New)
	cw.add("sha1", sum.SHA1, sha1.New)
	cw.add("sha256", sum.SHA256, sha256.New)
	cw.add("sha512", sum.SHA512, sha512.New)
	return cw
}

func (cw *checksumWriter) add(name, expected string, newHash func() hash.Hash) {
	if expected == "" {
		return
	}
	cw.hashes = append(cw.hashes, namedHash{
		name:     name,
		expected: strings.ToLower(expected),
		h:        newHash(),
	})
}

// Write implements io.Writer
func (cw *checksumWriter) Write(buf []byte) (int, error) {
	for _, nh := range cw.hashes {
		nh.h.Write(buf)
	}
	return len(buf), nil
}

// writer returns w teed through the hashes, or w itself when there is nothing to check
func (cw *checksumWriter) writer(w io.Writer) io.Writer {
	if len(cw.hashes) == 0 {
		return w
	}
	return io.MultiWriter(w, cw)
}

// verify compares every computed digest against the published one
func (cw *checksumWriter) verify() error {
	for _, nh := range cw.hashes {
		actual := hex.EncodeToString(nh.h.Sum(nil))
		if actual != nh.expected {
			regErr := NewRegistryError(ErrChecksumMismatch,
				fmt.Sprintf("%s expected %s, got %s", nh.name, nh.expected, actual))
			regErr.Details["algorithm"] = nh.name
			return regErr
		}
	}
	return nil
}
