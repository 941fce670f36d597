package cache

import (
	"crypto/sha256"
	"fmt"
	"time"
)

// FileFingerprint hashes the immutable identity of a file on disk. Two
// files with the same path, size, and mtime are assumed to have identical
// content, so extraction can be skipped on the second encounter.
func FileFingerprint(path string, size int64, modTime time.Time) string {
	h := sha256.Sum256(fmt.Appendf(nil, "%s|%d|%d", path, size, modTime.UnixNano()))
	return fmt.Sprintf("%x", h)
}

// AnalysisFingerprint hashes the semantically relevant inputs of an
// analysis request. The extracted text is hashed separately first so the
// key stays bounded regardless of document size.
func AnalysisFingerprint(district, state, area, season, text string) string {
	textHash := sha256.Sum256([]byte(text))
	h := sha256.Sum256(fmt.Appendf(nil, "%s|%s|%s|%s|%x", district, state, area, season, textHash))
	return fmt.Sprintf("%x", h)
}

func ExtractionKey(fingerprint string) string {
	return fmt.Sprintf("extract:text:%s", fingerprint)
}

func AnalysisKey(fingerprint string) string {
	return fmt.Sprintf("analysis:result:%s", fingerprint)
}

func DetailedKey(fingerprint string) string {
	return fmt.Sprintf("analysis:detailed:%s", fingerprint)
}

func RateLimitKey(keyPrefix string) string {
	return fmt.Sprintf("ratelimit:%s", keyPrefix)
}
