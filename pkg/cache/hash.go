package cache

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// InstanceHash returns the hex SHA-256 of an instance file's content. CRLF
// line endings are folded to LF first, so a file checked out on Windows
// shares cache entries with its Unix copy.
func InstanceHash(data []byte) string {
	return digest(bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n")))
}

// searchKey is the canonical key of a search on the instance with content
// hash instanceHash. Vertex ids are quoted so no id can forge a separator.
func searchKey(instanceHash string, opts SearchKeyOpts) string {
	var b strings.Builder
	b.WriteString(instanceHash)
	for _, part := range []string{
		opts.Algorithm,
		formatK(opts.K),
		strconv.Quote(opts.Source),
		strconv.Quote(opts.Target),
		strconv.Itoa(opts.Budget),
	} {
		b.WriteByte(0)
		b.WriteString(part)
	}
	return "search:" + digest([]byte(b.String()))
}

func digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
