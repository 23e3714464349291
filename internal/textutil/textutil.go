// Package textutil holds the small string helpers behind jsonfmt and md5.
package textutil

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// JSONIndent is the indentation used by PrettyJSON.
const JSONIndent = "    "

// PrettyJSON re-indents a JSON document with four spaces per level.
func PrettyJSON(data []byte) (string, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return "", fmt.Errorf("no JSON input — pass --json, --file or pipe the document on stdin")
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", JSONIndent); err != nil {
		return "", fmt.Errorf("invalid JSON: %w", err)
	}
	return buf.String(), nil
}

// MD5Options controls how a digest is rendered.
type MD5Options struct {
	Upper bool
	// Short renders only bytes 4..12 of the digest (16 hex characters).
	Short bool
}

// MD5Hex returns the hex MD5 digest of s.
func MD5Hex(s string, opts MD5Options) string {
	sum := md5.Sum([]byte(s))
	digest := sum[:]
	if opts.Short {
		digest = digest[4:12]
	}
	out := hex.EncodeToString(digest)
	if opts.Upper {
		out = strings.ToUpper(out)
	}
	return out
}
