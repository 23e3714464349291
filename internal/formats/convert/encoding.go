package convert

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/klytics/devkit/internal/formats/xlsx"
)

// encodings maps accepted --encoding names to single-byte character maps.
// UTF-8 is handled separately and needs no transform.
var encodings = map[string]*charmap.Charmap{
	"windows-1250": charmap.Windows1250,
	"windows-1251": charmap.Windows1251,
	"windows-1252": charmap.Windows1252,
	"cp1252":       charmap.Windows1252,
	"iso-8859-1":   charmap.ISO8859_1,
	"latin1":       charmap.ISO8859_1,
	"iso-8859-15":  charmap.ISO8859_15,
	"cp437":        charmap.CodePage437,
	"cp850":        charmap.CodePage850,
	"macintosh":    charmap.Macintosh,
}

// Encodings lists the accepted encoding names.
func Encodings() []string {
	names := []string{"utf-8"}
	for name := range encodings {
		names = append(names, name)
	}
	sort.Strings(names[1:])
	return names
}

// encoder returns the character map for name, or nil for UTF-8.
func encoder(name string) (*charmap.Charmap, error) {
	switch n := strings.ToLower(strings.TrimSpace(name)); n {
	case "", "utf-8", "utf8":
		return nil, nil
	default:
		cm, ok := encodings[n]
		if !ok {
			return nil, fmt.Errorf("%w: unsupported encoding %q (supported: %s)", xlsx.ErrInvalidArgument, name, strings.Join(Encodings(), ", "))
		}
		return cm, nil
	}
}

// encodeWriter wraps w so UTF-8 text is transcoded to cm. Characters the
// target cannot represent are replaced with the encoding's substitute byte.
// Close flushes any buffered tail but does not close w.
func encodeWriter(w io.Writer, cm *charmap.Charmap) io.WriteCloser {
	return transform.NewWriter(w, encoding.ReplaceUnsupported(cm.NewEncoder()))
}
