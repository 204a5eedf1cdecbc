package format

import (
	"fmt"
	"strings"

	"github.com/kbukum/catlog/record"
)

const grepTimeFormat = "2006-01-02T15:04:05.000Z07:00"

var lineEscaper = strings.NewReplacer("\r", `\r`, "\n", `\n`)

// Grep renders rec as a single line for line-oriented tools:
//
//	<ISO8601> [<SEVERITY>] <tag> <Name>: <message> | data=<json> | error=<message>
//
// The severity tag is padded to a fixed width and embedded newlines are
// escaped, so every record is exactly one line.
func Grep(rec record.Record) string {
	meta := rec.Meta()
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%-5s] %s %s: %s",
		rec.Time().UTC().Format(grepTimeFormat),
		rec.Severity(),
		meta.Tag,
		meta.Name,
		lineEscaper.Replace(rec.Message()),
	)
	if rec.HasData() {
		sb.WriteString(" | data=")
		sb.WriteString(lineEscaper.Replace(encodeData(rec.Data(), false)))
	}
	if e := rec.Error(); e != nil {
		sb.WriteString(" | error=")
		sb.WriteString(lineEscaper.Replace(e.Message))
	}
	return sb.String()
}
