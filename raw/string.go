package raw

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// String renders the map's textual form, in key order.
func (m *Map) String() string {
	var b strings.Builder
	appendRepr(&b, m)
	return b.String()
}

func appendRepr(b *strings.Builder, v any) {
	switch t := unwrap(v).(type) {
	case nil:
		b.WriteString("null")
	case *Map:
		b.WriteByte('{')
		for i, it := range t.Items() {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(strconv.Quote(it.Key))
			b.WriteString(": ")
			appendRepr(b, it.Value)
		}
		b.WriteByte('}')
	case []any:
		b.WriteByte('[')
		for i, e := range t {
			if i > 0 {
				b.WriteString(", ")
			}
			appendRepr(b, e)
		}
		b.WriteByte(']')
	case string:
		b.WriteString(strconv.Quote(t))
	case bool:
		b.WriteString(strconv.FormatBool(t))
	case json.Number:
		b.WriteString(string(t))
	default:
		if n, ok := numVal(t); ok {
			b.WriteString(formatNum(n))
			return
		}
		fmt.Fprintf(b, "%v", t)
	}
}
