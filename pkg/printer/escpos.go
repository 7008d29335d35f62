package printer

import (
	"bytes"
	"strconv"
	"strings"
)

// ESC/POS command bytes
const (
	ESC = 0x1B
	GS  = 0x1D
	LF  = 0x0A
)

const (
	alignLeft   = 0
	alignCenter = 1

	fontNormal = 0x00
	fontDouble = 0x11
)

// ReceiptDoc lays out a till receipt as an ESC/POS byte stream: a centered
// banner, key/value fields, sale lines with an amount column, a bold total
// and a footer followed by a partial cut.
type ReceiptDoc struct {
	buf   bytes.Buffer
	width int
}

// NewReceiptDoc starts a receipt for paper that fits charWidth characters per
// line (32 for 58mm, 48 for 80mm).
func NewReceiptDoc(charWidth int) *ReceiptDoc {
	if charWidth <= 0 {
		charWidth = 32
	}
	d := &ReceiptDoc{width: charWidth}
	d.buf.Write([]byte{ESC, '@'})
	return d
}

// Banner prints the store name large and bold, then any non-empty detail lines,
// all centered, and returns to left alignment under a rule.
func (d *ReceiptDoc) Banner(title string, details ...string) *ReceiptDoc {
	d.align(alignCenter).bold(true).size(fontDouble).line(title).size(fontNormal).bold(false)
	for _, detail := range details {
		if detail != "" {
			d.line(detail)
		}
	}
	return d.align(alignLeft).Rule()
}

// Rule prints a full-width dashed line.
func (d *ReceiptDoc) Rule() *ReceiptDoc {
	return d.line(strings.Repeat("-", d.width))
}

// Field prints key left and value right. Empty values are skipped.
func (d *ReceiptDoc) Field(key, value string) *ReceiptDoc {
	if value == "" {
		return d
	}
	return d.line(d.justify(key, value))
}

// SaleLine prints "2x Name        39.98". Names that do not fit are cut so the
// amount stays in its column. Quantities above one get an "@ unit each" line.
func (d *ReceiptDoc) SaleLine(qty int, name, unitPrice, amount string) *ReceiptDoc {
	prefix := strconv.Itoa(qty) + "x "
	room := d.width - len(prefix) - len(amount) - 1
	if room < 1 {
		room = 1
	}
	if len(name) > room {
		name = name[:room]
	}
	d.line(d.justify(prefix+name, amount))
	if qty > 1 {
		d.line("  @ " + unitPrice + " each")
	}
	return d
}

// Total prints the bold grand total row.
func (d *ReceiptDoc) Total(label, amount string) *ReceiptDoc {
	return d.bold(true).line(d.justify(label, amount)).bold(false)
}

// Note prints a free-text remark between rules. Empty notes are skipped.
func (d *ReceiptDoc) Note(text string) *ReceiptDoc {
	if text == "" {
		return d
	}
	return d.Rule().line("Note: " + text)
}

// Finish prints the centered footer, feeds the paper past the tear bar and
// sends a partial cut. It returns the finished byte stream.
func (d *ReceiptDoc) Finish(footer string) []byte {
	d.Rule().align(alignCenter).feed(1).line(footer).feed(1).align(alignLeft)
	d.feed(3)
	d.buf.Write([]byte{GS, 'V', 0x01})
	return d.buf.Bytes()
}

func (d *ReceiptDoc) line(s string) *ReceiptDoc {
	d.buf.WriteString(s)
	d.buf.WriteByte(LF)
	return d
}

func (d *ReceiptDoc) feed(n int) *ReceiptDoc {
	for i := 0; i < n; i++ {
		d.buf.WriteByte(LF)
	}
	return d
}

func (d *ReceiptDoc) align(a byte) *ReceiptDoc {
	d.buf.Write([]byte{ESC, 'a', a})
	return d
}

func (d *ReceiptDoc) bold(on bool) *ReceiptDoc {
	b := byte(0)
	if on {
		b = 1
	}
	d.buf.Write([]byte{ESC, 'E', b})
	return d
}

func (d *ReceiptDoc) size(s byte) *ReceiptDoc {
	d.buf.Write([]byte{GS, '!', s})
	return d
}

func (d *ReceiptDoc) justify(left, right string) string {
	spaces := d.width - len(left) - len(right)
	if spaces < 1 {
		spaces = 1
	}
	return left + strings.Repeat(" ", spaces) + right
}
