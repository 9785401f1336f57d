package dumper

import (
	"fmt"
	"strings"

	intcode "github.com/NickyMeuleman/scrapyard-sub001"
)

type dumper struct {
	m    *intcode.Mach
	f    func(string, ...interface{})
	last int
}

// Dump dumps the machine's non-zero memory pages to a log formating
// function, marking the instruction pointer with '>' and the relative base
// with '^'.
func Dump(m *intcode.Mach, f func(string, ...interface{})) error {
	d := dumper{
		m: m,
		f: f,
	}
	return m.EachPage(d.page)
}

func (d *dumper) page(addr int, p *[intcode.PageSize]int64) error {
	if d.last < addr {
		d.f("........  ...")
	}
	d.line(addr, p[:])
	d.last = addr + intcode.PageSize
	return nil
}

func (d dumper) line(addr int, l []int64) {
	var sb strings.Builder
	ip, rb := d.m.IP(), d.m.RelBase()
	for i, v := range l {
		mark := ' '
		switch {
		case addr+i == ip:
			mark = '>'
		case int64(addr+i) == rb:
			mark = '^'
		}
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteRune(mark)
		fmt.Fprintf(&sb, "%d", v)
	}
	d.f("%08d %s", addr, sb.String())
}
