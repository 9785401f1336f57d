package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

type machID int

type record struct {
	kind  recordKind
	mid   machID
	count int
	ip    int
	act   string
	rest  string
}

type recordKind int

const (
	unknownLine = recordKind(iota)
	genericLine
	beginLine
	endLine
	noteLine
)

func (ss sessions) parseAll(r io.Reader) error {
	var cur machID
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := sc.Bytes()
		mid, rest := parseMidLog(line)
		if rest == nil {
			if cur != 0 {
				ss.extend(cur, strings.TrimRight(string(line), " \r\n"))
			}
			continue
		}

		rec := parseRecord(mid, rest)
		rec = ss.session(rec.mid).add(rec)
		if rec.kind == endLine {
			cur = 0
		} else {
			cur = rec.mid
		}
	}
	return sc.Err()
}

var midLogPat = regexp.MustCompile(`\w+\.go:\d+: +m(\d+) +(.+)`)

func parseMidLog(line []byte) (mid machID, rest []byte) {
	if match := midLogPat.FindSubmatch(line); match != nil {
		n, _ := strconv.Atoi(string(match[1]))
		mid, rest = machID(n), match[2]
	}
	return
}

var recPat = regexp.MustCompile(`^# +(\d+) +(.+?) +@(\d+)(?: +(.+))?$`)

func parseRecord(mid machID, rest []byte) (rec record) {
	rec.mid = mid

	match := recPat.FindSubmatch(rest)
	if match == nil {
		rec.kind = noteLine
		rec.rest = string(rest)
		return
	}

	rec.count, _ = strconv.Atoi(string(match[1]))
	rec.act = strings.TrimRight(string(match[2]), " \r\n")
	rec.ip, _ = strconv.Atoi(string(match[3]))
	rec.rest = string(match[4])

	return
}

var (
	actPat = regexp.MustCompile(`^=== +(Begin|End)$`)
	kvPat  = regexp.MustCompile(`(\w+)=(\S+)`)
)

func (sess *session) add(rec record) record {
	switch amatch := actPat.FindStringSubmatch(rec.act); {
	case rec.kind == noteLine:
	case amatch == nil:
		rec.kind = genericLine

	case amatch[1] == "Begin":
		rec.kind = beginLine
		sess.err, sess.status = "", ""

	case amatch[1] == "End":
		rec.kind = endLine
		if strings.HasPrefix(rec.rest, "err=") {
			sess.err = strings.TrimPrefix(rec.rest, "err=")
			break
		}
		for _, match := range kvPat.FindAllStringSubmatch(rec.rest, -1) {
			switch match[1] {
			case "status":
				sess.status = match[2]
			case "out":
				sess.out, _ = strconv.Atoi(match[2])
			default:
				log.Printf("UNKNOWN End key/val: %q = %q\n", match[1], match[2])
			}
		}
	}

	sess.recs = append(sess.recs, rec)
	return rec
}

type sessions map[machID]*session

type session struct {
	mid    machID
	recs   []record
	err    string
	status string
	out    int
}

func (mid machID) String() string {
	return fmt.Sprintf("m%d", int(mid))
}

func (rec record) String() string {
	if rec.kind == noteLine {
		return fmt.Sprintf("% 5v % 13s %s", rec.mid, "", rec.rest)
	}
	return fmt.Sprintf("% 5v #% 4d @%-6d % -30s %s", rec.mid, rec.count, rec.ip, rec.act, rec.rest)
}

// state is one of the machine's end states: "halted", "input", "error", or
// "" when the log has no End line for the machine.
func (sess *session) state() string {
	if sess.err != "" {
		return "error"
	}
	return sess.status
}

func (ss sessions) session(mid machID) *session {
	sess := ss[mid]
	if sess == nil {
		sess = &session{mid: mid}
		ss[mid] = sess
	}
	return sess
}

func (ss sessions) extend(mid machID, s string) {
	sess := ss.session(mid)
	sess.recs = append(sess.recs, record{kind: noteLine, mid: mid, rest: strings.TrimSpace(s)})
}

func (sess *session) log(logf func(string, ...interface{})) {
	for _, rec := range sess.recs {
		logf("%v", rec)
	}
}

func parseSessions(r io.Reader) (sessions, error) {
	ss := make(sessions)
	return ss, ss.parseAll(r)
}

type stringsetFlag map[string]struct{}

func (ss stringsetFlag) String() string   { return fmt.Sprint(map[string]struct{}(ss)) }
func (ss stringsetFlag) Get() interface{} { return map[string]struct{}(ss) }
func (ss stringsetFlag) Set(s string) error {
	for _, part := range strings.Split(s, ",") {
		switch part {
		case "halted", "input", "error":
			ss[part] = struct{}{}
		default:
			return fmt.Errorf("invalid end state %q", part)
		}
	}
	return nil
}

func main() {
	var (
		terse bool
		only  = make(stringsetFlag)
	)

	flag.BoolVar(&terse, "terse", false, "don't print full session logs")
	flag.Var(only, "only", "only print sessions that ended in these states (halted, input, error)")
	flag.Parse()

	sessions, err := parseSessions(os.Stdin)
	if err != nil {
		log.Fatal(err)
	}

	mids := make([]machID, 0, len(sessions))
	for mid, sess := range sessions {
		if len(only) > 0 {
			if _, ok := only[sess.state()]; !ok {
				continue
			}
		}
		mids = append(mids, mid)
	}
	sort.Slice(mids, func(i, j int) bool { return mids[i] < mids[j] })
	for _, mid := range mids {
		sess := sessions[mid]
		if sess.err != "" {
			fmt.Printf("%v\terr=%v\n", mid, sess.err)
		} else {
			fmt.Printf("%v\tstatus=%v out=%d\n", mid, sess.status, sess.out)
		}
		if !terse {
			sess.log(func(format string, args ...interface{}) {
				fmt.Printf("	"+format+"\n", args...)
			})
			fmt.Println()
		}
	}
}
