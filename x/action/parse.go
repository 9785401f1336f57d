package action

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	intcode "github.com/NickyMeuleman/scrapyard-sub001"
)

var errNotAPredicate = errors.New("not a predicate string")

var predicateParsePattern = regexp.MustCompile(stripSpace(`
	^
	(?P<action> \w+ )?
	(?:
		@ (?: 0x(?P<ipHex> [0-9a-fA-F]+ ) | (?P<ipDec> [0-9]+ ) ) |
		: (?P<op> \w+ (?: , \w+ )* )
	)?
	$
`))

// ParsePredicate parses a string like "action", "action@ip", or
// "action:op[,op[,...]" into a predicate. The action string may be any of
// "begin", "end", "before", or "after" (corresponding to Tracer methods).
// The ip string may either be a decimal number, or a "0x" prefixed hex
// number. The op strings must be operation mnemonics, like "add" or "out".
// A leading "!" negates the predicate.
func ParsePredicate(s string) (Predicate, error) {
	if s == "" {
		return Never, nil
	}
	if s[0] == '!' {
		p, err := ParsePredicate(s[1:])
		if err != nil {
			return nil, err
		}
		return Not(p), nil
	}

	parts := predicateParsePattern.FindStringSubmatch(s)
	if parts == nil {
		return nil, errNotAPredicate
	}

	ps := make([]Predicate, 0, 2)

	if parts[1] != "" { // group 1 action
		var act TraceAction
		if err := act.Set(parts[1]); err != nil {
			return nil, err
		}
		ps = append(ps, act)
	}

	if parts[2] != "" { // group 2 ipHex
		ip, err := strconv.ParseUint(parts[2], 16, 31)
		if err != nil {
			return nil, err
		}
		ps = append(ps, isIP(ip))
	} else if parts[3] != "" { // group 3 ipDec
		ip, err := strconv.ParseUint(parts[3], 10, 31)
		if err != nil {
			return nil, err
		}
		ps = append(ps, isIP(ip))
	} else if parts[4] != "" { // group 4 op
		names := strings.Split(parts[4], ",")
		codes := make(anyOpcode, len(names))
		for i, name := range names {
			code, err := intcode.ResolveOpcode(name)
			if err != nil {
				return nil, err
			}
			codes[i] = code
		}
		if len(codes) == 1 {
			ps = append(ps, isOpcode(codes[0]))
		} else {
			ps = append(ps, codes)
		}
	}

	if p := All(ps...); p != nil {
		return p, nil
	}
	return Never, nil
}

// PredicateString returns a string parse-able by ParsePredicate, or
// "!TYPE(VAL)" if the given predicate wouldn't have been possible from
// ParsePredicate.
func PredicateString(p Predicate) string {
	if p == Never {
		return ""
	}
	switch v := p.(type) {
	case allPredicate:
		if len(v) != 2 {
			break
		}
		if ta, ok := v[0].(TraceAction); ok {
			if sub := PredicateString(v[1]); sub != "" && sub[0] != '!' {
				return fmt.Sprintf("%v%s", ta, sub)
			}
		}
	case notPredicate:
		if sub := PredicateString(v.Predicate); sub != "" && sub[0] != '!' {
			return "!" + sub
		}
	case TraceAction:
		return v.String()
	case isIP:
		return fmt.Sprintf("@%d", int(v))
	case isOpcode:
		return ":" + intcode.Opcode(v).String()
	case anyOpcode:
		names := make([]string, len(v))
		for i, c := range v {
			names[i] = c.String()
		}
		return ":" + strings.Join(names, ",")
	}
	return fmt.Sprintf("!%T(%#v)", p, p)
}

func stripSpace(s string) string {
	s = strings.Replace(s, "\n", "", -1)
	s = strings.Replace(s, "\t", "", -1)
	s = strings.Replace(s, " ", "", -1)
	return s
}
