package main

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/wippyai/michelson/encoded"
	"github.com/wippyai/michelson/micheline"
	"github.com/wippyai/michelson/michelson"
)

type treeLine struct {
	depth  int
	label  string
	detail string
}

type report struct {
	unions []string
	tree   []treeLine
	packed []byte
	hash   string
}

// inspect parses src, validates it against the registry and describes the
// typed result.
func inspect(tr *michelson.Transcoder, src []byte) (*report, error) {
	node, err := micheline.UnmarshalJSON(src, micheline.WithMaxDepth(tr.MaxDepth()))
	if err != nil {
		return nil, err
	}
	typed, err := tr.FromMicheline(node)
	if err != nil {
		return nil, err
	}
	canonical, err := tr.ToMicheline(typed)
	if err != nil {
		return nil, err
	}
	packed, err := tr.Pack(typed)
	if err != nil {
		return nil, err
	}

	rep := &report{packed: packed, hash: encoded.ScriptExprHash(packed)}
	if _, err := michelson.AsData(typed); err == nil {
		rep.unions = append(rep.unions, "data")
	}
	if _, err := michelson.AsInstruction(typed); err == nil {
		rep.unions = append(rep.unions, "instruction")
	}
	if _, err := michelson.AsType(typed); err == nil {
		rep.unions = append(rep.unions, "type")
	}
	if _, err := michelson.AsSection(typed); err == nil {
		rep.unions = append(rep.unions, "section")
	}
	rep.tree = describe(nil, tr.Registry(), canonical, 0)
	return rep, nil
}

func describe(lines []treeLine, reg *michelson.Registry, n micheline.Node, depth int) []treeLine {
	switch v := n.(type) {
	case micheline.Int:
		return append(lines, treeLine{depth: depth, label: v.Value.String(), detail: "int"})
	case micheline.String:
		return append(lines, treeLine{depth: depth, label: strconv.Quote(v.Value), detail: "string"})
	case micheline.Bytes:
		return append(lines, treeLine{depth: depth, label: "0x" + hex.EncodeToString(v.Value), detail: "bytes"})
	case micheline.Sequence:
		lines = append(lines, treeLine{depth: depth, label: "{ }", detail: fmt.Sprintf("sequence of %d", len(v))})
		for _, item := range v {
			lines = describe(lines, reg, item, depth+1)
		}
		return lines
	case *micheline.PrimitiveApplication:
		label := v.Prim
		if len(v.Annots) > 0 {
			label += " " + strings.Join(v.Annots, " ")
		}
		detail := "unregistered"
		if p, ok := reg.Lookup(v.Prim); ok {
			detail = fmt.Sprintf("%s %s 0x%02x", p.GoType(), p.Family, p.Tag)
		}
		lines = append(lines, treeLine{depth: depth, label: label, detail: detail})
		for _, arg := range v.Args {
			lines = describe(lines, reg, arg, depth+1)
		}
		return lines
	}
	return lines
}

func (r *report) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "unions: %s\n", strings.Join(r.unions, ", "))
	for _, l := range r.tree {
		b.WriteString(strings.Repeat("  ", l.depth))
		b.WriteString(l.label)
		b.WriteString("  ")
		b.WriteString(l.detail)
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "packed: %s\n", hex.EncodeToString(r.packed))
	fmt.Fprintf(&b, "hash:   %s\n", r.hash)
	return b.String()
}
