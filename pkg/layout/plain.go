package layout

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/matzehuels/umlsvg/pkg/geom"
)

// plainGraph is the parsed form of Graphviz "plain" output. Coordinates are
// still in inches with y pointing up.
type plainGraph struct {
	Width, Height float64
	Nodes         map[string]geom.Point
	Edges         []plainEdge
}

type plainEdge struct {
	Tail, Head string
	Points     []geom.Point
}

func parsePlain(data []byte) (plainGraph, error) {
	pg := plainGraph{Nodes: make(map[string]geom.Point)}

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		fields, err := splitPlain(sc.Text())
		if err != nil {
			return pg, fmt.Errorf("plain line %d: %w", line, err)
		}
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "graph":
			nums, err := floats(fields, 1, 3)
			if err != nil {
				return pg, fmt.Errorf("plain line %d: graph: %w", line, err)
			}
			pg.Width, pg.Height = nums[1], nums[2]
		case "node":
			if len(fields) < 4 {
				return pg, fmt.Errorf("plain line %d: short node record", line)
			}
			nums, err := floats(fields, 2, 2)
			if err != nil {
				return pg, fmt.Errorf("plain line %d: node: %w", line, err)
			}
			pg.Nodes[fields[1]] = geom.Pt(nums[0], nums[1])
		case "edge":
			e, err := parseEdge(fields)
			if err != nil {
				return pg, fmt.Errorf("plain line %d: edge: %w", line, err)
			}
			pg.Edges = append(pg.Edges, e)
		case "stop":
			return pg, nil
		}
	}
	if err := sc.Err(); err != nil {
		return pg, err
	}
	return pg, fmt.Errorf("plain output ended without stop")
}

func parseEdge(fields []string) (plainEdge, error) {
	if len(fields) < 4 {
		return plainEdge{}, fmt.Errorf("short record")
	}
	n, err := strconv.Atoi(fields[3])
	if err != nil || n < 0 {
		return plainEdge{}, fmt.Errorf("bad point count %q", fields[3])
	}
	nums, err := floats(fields, 4, 2*n)
	if err != nil {
		return plainEdge{}, err
	}
	e := plainEdge{Tail: fields[1], Head: fields[2], Points: make([]geom.Point, n)}
	for i := range e.Points {
		e.Points[i] = geom.Pt(nums[2*i], nums[2*i+1])
	}
	return e, nil
}

func floats(fields []string, from, count int) ([]float64, error) {
	if len(fields) < from+count {
		return nil, fmt.Errorf("want %d numbers, have %d fields", count, len(fields)-from)
	}
	out := make([]float64, count)
	for i := range out {
		v, err := strconv.ParseFloat(fields[from+i], 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// splitPlain splits a plain output line on spaces, keeping double-quoted
// strings (with backslash escapes) as single fields.
func splitPlain(s string) ([]string, error) {
	var fields []string
	var cur strings.Builder
	inQuote, escaped, have := false, false, false

	for _, r := range s {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case inQuote && r == '\\':
			escaped = true
		case r == '"':
			inQuote = !inQuote
			have = true
		case r == ' ' && !inQuote:
			if have {
				fields = append(fields, cur.String())
				cur.Reset()
				have = false
			}
		default:
			cur.WriteRune(r)
			have = true
		}
	}
	if inQuote {
		return nil, fmt.Errorf("unterminated quote")
	}
	if have {
		fields = append(fields, cur.String())
	}
	return fields, nil
}
