// Package replay runs line-oriented operation traces against an LRU cache.
//
// A trace looks like
//
//	# capacity 2
//	cap 2
//	put 1 100
//	get 1
//	contains 2
//	size
//	remove 1
//
// Every get, contains, size and remove line writes one result line.
package replay

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gitlab.com/slon/lrucache/lrucache"
)

// MissOutput is printed by get for an absent key.
const MissOutput = "miss"

// SyntaxError reports a malformed trace line.
type SyntaxError struct {
	Line int
	Text string
	Msg  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("line %d: %s: %q", e.Line, e.Msg, e.Text)
}

// arity is the number of arguments each command takes.
var arity = map[string]int{
	"cap":      1,
	"put":      2,
	"get":      1,
	"contains": 1,
	"remove":   1,
	"size":     0,
}

// Run executes the trace from r and writes results to w.
// capacity is used unless the trace starts with a cap directive.
func Run(ctx context.Context, r io.Reader, w io.Writer, capacity int) (err error) {
	var (
		cache *lrucache.LRUCache[string, string]
		out   = bufio.NewWriter(w)
		sc    = bufio.NewScanner(r)
		line  int
	)

	// Результаты до ошибочной строки тоже должны попасть в w.
	defer func() {
		if flushErr := out.Flush(); flushErr != nil && err == nil {
			err = fmt.Errorf("write result: %w", flushErr)
		}
	}()

	for sc.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return err
		}

		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.Fields(text)
		cmd, args := fields[0], fields[1:]

		n, ok := arity[cmd]
		if !ok {
			return &SyntaxError{Line: line, Text: text, Msg: "unknown command"}
		}
		if len(args) != n {
			return &SyntaxError{Line: line, Text: text, Msg: fmt.Sprintf("%s takes %d argument(s)", cmd, n)}
		}

		if cmd == "cap" {
			if cache != nil {
				return &SyntaxError{Line: line, Text: text, Msg: "cap must come before any operation"}
			}
			c, err := strconv.Atoi(args[0])
			if err != nil {
				return &SyntaxError{Line: line, Text: text, Msg: "capacity is not an integer"}
			}
			capacity = c
		}

		// Кэш создаём лениво, чтобы директива cap успела сработать.
		if cache == nil {
			c, err := lrucache.New[string, string](capacity)
			if err != nil {
				return fmt.Errorf("line %d: %w", line, err)
			}
			cache = c
		}

		var result string
		switch cmd {
		case "cap":
			continue
		case "put":
			cache.Put(args[0], args[1])
			continue
		case "get":
			v, ok := cache.Get(args[0])
			if !ok {
				v = MissOutput
			}
			result = v
		case "contains":
			result = strconv.FormatBool(cache.Contains(args[0]))
		case "remove":
			result = strconv.FormatBool(cache.Remove(args[0]))
		case "size":
			result = strconv.Itoa(cache.Len())
		}

		if _, err := fmt.Fprintln(out, result); err != nil {
			return fmt.Errorf("write result: %w", err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read trace: %w", err)
	}

	// Трасса без операций всё равно проверяет ёмкость.
	if cache == nil {
		if _, err := lrucache.New[string, string](capacity); err != nil {
			return err
		}
	}
	return nil
}
