package auth

import (
	"strings"

	"github.com/valyala/fastjson"
)

// maxSearchDepth bounds the recursive search. Top-level properties are at
// depth 1.
const maxSearchDepth = 4

// tokenDecoder extracts a token candidate from a parsed response body.
// It returns "" when it finds nothing.
type tokenDecoder func(v *fastjson.Value) string

// tokenDecoders are tried in order; the first nonempty result wins.
var tokenDecoders = []tokenDecoder{
	field("token"),
	field("jwt"),
	field("access_token"),
	bareToken,
	searchToken,
}

// findToken runs the decode chain over body.
func findToken(v *fastjson.Value) string {
	for _, dec := range tokenDecoders {
		if t := dec(v); t != "" {
			return t
		}
	}
	return ""
}

func field(name string) tokenDecoder {
	return func(v *fastjson.Value) string {
		if v.Type() != fastjson.TypeObject {
			return ""
		}
		return stringOf(v.Get(name))
	}
}

func bareToken(v *fastjson.Value) string {
	s := stringOf(v)
	if threeSegments(s) {
		return s
	}
	return ""
}

func searchToken(v *fastjson.Value) string {
	return search(v, 1)
}

// search walks objects and arrays in document order. Within a container a
// string property whose key mentions a token wins over one whose value
// merely looks like a token; nested containers are entered in place.
func search(v *fastjson.Value, depth int) string {
	if depth > maxSearchDepth {
		return ""
	}

	var found string
	visit := func(key string, child *fastjson.Value) {
		if found != "" {
			return
		}
		switch child.Type() {
		case fastjson.TypeString:
			s := stringOf(child)
			if s == "" {
				return
			}
			if tokenKey(key) || threeSegments(s) {
				found = s
			}
		case fastjson.TypeObject, fastjson.TypeArray:
			found = search(child, depth+1)
		}
	}

	switch v.Type() {
	case fastjson.TypeObject:
		o, _ := v.Object()
		o.Visit(func(key []byte, child *fastjson.Value) {
			visit(string(key), child)
		})
	case fastjson.TypeArray:
		items, _ := v.Array()
		for _, child := range items {
			// index keys never mention a token
			visit("", child)
		}
	}
	return found
}

func tokenKey(key string) bool {
	return strings.Contains(key, "token") ||
		strings.Contains(key, "jwt") ||
		strings.Contains(key, "auth")
}

func threeSegments(s string) bool {
	return s != "" && strings.Count(s, ".") == 2
}

func stringOf(v *fastjson.Value) string {
	if v == nil || v.Type() != fastjson.TypeString {
		return ""
	}
	b, err := v.StringBytes()
	if err != nil {
		return ""
	}
	return string(b)
}
