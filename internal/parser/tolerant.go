package parser

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/mcncl/jsonmend/internal/errors"
	"github.com/mcncl/jsonmend/internal/models"
)

const whitespace = " \t\r\n"

// stopChars ends an unquoted string token.
const stopChars = " \r\n\t,]}"

// keyStopChars additionally ends a bare object key at the key/value colon.
const keyStopChars = stopChars + ":"

var numberPattern = regexp.MustCompile(`^-?[0-9]+(\.[0-9]+)?([eE][+-]?[0-9]+)?`)

func skipSpace(s string) string {
	return strings.TrimLeft(s, whitespace)
}

// parseAny dispatches on the next significant character and returns the
// recovered value with the unconsumed remainder. cause is the strict-parse
// failure, surfaced only when a keyword position matches nothing at all.
func (p *Parser) parseAny(s string, cause error) (models.Value, string, error) {
	s = skipSpace(s)
	if s == "" {
		return nil, "", errors.NewParsingError("unexpected end of input", errors.ErrUnexpectedEnd)
	}

	switch c := s[0]; {
	case c == '[':
		return p.parseArray(s, cause)
	case c == '{':
		return p.parseObject(s, cause)
	case c == '"' || c == '\'':
		v, rest := parseQuoted(s, c)
		return v, rest, nil
	case c == 't':
		return parseKeyword(s, "true", true, cause)
	case c == 'f':
		return parseKeyword(s, "false", false, cause)
	case c == 'n':
		return parseKeyword(s, "null", nil, cause)
	case c == '-' || c == '.' || (c >= '0' && c <= '9'):
		v, rest := parseNumber(s)
		return v, rest, nil
	default:
		v, rest := parseUnquoted(s)
		return v, rest, nil
	}
}

// parseArray consumes '[' and collects elements until ']'. A missing
// closing bracket returns whatever was collected with an empty remainder:
// the truncated tail is the recovery, not leftover text.
func (p *Parser) parseArray(s string, cause error) (models.Value, string, error) {
	s = s[1:]
	arr := models.Array{}
	for {
		s = skipSpace(s)
		if s == "" {
			return arr, "", nil
		}
		if s[0] == ']' {
			return arr, s[1:], nil
		}

		v, rest, err := p.parseAny(s, cause)
		if err != nil {
			return nil, "", err
		}
		if len(rest) >= len(s) {
			// The element parser consumed nothing; stop rather than spin.
			return arr, rest, nil
		}
		arr = append(arr, v)

		s = skipSpace(rest)
		if s != "" && s[0] == ',' {
			s = s[1:]
		}
	}
}

// parseObject consumes '{' and collects key/value pairs until '}'. Keys may
// be double-quoted, single-quoted, or bare. A key cut off before its colon
// maps to null; a missing closing brace returns the pairs collected so far
// with an empty remainder.
func (p *Parser) parseObject(s string, cause error) (models.Value, string, error) {
	s = s[1:]
	obj := models.NewObject()
	for {
		s = skipSpace(s)
		if s == "" {
			return obj, "", nil
		}
		if s[0] == '}' {
			return obj, s[1:], nil
		}

		key, rest := parseKey(s)
		if len(rest) >= len(s) {
			return obj, rest, nil
		}

		s = skipSpace(rest)
		if s == "" {
			obj.Set(key, nil)
			return obj, "", nil
		}
		if s[0] != ':' {
			// Key-only tail; whatever follows is not ours to consume.
			obj.Set(key, nil)
			return obj, s, nil
		}
		s = skipSpace(s[1:])
		if s == "" {
			obj.Set(key, nil)
			return obj, "", nil
		}

		v, rest2, err := p.parseAny(s, cause)
		if err != nil {
			return nil, "", err
		}
		obj.Set(key, v)

		s = skipSpace(rest2)
		if s != "" && s[0] == ',' {
			s = s[1:]
		}
	}
}

// parseKey scans one casual object key.
func parseKey(s string) (string, string) {
	if s[0] == '"' || s[0] == '\'' {
		return parseQuoted(s, s[0])
	}
	i := strings.IndexAny(s, keyStopChars)
	if i < 0 {
		return strings.TrimSpace(s), ""
	}
	return strings.TrimSpace(s[:i]), s[i:]
}

// parseQuoted scans a quoted string starting at the opening quote. A
// backslash escapes the following character. A string with no closing
// quote is treated as implicitly closed at end of input.
func parseQuoted(s string, quote byte) (string, string) {
	i := 1
	for i < len(s) {
		if s[i] == '\\' {
			i += 2
			continue
		}
		if s[i] == quote {
			return decodeStringToken(s[1:i]), s[i+1:]
		}
		i++
	}
	if i > len(s) {
		i = len(s)
	}
	return decodeStringToken(s[1:i]), ""
}

var controlEscaper = strings.NewReplacer("\n", `\n`, "\t", `\t`, "\r", `\r`)

// decodeStringToken decodes the inner text of a quoted token per JSON
// string-escape rules. Raw control characters are escaped first so a
// pasted multi-line token still decodes. Tokens that fail to decode are
// returned verbatim.
func decodeStringToken(inner string) string {
	escaped := controlEscaper.Replace(inner)
	var out string
	if err := json.Unmarshal([]byte(`"`+escaped+`"`), &out); err != nil {
		return inner
	}
	return out
}

// parseUnquoted scans a bare token up to the next delimiter and returns it
// verbatim, as the fallback for unrecognized leading characters.
func parseUnquoted(s string) (string, string) {
	i := strings.IndexAny(s, stopChars)
	if i < 0 {
		return strings.TrimSpace(s), ""
	}
	return strings.TrimSpace(s[:i]), s[i:]
}

// parseNumber matches the longest numeric prefix. A fractional part or
// exponent makes it a float64, otherwise an int64. When the matched text
// fails conversion the raw text is kept as a string; when nothing matches
// the result is an empty string and the input is left untouched.
func parseNumber(s string) (models.Value, string) {
	m := numberPattern.FindString(s)
	if m == "" {
		return "", s
	}
	rest := s[len(m):]
	if strings.ContainsAny(m, ".eE") {
		if f, err := strconv.ParseFloat(m, 64); err == nil {
			return f, rest
		}
	} else {
		if n, err := strconv.ParseInt(m, 10, 64); err == nil {
			return n, rest
		}
	}
	return m, rest
}

// parseKeyword accepts the longest leading prefix of keyword, down to a
// single character, so a keyword cut mid-stream still yields its value.
// Text matching no prefix at all is the one unrecoverable token: the
// original strict-parse failure comes back as the error.
func parseKeyword(s, keyword string, value models.Value, cause error) (models.Value, string, error) {
	for n := len(keyword); n > 0; n-- {
		if strings.HasPrefix(s, keyword[:n]) {
			return value, s[n:], nil
		}
	}
	return nil, "", errors.NewParsingError("malformed input", cause)
}
