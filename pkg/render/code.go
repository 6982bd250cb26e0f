package render

import (
	"strings"
	"unicode"
)

// languages maps recognized code fence tags to their highlighting rules.
// Tags not present here render as plain monospaced text.
var languages = map[string]language{
	"go": {
		keywords: keywordSet("break case chan const continue default defer else fallthrough for func go goto if import interface map package range return select struct switch type var"),
		comment:  "//",
	},
	"swift": {
		keywords: keywordSet("class deinit enum extension func import init let protocol static struct subscript typealias var break case continue default do else fallthrough if in for return switch where while as is nil self super true false guard defer"),
		comment:  "//",
	},
	"objc": {
		keywords: keywordSet("interface implementation protocol property synthesize dynamic end class selector encode synchronized autoreleasepool try catch finally throw if else for while do switch case default return break continue self super nil YES NO id void"),
		comment:  "//",
	},
	"javascript": {
		keywords: keywordSet("break case catch class const continue debugger default delete do else export extends finally for function if import in instanceof let new return super switch this throw try typeof var void while with yield"),
		comment:  "//",
	},
	"python": {
		keywords: keywordSet("and as assert async await break class continue def del elif else except finally for from global if import in is lambda nonlocal not or pass raise return try while with yield True False None"),
		comment:  "#",
	},
	"ruby": {
		keywords: keywordSet("alias and begin break case class def defined do else elsif end ensure false for if in module next nil not or redo rescue retry return self super then true undef unless until when while yield"),
		comment:  "#",
	},
	"java": {
		keywords: keywordSet("abstract assert boolean break byte case catch char class const continue default do double else enum extends final finally float for if implements import instanceof int interface long native new package private protected public return short static super switch synchronized this throw throws transient try void volatile while"),
		comment:  "//",
	},
}

// tag aliases for common fence spellings.
var languageAliases = map[string]string{
	"golang":        "go",
	"js":            "javascript",
	"objective-c":   "objc",
	"objectivec":    "objc",
	"py":            "python",
}

type language struct {
	keywords map[string]bool
	comment  string // line comment prefix
}

func keywordSet(words string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(words) {
		set[w] = true
	}
	return set
}

// Highlight applies keyword, string, and comment styling to a code listing.
// Unrecognized language tags return the text unchanged, so a fence tagged
// with anything renders without error.
func Highlight(lang, text string, st styles) string {
	name := strings.ToLower(strings.TrimSpace(lang))
	if alias, ok := languageAliases[name]; ok {
		name = alias
	}
	rules, ok := languages[name]
	if !ok {
		return text
	}

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = highlightLine(line, rules, st)
	}
	return strings.Join(lines, "\n")
}

// highlightLine styles a single line. Comment detection wins over strings
// and keywords: everything from the comment marker on is dimmed.
func highlightLine(line string, rules language, st styles) string {
	if idx := strings.Index(line, rules.comment); idx >= 0 && !insideString(line, idx) {
		return highlightTokens(line[:idx], rules, st) + st.codeComment.Render(line[idx:])
	}
	return highlightTokens(line, rules, st)
}

// highlightTokens styles string literals and keywords in a comment-free run.
func highlightTokens(text string, rules language, st styles) string {
	var out strings.Builder
	i := 0
	for i < len(text) {
		c := text[i]

		// String literal: copy through the closing quote.
		if c == '"' || c == '\'' {
			end := closingQuote(text, i)
			out.WriteString(st.codeString.Render(text[i:end]))
			i = end
			continue
		}

		// Identifier: style keywords, pass everything else through.
		if isIdentStart(rune(c)) {
			end := i + 1
			for end < len(text) && isIdentPart(rune(text[end])) {
				end++
			}
			word := text[i:end]
			if rules.keywords[word] {
				out.WriteString(st.codeKeyword.Render(word))
			} else {
				out.WriteString(word)
			}
			i = end
			continue
		}

		out.WriteByte(c)
		i++
	}
	return out.String()
}

// closingQuote returns the index one past the string literal opening at i,
// honoring backslash escapes. An unterminated literal runs to end of line.
func closingQuote(text string, i int) int {
	quote := text[i]
	j := i + 1
	for j < len(text) {
		if text[j] == '\\' {
			j += 2
			continue
		}
		if text[j] == quote {
			return j + 1
		}
		j++
	}
	return len(text)
}

// insideString reports whether position idx falls inside a string literal.
func insideString(line string, idx int) bool {
	inString := false
	var quote byte
	for i := 0; i < idx && i < len(line); i++ {
		c := line[i]
		if inString {
			if c == '\\' {
				i++
			} else if c == quote {
				inString = false
			}
			continue
		}
		if c == '"' || c == '\'' {
			inString = true
			quote = c
		}
	}
	return inString
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
