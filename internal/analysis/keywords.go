package analysis

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// Keyword is a term and its frequency in a corpus.
type Keyword struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// minWordLen drops single-character tokens.
const minWordLen = 2

// stopWords are excluded from keyword counts.
var stopWords = toSet(`a about above after again against all also am an and any are aren't as at
be because been before being below between both but by can can't cannot com could couldn't
did didn't do does doesn't doing don't down during each else ever few for from further get
had hadn't has hasn't have haven't having he he'd he'll he's hence her here here's hers herself
him himself his how how's however http i i'd i'll i'm i've if in into is isn't it it's its
itself just k let's like me more most mustn't my myself no nor not of off on once only or other
otherwise ought our ours ourselves out over own r same shall shan't she she'd she'll she's should
shouldn't since so some such than that that's the their theirs them themselves then there
there's therefore these they they'd they'll they're they've this those through to too under
until up very was wasn't we we'd we'll we're we've were weren't what what's when when's where
where's which while who who's whom why why's with won't would wouldn't www you you'd you'll
you're you've your yours yourself yourselves`)

func toSet(words string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(words) {
		set[w] = true
	}
	return set
}

// Tokenize splits text into case-folded terms. A term is a run of letters,
// digits, and inner apostrophes; a trailing possessive "'s" is removed.
func Tokenize(text string) []string {
	folder := cases.Fold()
	fields := strings.FieldsFunc(folder.String(text), func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\'' || r == '’')
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.ReplaceAll(f, "’", "'")
		f = strings.Trim(f, "'")
		f = strings.TrimSuffix(f, "'s")
		if len([]rune(f)) < minWordLen {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// TopKeywords counts the terms of text that are not stop words and returns
// the n most frequent, ties broken alphabetically. n <= 0 returns all.
func TopKeywords(text string, n int) []Keyword {
	counts := make(map[string]int)
	for _, tok := range Tokenize(text) {
		if stopWords[tok] {
			continue
		}
		counts[tok]++
	}

	out := make([]Keyword, 0, len(counts))
	for w, c := range counts {
		out = append(out, Keyword{Word: w, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Word < out[j].Word
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
