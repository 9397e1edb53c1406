package keywords

import (
	"strings"

	"storekeys/internal/domain"
)

// DefaultCharLimit is the packed-string budget when none is configured,
// matching the platform's keyword field length.
const DefaultCharLimit = 100

// maxDescriptionPhrases bounds how many phrase candidates the description
// scan may contribute; descriptions are long and low-signal.
const maxDescriptionPhrases = 12

// SourceField identifies which metadata field a candidate came from.
type SourceField int

const (
	FieldTitle SourceField = iota
	FieldSubtitle
	FieldGenre
	FieldDescription
)

// Candidate is one scored keyword candidate. Candidates live only for the
// duration of a Synthesize call.
type Candidate struct {
	Token  string
	Score  float64
	Source SourceField

	// ordinal is the global extraction order. It is the documented
	// tie-break for equal scores and can never collide, since every
	// candidate is assigned its own ordinal in scan order.
	ordinal int
}

// Options configure synthesis.
type Options struct {
	// CharLimit caps the packed string's total length including commas.
	// DefaultCharLimit applies when zero or negative.
	CharLimit int
}

// Result is a packed keyword string, or the explicit empty marker when no
// candidate survived extraction. Empty is a valid terminal state, not an
// error.
type Result struct {
	Keywords string
	Empty    bool
}

// Synthesize builds a packed keyword string from a metadata record that
// lacks an authoritative keyword field. It is deterministic and pure with
// respect to rec and opts.
func Synthesize(rec domain.MetadataRecord, opts Options) Result {
	limit := opts.CharLimit
	if limit <= 0 {
		limit = DefaultCharLimit
	}
	return Pack(Extract(rec), limit)
}

// Extract produces normalized, deduplicated, scored candidates from rec in
// a stable scan order: title, subtitle, genres, then description phrases.
func Extract(rec domain.MetadataRecord) []Candidate {
	x := &extractor{index: make(map[string]int)}
	x.scanField(rec.Title, FieldTitle)
	x.scanField(rec.Subtitle, FieldSubtitle)
	for _, g := range rec.Genres {
		x.scanField(g, FieldGenre)
	}
	x.scanDescription(rec.Description)
	return x.out
}

type extractor struct {
	index map[string]int // normalized token -> position in out
	out   []Candidate
	next  int
}

// add normalizes token and merges it into the candidate set. Duplicate
// tokens keep the highest score and the earliest ordinal.
func (x *extractor) add(token string, src SourceField, pos, words int) {
	token = strings.Join(strings.Fields(strings.ToLower(token)), " ")
	if len(token) < 2 {
		return
	}
	score := baseScore(src) + positionBonus(pos) + lengthBonus(words)
	if i, ok := x.index[token]; ok {
		if score > x.out[i].Score {
			x.out[i].Score = score
		}
		return
	}
	x.index[token] = len(x.out)
	x.out = append(x.out, Candidate{Token: token, Score: score, Source: src, ordinal: x.next})
	x.next++
}

// scanField emits every usable word plus every adjacent usable word pair.
func (x *extractor) scanField(text string, src SourceField) {
	words := splitWords(strings.ToLower(text))
	for i, w := range words {
		if unusable(w) {
			continue
		}
		x.add(w, src, i, 1)
	}
	for i := 0; i+1 < len(words); i++ {
		if unusable(words[i]) || unusable(words[i+1]) {
			continue
		}
		x.add(words[i]+" "+words[i+1], src, i, 2)
	}
}

// scanDescription slides a 2-3 word window over the description, keeping
// phrases anchored by usable words at both ends. Interior stopwords are
// fine ("ringtones and garage"); phrases that start or end on filler are
// not keywords.
func (x *extractor) scanDescription(text string) {
	words := splitWords(strings.ToLower(text))
	kept := 0
	for i := 0; i < len(words) && kept < maxDescriptionPhrases; i++ {
		if unusable(words[i]) {
			continue
		}
		for n := 2; n <= 3 && i+n <= len(words); n++ {
			if unusable(words[i+n-1]) {
				continue
			}
			x.add(strings.Join(words[i:i+n], " "), FieldDescription, i, n)
			kept++
		}
	}
}

func baseScore(src SourceField) float64 {
	switch src {
	case FieldTitle:
		return 8
	case FieldSubtitle:
		return 6
	case FieldGenre:
		return 4
	default:
		return 2
	}
}

// positionBonus favors earlier occurrences within a field.
func positionBonus(pos int) float64 {
	return 2 / (1 + float64(pos))
}

// lengthBonus favors multi-word phrases: more specific, less generic.
func lengthBonus(words int) float64 {
	return 1.5 * float64(words-1)
}
