// Package docscore scores retrieved regulatory and procedural text against
// the expected document text.
//
// Each text is analyzed into document-type mentions, domain topics and
// concepts, weighted keywords, compliance and risk terms, reference codes
// and a coarse semantic class. Seven weighted criteria built on set
// similarity combine into the overall score.
package docscore

import (
	"cmp"
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/poiesic/ragsweep/similarity"
)

// SemanticClass is the coarse category of a text.
type SemanticClass string

const (
	ClassRegulatory    SemanticClass = "regulatory"
	ClassProcedural    SemanticClass = "procedural"
	ClassTechnical     SemanticClass = "technical"
	ClassMixed         SemanticClass = "mixed"
	ClassInformational SemanticClass = "informational"
)

// Classification thresholds, checked in this order.
const (
	regulatoryThreshold = 3
	proceduralThreshold = 2
	technicalThreshold  = 2
)

// MaxKeywords bounds the keyword list of an Analysis.
const MaxKeywords = 15

// domainBoost multiplies the frequency of terms from the curated vocabularies.
const domainBoost = 2.0

// Analysis is the feature record of one text.
// All terms are lowercase and de-duplicated.
type Analysis struct {
	DocumentTypes   []string
	Topics          []string
	Concepts        []string
	Keywords        []string // Highest weighted first
	ComplianceTerms []string
	RiskTerms       []string
	References      []string
	Class           SemanticClass
}

type phrase struct {
	term string
	re   *regexp.Regexp
}

func compilePhrases(terms []string) []phrase {
	out := make([]phrase, len(terms))
	for i, term := range terms {
		words := strings.Fields(term)
		for j, w := range words {
			words[j] = regexp.QuoteMeta(w)
		}
		out[i] = phrase{
			term: term,
			re:   regexp.MustCompile(`(?i)\b` + strings.Join(words, `[\s-]+`) + `s?\b`),
		}
	}
	return out
}

var (
	documentTypePhrases = compilePhrases(documentTypes)
	topicPhrases        = compilePhrases(domainTopics)
	conceptPhrases      = compilePhrases(domainConcepts)
	compliancePhrases   = compilePhrases(complianceTerms)
	riskPhrases         = compilePhrases(riskTerms)
	regulatoryPhrases   = compilePhrases(regulatoryClassTerms)
	proceduralPhrases   = compilePhrases(proceduralClassTerms)
	technicalPhrases    = compilePhrases(technicalClassTerms)
	referenceRe         = regexp.MustCompile(referencePattern)
	domainWords         = vocabularyWords(
		documentTypes, domainTopics, domainConcepts, complianceTerms, riskTerms,
		regulatoryClassTerms, proceduralClassTerms, technicalClassTerms,
	)
)

func vocabularyWords(lists ...[]string) map[string]bool {
	words := make(map[string]bool)
	for _, list := range lists {
		for _, term := range list {
			for _, w := range strings.Fields(term) {
				if !similarity.IsStopWord(w) {
					words[w] = true
				}
			}
		}
	}
	return words
}

// Analyze extracts the features of text.
func Analyze(text string) Analysis {
	text = similarity.NormalizeText(text)
	return Analysis{
		DocumentTypes:   matchPhrases(text, documentTypePhrases),
		Topics:          matchPhrases(text, topicPhrases),
		Concepts:        matchPhrases(text, conceptPhrases),
		Keywords:        extractKeywords(text),
		ComplianceTerms: matchPhrases(text, compliancePhrases),
		RiskTerms:       matchPhrases(text, riskPhrases),
		References:      extractReferences(text),
		Class:           classify(text),
	}
}

func matchPhrases(text string, phrases []phrase) []string {
	var out []string
	for _, p := range phrases {
		if p.re.MatchString(text) {
			out = append(out, p.term)
		}
	}
	return out
}

func countHits(text string, phrases []phrase) int {
	n := 0
	for _, p := range phrases {
		n += len(p.re.FindAllStringIndex(text, -1))
	}
	return n
}

func classify(text string) SemanticClass {
	regulatory := countHits(text, regulatoryPhrases)
	procedural := countHits(text, proceduralPhrases)
	technical := countHits(text, technicalPhrases)

	switch {
	case regulatory >= regulatoryThreshold:
		return ClassRegulatory
	case procedural >= proceduralThreshold:
		return ClassProcedural
	case technical >= technicalThreshold:
		return ClassTechnical
	case regulatory+procedural+technical > 0:
		return ClassMixed
	default:
		return ClassInformational
	}
}

func extractReferences(text string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, m := range referenceRe.FindAllString(text, -1) {
		ref := strings.ToLower(strings.Join(strings.Fields(m), " "))
		if !seen[ref] {
			seen[ref] = true
			out = append(out, ref)
		}
	}
	return out
}

type weightedTerm struct {
	term   string
	weight float64
}

func extractKeywords(text string) []string {
	terms := make(map[string]*weightedTerm)
	var order []*weightedTerm
	for _, tok := range similarity.Tokenize(text) {
		if !isKeywordCandidate(tok) {
			continue
		}
		wt, ok := terms[tok]
		if !ok {
			wt = &weightedTerm{term: tok}
			terms[tok] = wt
			order = append(order, wt)
		}
		if domainWords[tok] {
			wt.weight += domainBoost
		} else {
			wt.weight++
		}
	}

	slices.SortStableFunc(order, func(a, b *weightedTerm) int {
		return cmp.Compare(b.weight, a.weight)
	})
	if len(order) > MaxKeywords {
		order = order[:MaxKeywords]
	}

	out := make([]string, len(order))
	for i, wt := range order {
		out[i] = wt.term
	}
	return out
}

func isKeywordCandidate(tok string) bool {
	if utf8.RuneCountInString(tok) < 3 || similarity.IsStopWord(tok) {
		return false
	}
	return strings.IndexFunc(tok, unicode.IsLetter) >= 0
}
