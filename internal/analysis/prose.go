package analysis

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"sync"

	_ "embed"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/jdkato/prose/v2"
	"golang.org/x/text/unicode/norm"
)

// ProviderBuiltin names the analyzer shipped with the binary.
const ProviderBuiltin = "builtin"

//go:embed stopwords.txt
var stopwordList string

// ProseAnalyzer tags and tokenizes text with prose and lemmatizes it with
// golem's English dictionary. It holds no per-call state.
type ProseAnalyzer struct {
	lemmatizer Lemmatizer
	stopwords  map[string]struct{}
}

var (
	defaultOnce     sync.Once
	defaultAnalyzer *ProseAnalyzer
	defaultErr      error
)

// Default returns the shared built-in analyzer, loading the lemmatizer
// dictionary on first use.
func Default() (*ProseAnalyzer, error) {
	defaultOnce.Do(func() {
		defaultAnalyzer, defaultErr = NewProseAnalyzer()
	})
	return defaultAnalyzer, defaultErr
}

// NewProseAnalyzer loads the English lemmatizer and the embedded stop list.
func NewProseAnalyzer() (*ProseAnalyzer, error) {
	lemmatizer, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("load english lemmatizer: %w", err)
	}

	return &ProseAnalyzer{
		lemmatizer: lemmatizer,
		stopwords:  Stopwords(),
	}, nil
}

// Stopwords returns a fresh copy of the embedded English stop list.
func Stopwords() map[string]struct{} {
	words := make(map[string]struct{})
	scanner := bufio.NewScanner(strings.NewReader(stopwordList))
	for scanner.Scan() {
		if w := strings.TrimSpace(scanner.Text()); w != "" {
			words[w] = struct{}{}
		}
	}
	return words
}

func (a *ProseAnalyzer) Analyze(ctx context.Context, text string) (*Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	text = norm.NFKC.String(text)
	if strings.TrimSpace(text) == "" {
		return &Document{}, nil
	}

	parsed, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		return nil, fmt.Errorf("prose document: %w", err)
	}

	raw := parsed.Tokens()
	tokens := make([]tagged, 0, len(raw))
	for _, tok := range raw {
		tokens = append(tokens, tagged{Text: tok.Text, Tag: tok.Tag})
	}

	doc := buildDocument(tokens, a.lemmatizer, a.stopwords)
	doc.Entities = mergeEntities(parsed.Entities(), doc.Entities)

	return doc, nil
}

// mergeEntities keeps prose's entities first and adds the cue-based ones it
// did not already report as an organization or facility.
func mergeEntities(found []prose.Entity, cued []Entity) []Entity {
	merged := make([]Entity, 0, len(found)+len(cued))
	seen := make(map[string]struct{}, len(found))
	for _, ent := range found {
		merged = append(merged, Entity{Text: ent.Text, Label: ent.Label})
		if ent.Label == LabelOrganization || ent.Label == LabelFacility {
			seen[ent.Text] = struct{}{}
		}
	}
	for _, ent := range cued {
		if _, ok := seen[ent.Text]; ok {
			continue
		}
		merged = append(merged, ent)
	}
	return merged
}
