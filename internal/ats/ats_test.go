package ats

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spigell/ats-scorer/internal/analysis"
)

// wordAnalyzer treats every alphabetic word as a noun whose lemma is its
// lower-cased form. Entities are looked up by exact text.
type wordAnalyzer struct {
	stop     Set
	entities map[string][]analysis.Entity
	calls    int
}

func newWordAnalyzer() *wordAnalyzer {
	return &wordAnalyzer{stop: NewSet("a", "an", "the", "for", "with", "and", "of", "in", "to")}
}

func (w *wordAnalyzer) Analyze(_ context.Context, text string) (*analysis.Document, error) {
	w.calls++
	doc := &analysis.Document{Entities: w.entities[text]}
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, word := range words {
		pos := analysis.Noun
		if !(analysis.Token{Text: word}).IsAlpha() {
			pos = analysis.Numeral
		}
		lower := strings.ToLower(word)
		doc.Tokens = append(doc.Tokens, analysis.Token{
			Text:   word,
			Lemma:  lower,
			POS:    pos,
			IsStop: w.stop.Has(lower),
		})
	}
	return doc, nil
}

type docAnalyzer struct {
	doc *analysis.Document
	err error
}

func (d docAnalyzer) Analyze(context.Context, string) (*analysis.Document, error) {
	return d.doc, d.err
}

const (
	scenarioResume = "Experienced Python developer with 6 years building backend services. BSc Computer Science, State University."
	scenarioJob    = "Looking for a backend engineer with 5 years experience and a bachelor's degree. Skills: python, backend, services."
)

func TestKeywords(t *testing.T) {
	t.Parallel()

	jd := "Python python BACKEND team team team services work"

	tests := []struct {
		name  string
		limit int
		want  []string
	}{
		{name: "default limit", want: []string{"backend", "python", "services"}},
		{name: "generic terms removed after the cut", limit: 2, want: []string{"python"}},
		{name: "ties keep first occurrence", limit: 3, want: []string{"backend", "python"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := New(newWordAnalyzer(), Config{KeywordLimit: tt.limit}, nil)
			got, err := s.Keywords(context.Background(), jd)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Sorted())
		})
	}
}

func TestKeywordsSkipsStopWordsAndNumbers(t *testing.T) {
	t.Parallel()

	s := New(newWordAnalyzer(), Config{}, nil)
	got, err := s.Keywords(context.Background(), "the 5 kubernetes and 10 terraform")
	require.NoError(t, err)
	assert.Equal(t, []string{"kubernetes", "terraform"}, got.Sorted())

	empty, err := s.Keywords(context.Background(), "")
	require.NoError(t, err)
	assert.Zero(t, empty.Len())
}

func TestKeywordsAreBounded(t *testing.T) {
	t.Parallel()

	var words []string
	for i := range 100 {
		word := "term" + string(rune('a'+i%26)) + string(rune('a'+i/26))
		for range i%3 + 1 {
			words = append(words, word)
		}
	}
	words = append(words, "team", "team", "team", "project", "project", "project", "skill", "skill", "skill")

	s := New(newWordAnalyzer(), Config{}, nil)
	got, err := s.Keywords(context.Background(), strings.Join(words, " "))
	require.NoError(t, err)

	assert.LessOrEqual(t, got.Len(), DefaultKeywordLimit)
	for term := range genericTerms {
		assert.False(t, got.Has(term), "generic term %q kept", term)
	}
}

func TestCandidates(t *testing.T) {
	t.Parallel()

	doc := &analysis.Document{
		Tokens: []analysis.Token{
			{Text: "built", Lemma: "build", POS: analysis.Verb},
			{Text: "services", Lemma: "service", POS: analysis.Noun},
			{Text: "go", Lemma: "go", POS: analysis.ProperNoun, IsStop: true},
			{Text: "kafka", Lemma: " Kafka ", POS: analysis.ProperNoun},
			{Text: "  ", Lemma: "  ", POS: analysis.Noun},
		},
		Chunks: []analysis.Chunk{
			{Text: "machine learning pipelines", Lemma: "machine learning pipeline"},
			{Text: "services", Lemma: "service"},
		},
	}

	s := New(docAnalyzer{doc: doc}, Config{}, nil)
	got, err := s.Candidates(context.Background(), "ignored")
	require.NoError(t, err)
	assert.Equal(t, []string{"kafka", "machine learning pipeline", "service"}, got.Sorted())

	raw, err := s.Skills(context.Background(), "ignored", nil)
	require.NoError(t, err)
	assert.Equal(t, got, raw)
}

func TestMatchSkills(t *testing.T) {
	t.Parallel()

	s := New(newWordAnalyzer(), Config{}, nil)
	keywords := NewSet("service", "python", "backend")
	candidates := NewSet("services", "python", "java", "machine learning")

	matched := s.MatchSkills(candidates, keywords)
	assert.Equal(t, []string{"python", "service"}, matched.Sorted())
	assert.True(t, matched.IsSubsetOf(keywords))

	assert.Zero(t, s.MatchSkills(candidates, NewSet()).Len())
	assert.Zero(t, s.MatchSkills(NewSet(), keywords).Len())
}

func TestMatchSkillsThresholdIsStrict(t *testing.T) {
	t.Parallel()

	fixed := func(score float64) func(string, string) float64 {
		return func(string, string) float64 { return score }
	}

	at := New(newWordAnalyzer(), Config{Similarity: fixed(85)}, nil)
	assert.Zero(t, at.MatchSkills(NewSet("x"), NewSet("y")).Len())

	above := New(newWordAnalyzer(), Config{Similarity: fixed(85.01)}, nil)
	assert.Equal(t, []string{"y"}, above.MatchSkills(NewSet("x"), NewSet("y")).Sorted())
}

func TestSkillsAreSubsetOfKeywords(t *testing.T) {
	t.Parallel()

	s := New(newWordAnalyzer(), Config{}, nil)
	resumes := []string{
		scenarioResume,
		"",
		"go golang gopher services servers servicing",
		"Team lead, project manager, Kubernetes and Terraform",
	}
	keywordSets := []Set{
		NewSet("service", "server", "kubernetes"),
		NewSet(),
		NewSet("python", "backend", "team"),
	}

	for _, resume := range resumes {
		for _, keywords := range keywordSets {
			got, err := s.Skills(context.Background(), resume, keywords)
			require.NoError(t, err)
			assert.True(t, got.IsSubsetOf(keywords), "resume %q keywords %v got %v", resume, keywords.Sorted(), got.Sorted())
		}
	}
}

func TestEducation(t *testing.T) {
	t.Parallel()

	text := "I have a PhD from MIT, a Master's from Stanford University"
	analyzer := newWordAnalyzer()
	analyzer.entities = map[string][]analysis.Entity{
		text: {
			{Text: "MIT", Label: analysis.LabelOrganization},
			{Text: "Stanford University", Label: analysis.LabelOrganization},
			{Text: "Oxford University", Label: analysis.LabelPlace},
			{Text: "Polytechnic Hall", Label: analysis.LabelFacility},
		},
	}

	s := New(analyzer, Config{}, nil)
	records, err := s.Education(context.Background(), text)
	require.NoError(t, err)

	assert.Equal(t, []EducationRecord{
		{Kind: KindInstitution, Value: "Stanford University"},
		{Kind: KindInstitution, Value: "Polytechnic Hall"},
		{Kind: KindDegree, Value: "PhD"},
		{Kind: KindDegree, Value: "Master"},
	}, records)
}

func TestEducationDegreesAreNotDeduplicated(t *testing.T) {
	t.Parallel()

	s := New(newWordAnalyzer(), Config{}, nil)
	records, err := s.Education(context.Background(), "MBA, mba. B.Sc in backend")
	require.NoError(t, err)

	var degrees []string
	for _, r := range records {
		require.Equal(t, KindDegree, r.Kind)
		degrees = append(degrees, r.Value)
	}
	// "ba" inside "backend" counts too.
	assert.Equal(t, []string{"MBA", "mba", "B.Sc", "ba"}, degrees)
}

func TestScoreScenario(t *testing.T) {
	t.Parallel()

	s := New(newWordAnalyzer(), Config{}, nil)
	res, err := s.Score(context.Background(), scenarioResume, scenarioJob)
	require.NoError(t, err)

	assert.Equal(t, []string{"backend", "python", "services", "years"}, res.Matched)
	assert.Equal(t, 12, res.CandidateCount)
	assert.Len(t, res.Keywords, 10)
	assert.Equal(t, 6, res.ResumeYears)
	assert.Equal(t, 5, res.JobYears)

	assert.InDelta(t, 4.0/12.0, res.Components.Skill, 1e-9)
	assert.InDelta(t, 0.4, res.Components.Keyword, 1e-9)
	assert.Equal(t, 1.0, res.Components.Experience)
	// "BSc" is recorded as "BS" and does not contain "bachelor".
	assert.Equal(t, 0.0, res.Components.Education)
	assert.Equal(t, 46.7, res.Score)
}

func TestScoreIgnoresKeywordComponent(t *testing.T) {
	t.Parallel()

	s := New(newWordAnalyzer(), Config{}, nil)
	res, err := s.Score(context.Background(), scenarioResume, scenarioJob)
	require.NoError(t, err)
	require.NotZero(t, res.Components.Keyword)

	withoutKeyword := res.Components
	withoutKeyword.Keyword = 0
	assert.Equal(t, Overall(withoutKeyword), res.Score)
}

func TestScoreIsDeterministic(t *testing.T) {
	t.Parallel()

	s := New(newWordAnalyzer(), Config{}, nil)
	first, err := s.Score(context.Background(), scenarioResume, scenarioJob)
	require.NoError(t, err)
	second, err := s.Score(context.Background(), scenarioResume, scenarioJob)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestScoreWithKeywordsSkipsJobAnalysis(t *testing.T) {
	t.Parallel()

	keywords, err := New(newWordAnalyzer(), Config{}, nil).Keywords(context.Background(), scenarioJob)
	require.NoError(t, err)

	full := newWordAnalyzer()
	want, err := New(full, Config{}, nil).Score(context.Background(), scenarioResume, scenarioJob)
	require.NoError(t, err)

	reused := newWordAnalyzer()
	got, err := New(reused, Config{}, nil).ScoreWithKeywords(context.Background(), scenarioResume, scenarioJob, keywords)
	require.NoError(t, err)

	assert.Equal(t, want, got)
	assert.Equal(t, full.calls-1, reused.calls)
}

func TestLemma(t *testing.T) {
	t.Parallel()

	s := New(docAnalyzer{doc: &analysis.Document{Tokens: []analysis.Token{
		{Text: "services", Lemma: "service", POS: analysis.Noun},
	}}}, Config{}, nil)
	lemma, err := s.Lemma(context.Background(), " Services ")
	require.NoError(t, err)
	assert.Equal(t, "service", lemma)

	s = New(docAnalyzer{doc: &analysis.Document{}}, Config{}, nil)
	lemma, err = s.Lemma(context.Background(), "K8S")
	require.NoError(t, err)
	assert.Equal(t, "k8s", lemma)

	boom := errors.New("model unavailable")
	_, err = New(docAnalyzer{err: boom}, Config{}, nil).Lemma(context.Background(), "go")
	assert.ErrorIs(t, err, boom)
}

func TestScoreEmptyInputs(t *testing.T) {
	t.Parallel()

	s := New(newWordAnalyzer(), Config{}, nil)
	res, err := s.Score(context.Background(), "", "")
	require.NoError(t, err)

	assert.False(t, math.IsNaN(res.Score))
	assert.False(t, math.IsInf(res.Score, 0))
	assert.Equal(t, 0.0, res.Score)
}

func TestScorePropagatesAnalyzerError(t *testing.T) {
	t.Parallel()

	boom := errors.New("model unavailable")
	s := New(docAnalyzer{err: boom}, Config{}, nil)

	_, err := s.Score(context.Background(), "resume", "job")
	assert.ErrorIs(t, err, boom)
}

func TestScoreWithBuiltinAnalyzer(t *testing.T) {
	a, err := analysis.Default()
	require.NoError(t, err)
	s := New(a, Config{}, nil)

	res, err := s.Score(context.Background(), scenarioResume, scenarioJob)
	require.NoError(t, err)

	assert.Equal(t, 1.0, res.Components.Experience)
	assert.Equal(t, 0.0, res.Components.Education)
	assert.GreaterOrEqual(t, res.Score, 30.0)
	assert.LessOrEqual(t, res.Score, 80.0)
	assert.True(t, NewSet(res.Matched...).IsSubsetOf(NewSet(res.Keywords...)))
	assert.LessOrEqual(t, len(res.Keywords), DefaultKeywordLimit)

	empty, err := s.Score(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, 0.0, empty.Score)

	again, err := s.Score(context.Background(), scenarioResume, scenarioJob)
	require.NoError(t, err)
	assert.Equal(t, res.Score, again.Score)
}

func ExampleExperienceYears() {
	fmt.Println(ExperienceYears("5 years of experience, 10+ yrs in management"))
	fmt.Println(ExperienceYears("no experience mentioned"))
	// Output:
	// 10
	// 0
}
