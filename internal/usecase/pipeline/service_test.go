package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kailas-cloud/onimo/internal/domain"
	"github.com/kailas-cloud/onimo/internal/domain/answer"
	"github.com/kailas-cloud/onimo/internal/domain/response"
	"github.com/kailas-cloud/onimo/internal/domain/session"
	"github.com/kailas-cloud/onimo/internal/usecase/intent"
)

// --- Mocks ---

// dictTranslator translates from a fixed dictionary keyed by "target|text"
// and returns the input for anything else, like the real safe translator.
type dictTranslator map[string]string

func (d dictTranslator) Translate(_ context.Context, text string, target domain.Language) string {
	if out, ok := d[string(target)+"|"+text]; ok {
		return out
	}
	return text
}

type mockExtractor struct {
	mu     sync.Mutex
	inputs []string
}

func (m *mockExtractor) Extract(_ context.Context, text string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inputs = append(m.inputs, text)
	return "kw:" + text
}

type mockResolver struct {
	mu        sync.Mutex
	resolveFn func(keyword string, detail answer.Detail) answer.Resolved
	keywords  []string
	details   []answer.Detail
}

func (m *mockResolver) Resolve(_ context.Context, keyword string, detail answer.Detail) answer.Resolved {
	m.mu.Lock()
	m.keywords = append(m.keywords, keyword)
	m.details = append(m.details, detail)
	m.mu.Unlock()
	if m.resolveFn == nil {
		return answer.NoAnswer()
	}
	return m.resolveFn(keyword, detail)
}

func (m *mockResolver) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.keywords)
}

type mockTranscripts struct {
	fetchFn func(videoID string, languages []domain.Language) (string, error)
	calls   int
}

func (m *mockTranscripts) FetchTranscript(_ context.Context, videoID string, languages []domain.Language) (string, error) {
	m.calls++
	return m.fetchFn(videoID, languages)
}

const (
	bnSwitched = "এখন থেকে আমি বাংলায় কথা বলব।"
	bnGreeting = "হ্যালো! আমি কীভাবে সাহায্য করতে পারি?"
	bnNoAnswer = "দুঃখিত, আমি সে সম্পর্কে কোনো তথ্য খুঁজে পাইনি।"
	bnSummary  = "ঢাকা বাংলাদেশের রাজধানী।"
	enSummary  = "Dhaka is the capital of Bangladesh."
	wikiURL    = "https://en.wikipedia.org/wiki/Dhaka"
)

func testDict() dictTranslator {
	return dictTranslator{
		"bn|From now, I will speak Bangla.":                      bnSwitched,
		"bn|Hello! How can I help you?":                          bnGreeting,
		"bn|Sorry, I couldn't find any information about that.": bnNoAnswer,
		"bn|" + enSummary:                                        bnSummary,
		"en|ঢাকা সম্পর্কে বিস্তারিত":                            "Dhaka in detail",
		"en|বাংলায় কথা বলো":                                      "Talk in Bangla",
	}
}

type fixture struct {
	svc         *Service
	sess        *session.State
	extractor   *mockExtractor
	resolver    *mockResolver
	transcripts *mockTranscripts
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		sess:      session.New(domain.LanguageEnglish),
		extractor: &mockExtractor{},
		resolver:  &mockResolver{},
		transcripts: &mockTranscripts{fetchFn: func(string, []domain.Language) (string, error) {
			return "", domain.ErrTranscriptUnavailable
		}},
	}
	f.svc = New(
		domain.DefaultAssistantConfig(),
		intent.New(intent.DefaultPhrases()),
		f.extractor,
		f.resolver,
		testDict(),
	).WithTranscripts(f.transcripts)
	return f
}

func foundWiki(string, answer.Detail) answer.Resolved {
	return answer.NewResolved(answer.Encyclopedia, answer.Found(enSummary, wikiURL))
}

// --- End-to-end scenarios ---

func TestAsk_SwitchToBangla(t *testing.T) {
	f := newFixture(t)

	got := f.svc.Ask(context.Background(), f.sess, "talk bangla")

	assert.Equal(t, response.Response{
		Status:   response.StatusLanguageChanged,
		Message:  bnSwitched,
		Language: domain.LanguageBangla,
	}, got)
	assert.Equal(t, domain.LanguageBangla, f.sess.Language())
	assert.Equal(t, 0, f.resolver.calls())
}

func TestAsk_SwitchFromNativeScript(t *testing.T) {
	f := newFixture(t)

	got := f.svc.Ask(context.Background(), f.sess, "বাংলায় কথা বলো")

	assert.Equal(t, response.StatusLanguageChanged, got.Status)
	assert.Equal(t, domain.LanguageBangla, got.Language)
	assert.Equal(t, domain.LanguageBangla, f.sess.Language())
}

func TestAsk_SwitchToEnglish(t *testing.T) {
	f := newFixture(t)
	_, _ = f.sess.Set(domain.LanguageBangla)

	got := f.svc.Ask(context.Background(), f.sess, "Speak English please")

	assert.Equal(t, response.Response{
		Status:   response.StatusLanguageChanged,
		Message:  "From now, I will speak English.",
		Language: domain.LanguageEnglish,
	}, got)
	assert.Equal(t, domain.LanguageEnglish, f.sess.Language())
}

func TestAsk_Greeting(t *testing.T) {
	f := newFixture(t)

	got := f.svc.Ask(context.Background(), f.sess, "hello")

	assert.Equal(t, response.Response{
		Status:   response.StatusChat,
		Message:  "Hello! How can I help you?",
		Language: domain.LanguageEnglish,
	}, got)
}

func TestAsk_GreetingInBangla(t *testing.T) {
	f := newFixture(t)
	_, _ = f.sess.Set(domain.LanguageBangla)

	got := f.svc.Ask(context.Background(), f.sess, "Hello!!")

	assert.Equal(t, response.StatusChat, got.Status)
	assert.Equal(t, bnGreeting, got.Message)
	assert.Equal(t, domain.LanguageBangla, got.Language)
}

func TestAsk_Creator(t *testing.T) {
	f := newFixture(t)

	got := f.svc.Ask(context.Background(), f.sess, "who created you")

	assert.Equal(t, response.Response{
		Status:   response.StatusInfo,
		Message:  "My creator is Alamin.",
		Language: domain.LanguageEnglish,
	}, got)
}

func TestAsk_EmptyQuery(t *testing.T) {
	f := newFixture(t)

	for _, q := range []string{"", "   \n\t"} {
		got := f.svc.Ask(context.Background(), f.sess, q)
		assert.Equal(t, response.Response{
			Status:  response.StatusError,
			Message: "Please provide a valid question.",
		}, got)
	}
	assert.Equal(t, 0, f.resolver.calls())
}

func TestAsk_QueryTooLong(t *testing.T) {
	f := newFixture(t)
	cfg := domain.DefaultAssistantConfig()
	cfg.MaxQueryRunes = 5
	f.svc.cfg = cfg

	got := f.svc.Ask(context.Background(), f.sess, "ঢাকা ঢাকা")
	assert.Equal(t, response.StatusError, got.Status)
	assert.Equal(t, "Your question is too long.", got.Message)
}

func TestFactCheckVideo_InvalidURL(t *testing.T) {
	f := newFixture(t)

	got := f.svc.FactCheckVideo(context.Background(), f.sess, "https://example.com/watch?x=short")

	assert.Equal(t, response.Response{
		Status:  response.StatusError,
		Message: "Invalid YouTube URL.",
	}, got)
	assert.Equal(t, 0, f.transcripts.calls)
	assert.Equal(t, 0, f.resolver.calls())
}

// --- Fact path ---

func TestAsk_FactFoundBrief(t *testing.T) {
	f := newFixture(t)
	f.resolver.resolveFn = foundWiki

	got := f.svc.Ask(context.Background(), f.sess, "Who is the President of Bangladesh?")

	assert.Equal(t, response.Response{
		Status:   response.StatusWiki,
		Summary:  enSummary,
		Source:   wikiURL,
		Language: domain.LanguageEnglish,
	}, got)
	require.Len(t, f.extractor.inputs, 1)
	assert.Equal(t, "who is the president of bangladesh?", f.extractor.inputs[0], "keyword comes from the normalized query")
	assert.Equal(t, []answer.Detail{answer.Brief}, f.resolver.details)
}

func TestAsk_FactDetailedFromNativeQuery(t *testing.T) {
	f := newFixture(t)
	_, _ = f.sess.Set(domain.LanguageBangla)
	f.resolver.resolveFn = foundWiki

	got := f.svc.Ask(context.Background(), f.sess, "ঢাকা সম্পর্কে বিস্তারিত")

	assert.Equal(t, response.StatusWikiDetailed, got.Status)
	assert.Equal(t, bnSummary, got.Summary, "summary is translated into the session language")
	assert.Equal(t, wikiURL, got.Source)
	assert.Equal(t, domain.LanguageBangla, got.Language)
	assert.Equal(t, []string{"dhaka in detail"}, f.extractor.inputs)
	assert.Equal(t, []answer.Detail{answer.Detailed}, f.resolver.details)
}

func TestAsk_FactFromNews(t *testing.T) {
	f := newFixture(t)
	f.resolver.resolveFn = func(string, answer.Detail) answer.Resolved {
		return answer.NewResolved(answer.News, answer.Found("Headline: body", "https://news.example.com/a"))
	}

	got := f.svc.Ask(context.Background(), f.sess, "election results details")
	assert.Equal(t, response.StatusNewsDetailed, got.Status)
	assert.Equal(t, "Headline: body", got.Summary)
	assert.Equal(t, "https://news.example.com/a", got.Source)
}

func TestAsk_NoAnswer(t *testing.T) {
	f := newFixture(t)
	_, _ = f.sess.Set(domain.LanguageBangla)

	got := f.svc.Ask(context.Background(), f.sess, "zxqv")

	assert.Equal(t, response.Response{
		Status:   response.StatusUnknown,
		Message:  bnNoAnswer,
		Language: domain.LanguageBangla,
	}, got)
}

func TestAsk_RecordsTrace(t *testing.T) {
	f := newFixture(t)
	f.resolver.resolveFn = foundWiki

	ctx, tr := domain.NewContextWithTrace(context.Background())
	f.svc.Ask(ctx, f.sess, "dhaka details")

	assert.Equal(t, "fact_query:detailed", tr.Intent)
	assert.Equal(t, "kw:dhaka details", tr.Keyword)
	assert.Equal(t, string(answer.Encyclopedia), tr.Origin)
	assert.Equal(t, domain.LanguageEnglish, tr.Language)
}

// --- Video path ---

func TestFactCheckVideo_Found(t *testing.T) {
	f := newFixture(t)
	f.transcripts.fetchFn = func(videoID string, languages []domain.Language) (string, error) {
		assert.Equal(t, "dQw4w9WgXcQ", videoID)
		assert.Equal(t, []domain.Language{domain.LanguageEnglish, domain.LanguageBangla}, languages)
		return "today we talk about dhaka the capital", nil
	}
	f.resolver.resolveFn = func(string, answer.Detail) answer.Resolved {
		return answer.NewResolved(answer.News, answer.Found("Dhaka news: text", "https://news.example.com/d"))
	}

	got := f.svc.FactCheckVideo(context.Background(), f.sess, "https://www.youtube.com/watch?v=dQw4w9WgXcQ&t=42")

	assert.Equal(t, response.StatusYouTubeNews, got.Status)
	assert.Equal(t, "Dhaka news: text", got.Summary)
	assert.Equal(t, domain.LanguageEnglish, got.Language)
	assert.Equal(t, []string{"today we talk about dhaka the capital"}, f.extractor.inputs, "keyword comes straight from the transcript")
	assert.Equal(t, []answer.Detail{answer.Brief}, f.resolver.details, "video path is always brief")
}

func TestFactCheckVideo_Wiki(t *testing.T) {
	f := newFixture(t)
	f.transcripts.fetchFn = func(string, []domain.Language) (string, error) { return "dhaka", nil }
	f.resolver.resolveFn = foundWiki

	got := f.svc.FactCheckVideo(context.Background(), f.sess, "https://youtu.be/dQw4w9WgXcQ")
	assert.Equal(t, response.StatusYouTubeWiki, got.Status)
}

func TestFactCheckVideo_NoTranscript(t *testing.T) {
	f := newFixture(t)
	f.transcripts.fetchFn = func(string, []domain.Language) (string, error) {
		return "", errors.New("captions disabled")
	}

	got := f.svc.FactCheckVideo(context.Background(), f.sess, "dQw4w9WgXcQ")

	assert.Equal(t, response.Response{
		Status:  response.StatusError,
		Message: "No transcript available for this video.",
	}, got)
	assert.Equal(t, 0, f.resolver.calls())
}

func TestFactCheckVideo_BlankTranscript(t *testing.T) {
	f := newFixture(t)
	f.transcripts.fetchFn = func(string, []domain.Language) (string, error) { return "  ", nil }

	got := f.svc.FactCheckVideo(context.Background(), f.sess, "dQw4w9WgXcQ")
	assert.Equal(t, response.StatusError, got.Status)
}

func TestFactCheckVideo_NoFetcherConfigured(t *testing.T) {
	f := newFixture(t)
	f.svc.transcripts = nil

	got := f.svc.FactCheckVideo(context.Background(), f.sess, "dQw4w9WgXcQ")
	assert.Equal(t, "No transcript available for this video.", got.Message)
}

func TestFactCheckVideo_NoAnswer(t *testing.T) {
	f := newFixture(t)
	f.transcripts.fetchFn = func(string, []domain.Language) (string, error) { return "zxqv", nil }

	got := f.svc.FactCheckVideo(context.Background(), f.sess, "dQw4w9WgXcQ")
	assert.Equal(t, response.StatusUnknown, got.Status)
	assert.Equal(t, "Sorry, I couldn't find any information about that.", got.Message)
}

// --- Session ---

func TestAsk_LanguagePersistsAcrossCalls(t *testing.T) {
	f := newFixture(t)
	f.resolver.resolveFn = foundWiki

	f.svc.Ask(context.Background(), f.sess, "talk bangla")
	got := f.svc.Ask(context.Background(), f.sess, "capital of bangladesh")

	assert.Equal(t, domain.LanguageBangla, got.Language)
	assert.Equal(t, bnSummary, got.Summary)
}

func TestAsk_ConcurrentSwitchesStayConsistent(t *testing.T) {
	f := newFixture(t)
	queries := []string{"speak bangla", "speak english", "hello", "who made you"}

	var wg sync.WaitGroup
	for i := range 64 {
		wg.Add(1)
		go func(q string) {
			defer wg.Done()
			got := f.svc.Ask(context.Background(), f.sess, q)
			assert.True(t, got.Language.IsSupported(), "response language %q", got.Language)
		}(queries[i%len(queries)])
	}
	wg.Wait()

	assert.True(t, f.sess.Language().IsSupported())
}
