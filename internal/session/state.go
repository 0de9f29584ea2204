// Package session holds the per-browser state of the scanner: the active
// resume, the last results, and bounded memo caches for answers and
// comparisons. A State is safe for concurrent use; model calls are made
// outside its lock and deduplicated per key.
package session

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/fadilmartias/resume-ats-scanner/internal/model"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

type Options struct {
	QACacheSize         int
	ComparisonCacheSize int
}

func (o Options) withDefaults() Options {
	if o.QACacheSize <= 0 {
		o.QACacheSize = 256
	}
	if o.ComparisonCacheSize <= 0 {
		o.ComparisonCacheSize = 64
	}
	return o
}

type qaKey struct {
	resumeID string
	question string
}

type State struct {
	ID        string
	CreatedAt time.Time

	mu             sync.Mutex
	resume         *model.Resume
	jobDescription model.JobDescription
	review         *model.Review
	lastAnswer     *model.QAEntry
	documents      []*model.ComparisonDocument
	lastComparison *model.Comparison
	seq            uint64

	answers     *lru.Cache[qaKey, model.QAEntry]
	comparisons *lru.Cache[string, model.Comparison]
	flight      singleflight.Group
}

func New(id string, opts Options) (*State, error) {
	opts = opts.withDefaults()

	answers, err := lru.New[qaKey, model.QAEntry](opts.QACacheSize)
	if err != nil {
		return nil, fmt.Errorf("create answer cache: %w", err)
	}
	comparisons, err := lru.New[string, model.Comparison](opts.ComparisonCacheSize)
	if err != nil {
		return nil, fmt.Errorf("create comparison cache: %w", err)
	}

	return &State{
		ID:          id,
		CreatedAt:   time.Now(),
		answers:     answers,
		comparisons: comparisons,
	}, nil
}

func (s *State) Resume() *model.Resume {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resume
}

// SetResume makes r the active resume. Results tied to a different resume
// are cleared; cached answers stay.
func (s *State) SetResume(r *model.Resume) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.resume == nil || r == nil || s.resume.ID != r.ID {
		s.review = nil
		s.lastAnswer = nil
	}
	s.resume = r
}

func (s *State) JobDescription() model.JobDescription {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobDescription
}

func (s *State) SetJobDescription(jd model.JobDescription) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobDescription = jd
}

func (s *State) SetReview(r *model.Review) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.review = r
}

// Answer returns the cached answer for the pair.
func (s *State) Answer(resumeID, question string) (string, bool) {
	entry, ok := s.AnswerEntry(resumeID, question)
	if !ok {
		return "", false
	}
	return entry.Answer, true
}

// AnswerEntry returns the cached entry for the pair.
func (s *State) AnswerEntry(resumeID, question string) (model.QAEntry, bool) {
	return s.answers.Get(qaKey{resumeID: resumeID, question: question})
}

// PutAnswer caches an answer and makes it the last answer shown. A pair
// that is already cached keeps its original position in the history.
func (s *State) PutAnswer(resumeID, question, answer string) model.QAEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := qaKey{resumeID: resumeID, question: question}
	entry, ok := s.answers.Peek(key)
	if !ok {
		s.seq++
		entry = model.QAEntry{
			ResumeID: resumeID,
			Question: question,
			Seq:      s.seq,
			AskedAt:  time.Now(),
		}
	}
	entry.Answer = answer
	s.answers.Add(key, entry)
	s.lastAnswer = &entry
	return entry
}

// SetLastAnswer shows a cached entry again without touching the cache.
func (s *State) SetLastAnswer(entry *model.QAEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastAnswer = entry
}

// QAHistory lists the cached entries of one resume in the order they were
// first asked.
func (s *State) QAHistory(resumeID string) []model.QAEntry {
	var history []model.QAEntry
	for _, key := range s.answers.Keys() {
		if key.resumeID != resumeID {
			continue
		}
		if entry, ok := s.answers.Peek(key); ok {
			history = append(history, entry)
		}
	}
	sort.Slice(history, func(i, j int) bool { return history[i].Seq < history[j].Seq })
	return history
}

func (s *State) Comparison(id string) (model.Comparison, bool) {
	return s.comparisons.Get(id)
}

func (s *State) PutComparison(c model.Comparison) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.comparisons.Add(c.ID, c)
	s.lastComparison = &c
}

func (s *State) SetLastComparison(c *model.Comparison) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastComparison = c
}

func (s *State) ComparisonDocuments() []*model.ComparisonDocument {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*model.ComparisonDocument(nil), s.documents...)
}

// SetComparisonDocuments replaces the comparison set and clears the last
// comparison shown.
func (s *State) SetComparisonDocuments(docs []*model.ComparisonDocument) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents = docs
	s.lastComparison = nil
}

// Once runs fn for key unless a call for the same key is already in
// flight, in which case it waits for and returns that call's result.
func (s *State) Once(key string, fn func() (string, error)) (string, bool, error) {
	v, err, shared := s.flight.Do(key, func() (any, error) {
		return fn()
	})
	if err != nil {
		return "", shared, err
	}
	return v.(string), shared, nil
}

// Snapshot is a consistent copy of everything a view needs.
type Snapshot struct {
	Resume         *model.Resume
	JobDescription model.JobDescription
	Review         *model.Review
	LastAnswer     *model.QAEntry
	History        []model.QAEntry
	Documents      []*model.ComparisonDocument
	LastComparison *model.Comparison
}

func (s *State) Snapshot() Snapshot {
	s.mu.Lock()
	snap := Snapshot{
		Resume:         s.resume,
		JobDescription: s.jobDescription,
		Review:         s.review,
		LastAnswer:     s.lastAnswer,
		Documents:      append([]*model.ComparisonDocument(nil), s.documents...),
		LastComparison: s.lastComparison,
	}
	s.mu.Unlock()

	if snap.Resume != nil {
		snap.History = s.QAHistory(snap.Resume.ID)
	}
	return snap
}
