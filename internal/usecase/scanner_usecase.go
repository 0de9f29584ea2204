package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fadilmartias/resume-ats-scanner/internal/dto"
	"github.com/fadilmartias/resume-ats-scanner/internal/extract"
	"github.com/fadilmartias/resume-ats-scanner/internal/fingerprint"
	"github.com/fadilmartias/resume-ats-scanner/internal/logger"
	"github.com/fadilmartias/resume-ats-scanner/internal/model"
	"github.com/fadilmartias/resume-ats-scanner/internal/prompt"
	"github.com/fadilmartias/resume-ats-scanner/internal/response"
	"github.com/fadilmartias/resume-ats-scanner/internal/service"
	"github.com/fadilmartias/resume-ats-scanner/internal/session"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	ErrNoResume         = errors.New("upload a resume first")
	ErrInvalidSelection = errors.New("select two different resumes from the comparison set")
)

const (
	TruncationWarning = "The resume is too long. The text has been truncated to fit within the input limit."

	// maxParallelSummaries bounds model calls made for one comparison upload.
	maxParallelSummaries = 3
)

type ScannerUsecase struct {
	extractor extract.Extractor
	completer service.Completer
	logger    *zap.Logger
}

func NewScannerUsecase(extractor extract.Extractor, completer service.Completer, log *zap.Logger) *ScannerUsecase {
	return &ScannerUsecase{
		extractor: extractor,
		completer: completer,
		logger:    logger.OrNop(log),
	}
}

// Dispatch applies action to state and returns the resulting view. The view
// is valid even when an error is returned, so callers can render it with
// the error next to it.
func (uc *ScannerUsecase) Dispatch(ctx context.Context, state *session.State, action Action) (dto.ScanView, error) {
	var err error
	switch a := action.(type) {
	case UploadResume:
		err = uc.uploadResume(ctx, state, a)
	case SetJobDescription:
		uc.setJobDescription(state, a)
	case Review:
		err = uc.review(ctx, state)
	case Ask:
		err = uc.ask(ctx, state, a)
	case UploadComparison:
		err = uc.uploadComparison(ctx, state, a)
	case Compare:
		err = uc.compare(ctx, state, a)
	default:
		err = fmt.Errorf("unsupported action %T", action)
	}

	if err != nil {
		name := "unknown"
		if action != nil {
			name = action.actionName()
		}
		uc.logger.Warn("action failed",
			zap.String("session_id", state.ID),
			zap.String("action", name),
			zap.Error(err),
		)
	}
	return BuildView(state), err
}

func (uc *ScannerUsecase) uploadResume(ctx context.Context, state *session.State, a UploadResume) error {
	text, err := uc.extractor.Extract(ctx, a.Body)
	if err != nil {
		return fmt.Errorf("read %s: %w", a.Name, err)
	}

	resume := model.NewResume(a.Name, text)
	state.SetResume(resume)

	uc.logger.Info("resume uploaded",
		zap.String("session_id", state.ID),
		zap.String("resume_id", resume.ID),
		zap.String("file_name", resume.FileName),
		zap.Float64("reading_minutes", resume.ReadingMinutes),
		zap.Bool("truncated", resume.Truncated),
	)
	return nil
}

func (uc *ScannerUsecase) setJobDescription(state *session.State, a SetJobDescription) {
	if !a.Enabled {
		state.SetJobDescription(model.JobDescription{})
		return
	}
	state.SetJobDescription(model.JobDescription{
		CompanyName: a.Company,
		JobPost:     a.Post,
		Description: a.Description,
	})
}

// review runs summary, rating and feedback in order; rating and feedback
// are built from the summary.
func (uc *ScannerUsecase) review(ctx context.Context, state *session.State) error {
	resume := state.Resume()
	if resume == nil {
		return ErrNoResume
	}
	jd := state.JobDescription().PromptText()

	summary, err := uc.completer.Complete(ctx, prompt.Summary(resume.PromptText))
	if err != nil {
		return fmt.Errorf("summarize resume: %w", err)
	}
	rating, err := uc.completer.Complete(ctx, prompt.Rating(summary, jd))
	if err != nil {
		return fmt.Errorf("rate resume: %w", err)
	}
	feedback, err := uc.completer.Complete(ctx, prompt.Feedback(summary, jd))
	if err != nil {
		return fmt.Errorf("give feedback: %w", err)
	}

	state.SetReview(&model.Review{
		ResumeID: resume.ID,
		Summary:  summary,
		Rating:   rating,
		Feedback: feedback,
	})
	return nil
}

func (uc *ScannerUsecase) ask(ctx context.Context, state *session.State, a Ask) error {
	resume := state.Resume()
	if resume == nil {
		return ErrNoResume
	}
	question := strings.TrimSpace(a.Question)
	if question == "" {
		return nil
	}

	if entry, ok := state.AnswerEntry(resume.ID, question); ok {
		uc.logger.Debug("answer served from cache",
			zap.String("session_id", state.ID),
			zap.String("resume_id", resume.ID),
		)
		state.SetLastAnswer(&entry)
		return nil
	}

	// the answer is cached before the flight ends, so late arrivals hit the cache
	_, shared, err := state.Once(questionKey(resume.ID, question), func() (string, error) {
		if entry, ok := state.AnswerEntry(resume.ID, question); ok {
			state.SetLastAnswer(&entry)
			return entry.Answer, nil
		}
		answer, err := uc.completer.Complete(ctx, prompt.Question(resume.PromptText, question))
		if err != nil {
			return "", err
		}
		state.PutAnswer(resume.ID, question, answer)
		return answer, nil
	})
	if err != nil {
		return fmt.Errorf("answer question: %w", err)
	}

	uc.logger.Info("question answered",
		zap.String("session_id", state.ID),
		zap.String("resume_id", resume.ID),
		zap.Bool("shared", shared),
	)
	return nil
}

// uploadComparison extracts every file before any model call, so a corrupt
// file leaves the previous set untouched. Documents already in the set keep
// their summary.
func (uc *ScannerUsecase) uploadComparison(ctx context.Context, state *session.State, a UploadComparison) error {
	resumes := make([]*model.Resume, 0, len(a.Files))
	for _, f := range a.Files {
		text, err := uc.extractor.Extract(ctx, f.Body)
		if err != nil {
			return fmt.Errorf("read %s: %w", f.Name, err)
		}
		resumes = append(resumes, model.NewResume(f.Name, text))
	}

	known := make(map[string]string)
	for _, doc := range state.ComparisonDocuments() {
		known[doc.Resume.ID] = doc.Summary
	}

	docs := make([]*model.ComparisonDocument, len(resumes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelSummaries)
	for i, r := range resumes {
		if summary, ok := known[r.ID]; ok {
			docs[i] = &model.ComparisonDocument{Resume: r, Summary: summary}
			continue
		}
		g.Go(func() error {
			summary, err := uc.completer.Complete(gctx, prompt.Summary(r.PromptText))
			if err != nil {
				return fmt.Errorf("summarize %s: %w", r.FileName, err)
			}
			docs[i] = &model.ComparisonDocument{Resume: r, Summary: summary}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	state.SetComparisonDocuments(docs)
	uc.logger.Info("comparison set uploaded",
		zap.String("session_id", state.ID),
		zap.Int("documents", len(docs)),
	)
	return nil
}

func (uc *ScannerUsecase) compare(ctx context.Context, state *session.State, a Compare) error {
	if a.First == a.Second {
		return fmt.Errorf("%w: %q chosen twice", ErrInvalidSelection, a.First)
	}
	docs := state.ComparisonDocuments()
	first := findDocument(docs, a.First)
	second := findDocument(docs, a.Second)
	if first == nil || second == nil {
		return fmt.Errorf("%w: %q and %q", ErrInvalidSelection, a.First, a.Second)
	}

	id := fingerprint.Combined(first.Resume.Text, second.Resume.Text)
	if cached, ok := state.Comparison(id); ok {
		uc.logger.Debug("comparison served from cache",
			zap.String("session_id", state.ID),
			zap.String("comparison_id", id),
		)
		state.SetLastComparison(&cached)
		return nil
	}

	jd := state.JobDescription().PromptText()
	_, _, err := state.Once(comparisonKey(id), func() (string, error) {
		if cached, ok := state.Comparison(id); ok {
			state.SetLastComparison(&cached)
			return cached.Analysis, nil
		}
		analysis, err := uc.completer.Complete(ctx, prompt.Comparison(first.Summary, second.Summary, jd))
		if err != nil {
			return "", err
		}
		state.PutComparison(model.Comparison{
			ID:       id,
			First:    first.Resume.FileName,
			Second:   second.Resume.FileName,
			Analysis: analysis,
		})
		return analysis, nil
	})
	if err != nil {
		return fmt.Errorf("compare resumes: %w", err)
	}
	return nil
}

// QuestionHistory returns one page of the questions asked about the active
// resume, oldest first.
func (uc *ScannerUsecase) QuestionHistory(state *session.State, page, pageSize int) ([]dto.QAView, response.Pagination, error) {
	resume := state.Resume()
	if resume == nil {
		return nil, response.Pagination{}, ErrNoResume
	}

	history := state.QAHistory(resume.ID)
	p := response.NewPagination(page, pageSize, int64(len(history)))
	start, end := p.Bounds()

	items := make([]dto.QAView, 0, end-start)
	for _, e := range history[start:end] {
		items = append(items, dto.QAView{Question: e.Question, Answer: e.Answer})
	}
	return items, p, nil
}

// BuildView derives everything shown on the page from the session state.
func BuildView(state *session.State) dto.ScanView {
	snap := state.Snapshot()
	view := dto.ScanView{PreviousQuestions: make([]dto.QAView, 0, len(snap.History))}

	if r := snap.Resume; r != nil {
		view.Resume = &dto.ResumeView{
			ID:             r.ID,
			FileName:       r.FileName,
			ReadingMinutes: r.ReadingMinutes,
			Preview:        r.Preview(),
			Truncated:      r.Truncated,
		}
		if r.Truncated {
			view.Resume.TruncationWarning = TruncationWarning
		}
		if rv := snap.Review; rv != nil && rv.ResumeID == r.ID {
			view.Review = &dto.ReviewView{Summary: rv.Summary, Rating: rv.Rating, Feedback: rv.Feedback}
		}
		if qa := snap.LastAnswer; qa != nil && qa.ResumeID == r.ID {
			view.LastAnswer = &dto.QAView{Question: qa.Question, Answer: qa.Answer}
		}
		for _, e := range snap.History {
			view.PreviousQuestions = append(view.PreviousQuestions, dto.QAView{Question: e.Question, Answer: e.Answer})
		}
	}

	if !snap.JobDescription.IsEmpty() {
		jd := snap.JobDescription
		view.JobDescription = &jd
	}

	view.Comparison.Files = make([]string, 0, len(snap.Documents))
	for _, doc := range snap.Documents {
		view.Comparison.Files = append(view.Comparison.Files, doc.Resume.FileName)
	}
	if len(view.Comparison.Files) > 1 {
		view.Comparison.DefaultFirst = view.Comparison.Files[0]
		view.Comparison.DefaultSecond = view.Comparison.Files[1]
	}
	view.Comparison.Last = snap.LastComparison

	return view
}

func findDocument(docs []*model.ComparisonDocument, name string) *model.ComparisonDocument {
	for _, doc := range docs {
		if doc.Resume.FileName == name {
			return doc
		}
	}
	return nil
}

func questionKey(resumeID, question string) string {
	return "qa:" + resumeID + "\x00" + question
}

func comparisonKey(id string) string {
	return "cmp:" + id
}
