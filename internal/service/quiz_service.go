package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"quizforge/internal/cache"
	"quizforge/internal/config"
	"quizforge/internal/domain"
	"quizforge/internal/dto"
	"quizforge/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// QuizGenerator is the orchestration port used by the quiz service. It is
// satisfied by orchestrator.Orchestrator.
type QuizGenerator interface {
	GenerateQuiz(ctx context.Context, req domain.QuizRequest) (domain.QuizResult, string, []domain.Attempt, error)
}

// QuizService defines the interface for quiz generation operations
type QuizService interface {
	GenerateQuiz(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error)
}

// quizService implements QuizService
type quizService struct {
	generator QuizGenerator
	cache     domain.Cache
	cfg       *config.Config
	sfGroup   singleflight.Group
}

// NewQuizService creates a new instance of quizService. cacheClient may be
// nil, in which case every request goes straight to the providers.
func NewQuizService(generator QuizGenerator, cacheClient domain.Cache, cfg *config.Config) QuizService {
	return &quizService{
		generator: generator,
		cache:     cacheClient,
		cfg:       cfg,
	}
}

// GenerateQuiz implements QuizService
func (s *quizService) GenerateQuiz(ctx context.Context, req *dto.GenerateQuizRequest) (*dto.GenerateQuizResponse, error) {
	domainReq := domain.QuizRequest{
		Topic:            strings.TrimSpace(req.Topic),
		Difficulty:       strings.ToLower(strings.TrimSpace(req.Difficulty)),
		NumQuestions:     req.NumQuestions,
		TimeLimitMinutes: req.TimeLimitMinutes,
	}
	if err := domainReq.Validate(); err != nil {
		return nil, err
	}

	cacheKey := s.quizCacheKey(domainReq)

	if s.cache != nil {
		if resp, ok := s.readCachedQuiz(ctx, cacheKey); ok {
			return resp, nil
		}
	}

	// Identical concurrent requests share one provider call.
	res, err, _ := s.sfGroup.Do(cacheKey, func() (interface{}, error) {
		result, providerName, attempts, genErr := s.generator.GenerateQuiz(ctx, domainReq)
		if genErr != nil {
			return nil, genErr
		}

		logger.Get().Info("Quiz generated",
			zap.String("topic", domainReq.Topic),
			zap.String("difficulty", domainReq.Difficulty),
			zap.String("provider", providerName),
			zap.Int("attempts", len(attempts)))

		resp := s.toResponse(domainReq, result, providerName, false)

		if s.cache != nil {
			s.writeCachedQuiz(ctx, cacheKey, resp)
		}
		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	resp, ok := res.(*dto.GenerateQuizResponse)
	if !ok {
		return nil, domain.NewInternalError(fmt.Sprintf("unexpected type from singleflight: %T", res), nil)
	}
	return resp, nil
}

func (s *quizService) quizCacheKey(req domain.QuizRequest) string {
	topic := strings.ReplaceAll(strings.ToLower(req.Topic), " ", "-")
	return cache.GenerateCacheKey("quiz", "generated", topic,
		req.Difficulty, fmt.Sprintf("%d", req.NumQuestions))
}

func (s *quizService) readCachedQuiz(ctx context.Context, key string) (*dto.GenerateQuizResponse, bool) {
	cached, err := s.cache.Get(ctx, key)
	if err != nil {
		if err != domain.ErrCacheMiss {
			logger.Get().Warn("Failed to read quiz from cache", zap.Error(err), zap.String("key", key))
		}
		return nil, false
	}

	var resp dto.GenerateQuizResponse
	if err := json.Unmarshal([]byte(cached), &resp); err != nil {
		logger.Get().Warn("Failed to unmarshal cached quiz", zap.Error(err), zap.String("key", key))
		return nil, false
	}

	resp.Cached = true
	logger.Get().Debug("Quiz cache hit", zap.String("key", key))
	return &resp, true
}

func (s *quizService) writeCachedQuiz(ctx context.Context, key string, resp *dto.GenerateQuizResponse) {
	payload, err := json.Marshal(resp)
	if err != nil {
		logger.Get().Warn("Failed to marshal quiz for caching", zap.Error(err), zap.String("key", key))
		return
	}
	if err := s.cache.Set(ctx, key, string(payload), s.cfg.Cache.QuizTTL); err != nil {
		logger.Get().Warn("Failed to write quiz to cache", zap.Error(err), zap.String("key", key))
	}
}

func (s *quizService) toResponse(req domain.QuizRequest, result domain.QuizResult, providerName string, cached bool) *dto.GenerateQuizResponse {
	questions := make([]dto.QuestionResponse, 0, len(result.Questions))
	for _, q := range result.Questions {
		questions = append(questions, dto.QuestionResponse{
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		})
	}
	return &dto.GenerateQuizResponse{
		Topic:            req.Topic,
		Difficulty:       req.Difficulty,
		TimeLimitMinutes: req.TimeLimitMinutes,
		Provider:         providerName,
		Cached:           cached,
		Questions:        questions,
	}
}
