package service

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/mrchongyl/zus-chatbot/internal/constant"
	"github.com/mrchongyl/zus-chatbot/internal/dto"
	"github.com/mrchongyl/zus-chatbot/internal/observability"
	"github.com/mrchongyl/zus-chatbot/internal/pkg/logger"
	"github.com/mrchongyl/zus-chatbot/internal/pkg/validation"
	"github.com/mrchongyl/zus-chatbot/internal/repository/memory"
	"github.com/mrchongyl/zus-chatbot/pkg/agent"
	"github.com/mrchongyl/zus-chatbot/pkg/store"
)

// stateRefused marks requests turned away by the input guards before the
// reasoning loop runs.
const stateRefused = "REFUSED"

type IChatService interface {
	SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error)
	CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error)
	GetChatHistory(ctx context.Context, sessionId string) ([]*dto.GetChatHistoryResponse, error)
	ClearSession(ctx context.Context, request *dto.ClearSessionRequest) error
}

type chatService struct {
	loop        *agent.Loop
	sessionRepo *memory.SessionRepository
	metrics     *observability.Metrics
	log         logger.ILogger
	maxChars    int
	maxWords    int
}

func NewChatService(
	loop *agent.Loop,
	sessionRepo *memory.SessionRepository,
	metrics *observability.Metrics,
	log logger.ILogger,
	maxChars, maxWords int,
) IChatService {
	return &chatService{
		loop:        loop,
		sessionRepo: sessionRepo,
		metrics:     metrics,
		log:         log,
		maxChars:    maxChars,
		maxWords:    maxWords,
	}
}

func (s *chatService) SendChat(ctx context.Context, request *dto.SendChatRequest) (*dto.SendChatResponse, error) {
	started := time.Now()

	chat := strings.TrimSpace(request.Chat)
	if chat == "" {
		return nil, &validation.Error{Reason: "message is empty"}
	}

	// Guarded refusals never reach the reasoning loop.
	if refusal := s.refuse(chat); refusal != "" {
		s.record(request.SessionId, chat, refusal)
		s.metrics.ChatRequests.WithLabelValues(stateRefused).Inc()
		return &dto.SendChatResponse{
			SessionId: request.SessionId,
			Reply:     refusal,
			State:     stateRefused,
		}, nil
	}

	history := s.sessionRepo.GetOrCreate(request.SessionId)
	outcome := s.loop.Run(ctx, history, chat)

	s.record(request.SessionId, chat, outcome.Answer)

	s.metrics.ChatRequests.WithLabelValues(string(outcome.State)).Inc()
	s.metrics.LoopIterations.Observe(float64(outcome.Iterations))
	for _, step := range outcome.Steps {
		if step.Tool != "" {
			s.metrics.ToolInvocations.WithLabelValues(step.Tool).Inc()
		}
	}
	if outcome.State == agent.StateBudgetExceeded {
		s.metrics.BudgetExceeded.Inc()
		s.log.Warn("chat", "reasoning budget exceeded", map[string]interface{}{
			"session_id": request.SessionId,
			"error":      outcome.Err.Error(),
		})
	}
	s.metrics.ObserveChatLatency(time.Since(started))

	return &dto.SendChatResponse{
		SessionId:  request.SessionId,
		Reply:      outcome.Answer,
		State:      string(outcome.State),
		Iterations: outcome.Iterations,
	}, nil
}

// refuse returns a refusal reply for input the loop must never see, or ""
// when the input is acceptable.
func (s *chatService) refuse(chat string) string {
	if utf8.RuneCountInString(chat) > s.maxChars || len(strings.Fields(chat)) > s.maxWords {
		return "That message is quite long. Please simplify your request or split it into smaller parts."
	}
	if validation.IsRawSQL(chat) {
		return "I can't run raw SQL. Ask me about outlets in plain language instead, for example 'outlets in Cheras'."
	}
	return ""
}

func (s *chatService) record(sessionId, chat, reply string) {
	s.sessionRepo.Append(sessionId,
		store.Turn{Role: store.RoleUser, Content: chat},
		store.Turn{Role: store.RoleModel, Content: reply},
	)
}

func (s *chatService) CreateSession(ctx context.Context) (*dto.CreateSessionResponse, error) {
	sessionId := uuid.NewString()
	s.sessionRepo.GetOrCreate(sessionId)
	return &dto.CreateSessionResponse{SessionId: sessionId}, nil
}

func (s *chatService) GetChatHistory(ctx context.Context, sessionId string) ([]*dto.GetChatHistoryResponse, error) {
	turns := s.sessionRepo.GetOrCreate(sessionId)
	history := make([]*dto.GetChatHistoryResponse, len(turns))
	for i, turn := range turns {
		role := constant.ChatMessageRoleUser
		if turn.Role == store.RoleModel {
			role = constant.ChatMessageRoleModel
		}
		history[i] = &dto.GetChatHistoryResponse{
			Role: role,
			Chat: turn.Content,
		}
	}
	return history, nil
}

func (s *chatService) ClearSession(ctx context.Context, request *dto.ClearSessionRequest) error {
	s.sessionRepo.Clear(request.SessionId)
	return nil
}
