package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"dnd_quest_board/internal/middleware"
	"dnd_quest_board/internal/model"
	"dnd_quest_board/internal/service"
	"dnd_quest_board/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
)

type questRoutes struct {
	qs service.QuestServiceI
}

func NewQuestRoutes(handler *gin.RouterGroup, qs service.QuestServiceI) {
	r := &questRoutes{qs: qs}
	h := handler.Group("/quests")
	{
		h.GET("", r.ListQuests)
		h.POST("", r.CreateQuest)
		h.PUT("/:id", r.UpdateQuest)
		h.DELETE("/:id", r.DeleteQuest)
	}
}

type QuestResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	QuestType   string  `json:"quest_type"`
	Description string  `json:"description"`
	Reward      string  `json:"reward"`
	Creator     string  `json:"creator"`
	Completed   bool    `json:"completed"`
	CreatedAt   *string `json:"created_at"`
}

func newQuestResponse(q *model.Quest) QuestResponse {
	resp := QuestResponse{
		ID:          q.ID,
		Title:       q.Title,
		QuestType:   q.QuestType,
		Description: q.Description,
		Reward:      q.Reward,
		Creator:     q.Creator,
		Completed:   q.Completed,
	}
	if q.CreatedAt != nil {
		ts := q.CreatedAt.UTC().Format(time.RFC3339Nano)
		resp.CreatedAt = &ts
	}
	return resp
}

// CreateQuestRequest keeps the required fields raw so that presence is
// checked before type.
type CreateQuestRequest struct {
	Title       json.RawMessage `json:"title"`
	QuestType   json.RawMessage `json:"quest_type"`
	Description json.RawMessage `json:"description"`
	Reward      json.RawMessage `json:"reward"`
	Creator     json.RawMessage `json:"creator"`
}

type requiredField struct {
	name string
	raw  json.RawMessage
}

func (req *CreateQuestRequest) requiredFields() []requiredField {
	return []requiredField{
		{"title", req.Title},
		{"quest_type", req.QuestType},
		{"description", req.Description},
		{"reward", req.Reward},
		{"creator", req.Creator},
	}
}

// missingField returns the first required field that is absent or falsy,
// checked in a fixed order.
func (req *CreateQuestRequest) missingField() string {
	for _, f := range req.requiredFields() {
		if isFalsy(f.raw) {
			return f.name
		}
	}
	return ""
}

// toQuest requires every field to be a JSON string.
func (req *CreateQuestRequest) toQuest() (*model.Quest, error) {
	quest := &model.Quest{}
	targets := []*string{&quest.Title, &quest.QuestType, &quest.Description, &quest.Reward, &quest.Creator}
	for i, f := range req.requiredFields() {
		if err := json.Unmarshal(f.raw, targets[i]); err != nil {
			return nil, fmt.Errorf("field %s: %w", f.name, err)
		}
	}
	return quest, nil
}

// isFalsy reports absent, null, "", false, 0, [] and {}.
func isFalsy(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return true
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	switch v := v.(type) {
	case nil:
		return true
	case bool:
		return !v
	case float64:
		return v == 0
	case string:
		return v == ""
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	}
	return false
}

// UpdateQuestRequest holds only the fields present in the body. JSON null
// counts as absent.
type UpdateQuestRequest struct {
	Title       *string `json:"title"`
	QuestType   *string `json:"quest_type"`
	Description *string `json:"description"`
	Reward      *string `json:"reward"`
	Creator     *string `json:"creator"`
	Completed   *bool   `json:"completed"`
}

func (req *UpdateQuestRequest) toPatch() model.QuestPatch {
	return model.QuestPatch{
		Title:       req.Title,
		QuestType:   req.QuestType,
		Description: req.Description,
		Reward:      req.Reward,
		Creator:     req.Creator,
		Completed:   req.Completed,
	}
}

func (r *questRoutes) ListQuests(c *gin.Context) {
	quests, err := r.qs.ListQuests(c.Request.Context())
	if err != nil {
		requestLogger(c).Error("failed to fetch quests", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch quests"})
		return
	}

	response := make([]QuestResponse, len(quests))
	for i, q := range quests {
		response[i] = newQuestResponse(q)
	}

	c.JSON(http.StatusOK, response)
}

func (r *questRoutes) CreateQuest(c *gin.Context) {
	log := requestLogger(c)

	var req CreateQuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Info("failed to bind create quest request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if field := req.missingField(); field != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required field: " + field})
		return
	}

	input, err := req.toQuest()
	if err != nil {
		log.Info("invalid create quest request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	quest, err := r.qs.CreateQuest(c.Request.Context(), input)
	if err != nil {
		log.Error("failed to create quest", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create quest"})
		return
	}

	c.JSON(http.StatusCreated, newQuestResponse(quest))
}

func (r *questRoutes) UpdateQuest(c *gin.Context) {
	log := requestLogger(c)

	id, ok := questID(c)
	if !ok {
		return
	}

	var req UpdateQuestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Info("failed to bind update quest request", zap.Int64("quest_id", id), zap.Error(err))
		// An unknown id answers 404 whatever the body holds.
		if _, lookupErr := r.qs.GetQuest(c.Request.Context(), id); lookupErr != nil {
			if errors.Is(lookupErr, service.ErrQuestNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Quest not found"})
				return
			}
			log.Error("failed to fetch quest", zap.Int64("quest_id", id), zap.Error(lookupErr))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update quest"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	quest, err := r.qs.UpdateQuest(c.Request.Context(), id, req.toPatch())
	if err != nil {
		if errors.Is(err, service.ErrQuestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Quest not found"})
			return
		}
		log.Error("failed to update quest", zap.Int64("quest_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update quest"})
		return
	}

	c.JSON(http.StatusOK, newQuestResponse(quest))
}

func (r *questRoutes) DeleteQuest(c *gin.Context) {
	id, ok := questID(c)
	if !ok {
		return
	}

	err := r.qs.DeleteQuest(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrQuestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Quest not found"})
			return
		}
		requestLogger(c).Error("failed to delete quest", zap.Int64("quest_id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete quest"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Quest deleted successfully"})
}

func questID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quest id"})
		return 0, false
	}
	return id, true
}

func requestLogger(c *gin.Context) *zap.Logger {
	return logger.Logger().With(zap.String("request_id", middleware.RequestID(c)))
}
