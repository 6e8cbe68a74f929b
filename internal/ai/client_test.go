package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Dias221467/health-o-mania/internal/models"
	"github.com/Dias221467/health-o-mania/pkg/apperr"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOpenAI answers every chat completion with reply and records the
// last request it saw.
func fakeOpenAI(t *testing.T, reply string, last *openai.ChatCompletionRequest) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(last))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			ID:     "cmpl-1",
			Object: "chat.completion",
			Choices: []openai.ChatCompletionChoice{{
				Message:      openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: reply},
				FinishReason: openai.FinishReasonStop,
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return NewClient("test-key", "test-model", srv.URL+"/v1")
}

func TestNotConfigured(t *testing.T) {
	c := NewClient("", "", "")
	_, err := c.GenerateWorkoutPlan(context.Background(), models.WorkoutPlanInput{GoalType: "x", Difficulty: "y"})
	assert.True(t, apperr.Is(err, apperr.Internal))
	assert.Equal(t, "AI features are not configured.", apperr.From(err).Message)
}

func TestGenerateWorkoutPlan(t *testing.T) {
	var last openai.ChatCompletionRequest
	c := fakeOpenAI(t, "Day 1: squats", &last)

	plan, err := c.GenerateWorkoutPlan(context.Background(), models.WorkoutPlanInput{
		GoalType: "Lose weight", Difficulty: "Beginner", DietPref: "Vegan",
	})
	require.NoError(t, err)
	assert.Equal(t, "Day 1: squats", plan.WorkoutPlan)
	assert.Equal(t, "test-model", last.Model)
	require.Len(t, last.Messages, 1)
	assert.Contains(t, last.Messages[0].Content, "Goal Type: Lose weight")
	assert.Contains(t, last.Messages[0].Content, "Dietary Preferences: Vegan")
}

func TestGenerateMealPlan(t *testing.T) {
	var last openai.ChatCompletionRequest
	c := fakeOpenAI(t, "Breakfast: oats", &last)

	plan, err := c.GenerateMealPlan(context.Background(), models.MealPlanInput{DietPref: "Keto", GoalType: "Bulk"})
	require.NoError(t, err)
	assert.Equal(t, "Breakfast: oats", plan.MealPlan)
	assert.Contains(t, last.Messages[0].Content, "Dietary Preference: Keto")
}

func TestScanFood(t *testing.T) {
	var last openai.ChatCompletionRequest
	reply := `{"foodName":"Apple","calories":95,"macros":{"protein":0.5,"carb":25,"fat":0.3}}`
	c := fakeOpenAI(t, reply, &last)

	scan, err := c.ScanFood(context.Background(), models.ScanFoodInput{PhotoDataURI: "data:image/png;base64,AAAA"})
	require.NoError(t, err)
	assert.Equal(t, "Apple", scan.FoodName)
	assert.Equal(t, 95.0, scan.Calories)
	assert.Equal(t, 25.0, scan.Macros.Carb)
	assert.Equal(t, reply, scan.Raw)

	require.Len(t, last.Messages, 1)
	require.Len(t, last.Messages[0].MultiContent, 2)
	assert.Equal(t, "data:image/png;base64,AAAA", last.Messages[0].MultiContent[1].ImageURL.URL)
	require.NotNil(t, last.ResponseFormat)
	assert.Equal(t, openai.ChatCompletionResponseFormatTypeJSONObject, last.ResponseFormat.Type)
}

func TestScanFood_NonJSONKeepsRaw(t *testing.T) {
	var last openai.ChatCompletionRequest
	c := fakeOpenAI(t, "looks like an apple", &last)

	scan, err := c.ScanFood(context.Background(), models.ScanFoodInput{PhotoDataURI: "data:image/png;base64,AAAA"})
	require.NoError(t, err)
	assert.Empty(t, scan.FoodName)
	assert.Equal(t, "looks like an apple", scan.Raw)
}

func TestChat_MapsHistoryRoles(t *testing.T) {
	var last openai.ChatCompletionRequest
	c := fakeOpenAI(t, "", &last)

	reply, err := c.Chat(context.Background(), models.ChatInput{
		History: []models.ChatTurn{
			{Role: "user", Content: "hi"},
			{Role: "model", Content: "hello"},
		},
		Message: "where are my tasks?",
	})
	require.NoError(t, err)
	assert.Equal(t, chatFallback, reply.Message)

	require.Len(t, last.Messages, 4)
	assert.Equal(t, openai.ChatMessageRoleSystem, last.Messages[0].Role)
	assert.Equal(t, openai.ChatMessageRoleAssistant, last.Messages[2].Role)
	assert.Equal(t, "where are my tasks?", last.Messages[3].Content)
}
