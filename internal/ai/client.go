// Package ai wraps the hosted language model used by the plan generator,
// the food scanner and the chatbot. Every flow is one request and one
// response; failures are returned to the caller as they are.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Dias221467/health-o-mania/internal/metrics"
	"github.com/Dias221467/health-o-mania/internal/models"
	"github.com/Dias221467/health-o-mania/pkg/apperr"
	"github.com/Dias221467/health-o-mania/pkg/logger"
	"github.com/sashabaranov/go-openai"
)

// ErrNotConfigured is returned by every flow when no API key is set.
var ErrNotConfigured = apperr.New(apperr.Internal, "AI features are not configured.")

const chatFallback = "Sorry, I couldn't process that. Please try again."

const chatPersona = `You are a friendly and helpful AI assistant named Health-o-Buddy. Your goal is to guide users around the website and answer their health-related questions.

The app has these pages: Dashboard (/), Tasks (/tasks), Food Scanner (/food-scanner), AI Plans (/plan-generator), Pixel Zone (/pixel-zone), Scoreboard (/scoreboard), Live Classes (/live-classes).

IMPORTANT: Do not give medical advice. Do not use phrases like "please consult a healthcare professional". You are an assistant for the app, not a doctor. A disclaimer is already shown in the UI.

Keep your answers concise and helpful.`

type Client struct {
	api   *openai.Client
	model string
}

// NewClient returns a client for the OpenAI-compatible endpoint. An empty
// apiKey yields a client whose flows fail with ErrNotConfigured.
func NewClient(apiKey, model, baseURL string) *Client {
	if model == "" {
		model = openai.GPT4oMini
	}
	c := &Client{model: model}
	if apiKey == "" {
		logger.Log.Warn("OPENAI_API_KEY not set, AI flows disabled")
		return c
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	c.api = openai.NewClientWithConfig(cfg)
	logger.Log.WithField("model", model).Info("Initializing OpenAI client")
	return c
}

func (c *Client) complete(ctx context.Context, flow string, req openai.ChatCompletionRequest) (string, error) {
	if c.api == nil {
		return "", ErrNotConfigured
	}
	req.Model = c.model

	resp, err := c.api.CreateChatCompletion(ctx, req)
	metrics.AIRequests.WithLabelValues(flow, metrics.Result(err)).Inc()
	if err != nil {
		logger.Log.WithError(err).WithField("flow", flow).Error("OpenAI API call failed")
		return "", fmt.Errorf("%s: OpenAI API call failed: %w", flow, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s: OpenAI returned no choices", flow)
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func userPrompt(prompt string) []openai.ChatCompletionMessage {
	return []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleUser, Content: prompt}}
}

func (c *Client) GenerateWorkoutPlan(ctx context.Context, in models.WorkoutPlanInput) (*models.WorkoutPlan, error) {
	prompt := fmt.Sprintf(`You are a personal trainer who provides workout plans to users. Generate a workout plan based on the following information:

Goal Type: %s
Difficulty: %s
Dietary Preferences: %s

Workout Plan:`, in.GoalType, in.Difficulty, in.DietPref)

	out, err := c.complete(ctx, "workout_plan", openai.ChatCompletionRequest{Messages: userPrompt(prompt)})
	if err != nil {
		return nil, err
	}
	return &models.WorkoutPlan{WorkoutPlan: out}, nil
}

func (c *Client) GenerateMealPlan(ctx context.Context, in models.MealPlanInput) (*models.MealPlan, error) {
	prompt := fmt.Sprintf(`You are a nutrition expert specializing in generating personalized meal plans.

You will use the following information to generate a meal plan that aligns with the user's preferences and goals.

Dietary Preference: %s
Goal Type: %s

Generate a detailed meal plan, including specific meals and portion sizes, suitable for the user.  Provide specific meal plans for breakfast, lunch, and dinner.`, in.DietPref, in.GoalType)

	out, err := c.complete(ctx, "meal_plan", openai.ChatCompletionRequest{Messages: userPrompt(prompt)})
	if err != nil {
		return nil, err
	}
	return &models.MealPlan{MealPlan: out}, nil
}

// ScanFood asks the model for the nutrition facts of a food photo given as
// a data URI. The model's JSON is decoded leniently; Raw always carries it.
func (c *Client) ScanFood(ctx context.Context, in models.ScanFoodInput) (*models.FoodScan, error) {
	req := openai.ChatCompletionRequest{
		Messages: []openai.ChatCompletionMessage{{
			Role: openai.ChatMessageRoleUser,
			MultiContent: []openai.ChatMessagePart{
				{
					Type: openai.ChatMessagePartTypeText,
					Text: `You are an expert nutritionist. Analyze the image of the food and extract the nutritional information, calories, and macros (protein, carbs, fat). Return the data as a JSON object with the keys "foodName", "calories" and "macros" ("protein", "carb", "fat" in grams).`,
				},
				{
					Type:     openai.ChatMessagePartTypeImageURL,
					ImageURL: &openai.ChatMessageImageURL{URL: in.PhotoDataURI},
				},
			},
		}},
		ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatTypeJSONObject},
	}

	out, err := c.complete(ctx, "scan_food", req)
	if err != nil {
		return nil, err
	}

	scan := &models.FoodScan{}
	if err := json.Unmarshal([]byte(out), scan); err != nil {
		logger.Log.WithError(err).Warn("Food scan returned non-JSON content")
		scan = &models.FoodScan{}
	}
	scan.Raw = out
	return scan, nil
}

// Chat answers the next user message given the previous turns.
func (c *Client) Chat(ctx context.Context, in models.ChatInput) (*models.ChatReply, error) {
	messages := []openai.ChatCompletionMessage{{Role: openai.ChatMessageRoleSystem, Content: chatPersona}}
	for _, turn := range in.History {
		role := openai.ChatMessageRoleUser
		if turn.Role == "model" {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: turn.Content})
	}
	messages = append(messages, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: in.Message})

	out, err := c.complete(ctx, "chatbot", openai.ChatCompletionRequest{Messages: messages})
	if err != nil {
		return nil, err
	}
	if out == "" {
		out = chatFallback
	}
	return &models.ChatReply{Message: out}, nil
}
