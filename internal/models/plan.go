package models

type WorkoutPlanInput struct {
	GoalType   string `json:"goalType" validate:"required,max=100"`
	Difficulty string `json:"difficulty" validate:"required,max=40"`
	DietPref   string `json:"dietPref,omitempty" validate:"max=100"`
}

type WorkoutPlan struct {
	WorkoutPlan string `json:"workoutPlan"`
}

type MealPlanInput struct {
	DietPref string `json:"dietPref" validate:"required,max=100"`
	GoalType string `json:"goalType" validate:"required,max=100"`
}

type MealPlan struct {
	MealPlan string `json:"mealPlan"`
}

type ScanFoodInput struct {
	PhotoDataURI string `json:"photoDataUri" validate:"required,datauri"`
}

type Macros struct {
	Protein float64 `json:"protein"`
	Carb    float64 `json:"carb"`
	Fat     float64 `json:"fat"`
}

type FoodScan struct {
	FoodName string  `json:"foodName"`
	Calories float64 `json:"calories"`
	Macros   Macros  `json:"macros"`
	Raw      string  `json:"raw"`
}

// ChatTurn is one message of chatbot history.
type ChatTurn struct {
	Role    string `json:"role" validate:"oneof=user model"`
	Content string `json:"content" validate:"required"`
}

type ChatInput struct {
	History []ChatTurn `json:"history,omitempty" validate:"max=50,dive"`
	Message string     `json:"message" validate:"required,max=4000"`
}

type ChatReply struct {
	Message string `json:"message"`
}
