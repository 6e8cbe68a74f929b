package models

import "time"

type FoodLogEntry struct {
	ID        string    `bson:"_id" json:"id"`
	UserID    string    `bson:"user_id" json:"userId"`
	FoodName  string    `bson:"food_name" json:"foodName"`
	Calories  float64   `bson:"calories" json:"calories"`
	Protein   float64   `bson:"protein" json:"protein"`
	Carb      float64   `bson:"carb" json:"carb"`
	Fat       float64   `bson:"fat" json:"fat"`
	ScannedAt time.Time `bson:"scanned_at" json:"scannedAt"`
}

type FoodLogInput struct {
	FoodName string  `json:"foodName" validate:"required,max=120"`
	Calories float64 `json:"calories" validate:"gte=0"`
	Protein  float64 `json:"protein" validate:"gte=0"`
	Carb     float64 `json:"carb" validate:"gte=0"`
	Fat      float64 `json:"fat" validate:"gte=0"`
}
