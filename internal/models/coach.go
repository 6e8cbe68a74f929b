package models

import "time"

type Coach struct {
	ID             string    `bson:"_id" json:"id"`
	UserID         string    `bson:"user_id" json:"userId"`
	FullName       string    `bson:"full_name" json:"fullName"`
	Email          string    `bson:"email" json:"email"`
	Specialty      string    `bson:"specialty" json:"specialty"`
	Bio            string    `bson:"bio" json:"bio"`
	Certifications string    `bson:"certifications" json:"certifications"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
}

type CoachInput struct {
	FullName       string `json:"fullName" validate:"required,max=120"`
	Specialty      string `json:"specialty" validate:"required,max=120"`
	Bio            string `json:"bio" validate:"max=2000"`
	Certifications string `json:"certifications" validate:"max=1000"`
}

// LiveClass is a scheduled session hosted by a coach.
type LiveClass struct {
	ID             string    `bson:"_id" json:"id"`
	Title          string    `bson:"title" json:"title"`
	InstructorName string    `bson:"instructor_name" json:"instructorName"`
	InstructorID   string    `bson:"instructor_id" json:"instructorId"`
	CoachDocID     string    `bson:"coach_doc_id" json:"coachDocId"`
	Time           string    `bson:"time" json:"time"`
	Duration       string    `bson:"duration" json:"duration"`
	Category       string    `bson:"category" json:"category"`
	Image          string    `bson:"image,omitempty" json:"image,omitempty"`
	MeetLink       string    `bson:"meet_link" json:"meetLink"`
	StartAt        time.Time `bson:"start_at" json:"startAt"`
	CreatedAt      time.Time `bson:"created_at" json:"createdAt"`
}

type LiveClassInput struct {
	Title    string    `json:"title" validate:"required,max=120"`
	Category string    `json:"category" validate:"required,max=60"`
	Duration string    `json:"duration" validate:"required,max=40"`
	MeetLink string    `json:"meetLink" validate:"required,url"`
	StartAt  time.Time `json:"startAt" validate:"required"`
}
