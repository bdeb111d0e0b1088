package models

import "time"

// FeedbackStatusNew is the status every submission starts in.
const FeedbackStatusNew = "new"

// Feedback is a rating and message left by a customer.
type Feedback struct {
	ID          string    `bson:"id" json:"id"`
	UserID      string    `bson:"userId" json:"userId"`
	UserName    string    `bson:"userName,omitempty" json:"userName,omitempty"`
	UserEmail   string    `bson:"userEmail,omitempty" json:"userEmail,omitempty"`
	Rating      int       `bson:"rating" json:"rating"`
	Category    string    `bson:"category" json:"category"`
	Subject     string    `bson:"subject" json:"subject"`
	Message     string    `bson:"message" json:"message"`
	SubmittedAt time.Time `bson:"submittedAt" json:"submittedAt"`
	Status      string    `bson:"status" json:"status"`
	AdminNote   string    `bson:"adminNote" json:"adminNote"`
}

// FeedbackRequest is the customer submission payload.
type FeedbackRequest struct {
	Category string `json:"category"`
	Subject  string `json:"subject"`
	Message  string `json:"message"`
	Rating   int    `json:"rating"`
}

// FeedbackReviewRequest is the staff triage payload.
type FeedbackReviewRequest struct {
	Status    string `json:"status"`
	AdminNote string `json:"adminNote"`
}
