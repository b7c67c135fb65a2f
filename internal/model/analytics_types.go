package model

import "time"

// Period is a calendar window [Start, End).
type Period struct {
	Name  string    `json:"name"`
	Key   string    `json:"key"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// RatingBucket is one bar of the 1-10 rating histogram.
type RatingBucket struct {
	Rating     int `json:"rating"`
	Count      int `json:"count"`
	Percentage int `json:"percentage"`
}

type TrendDirection string

const (
	TrendUp     TrendDirection = "up"
	TrendDown   TrendDirection = "down"
	TrendStable TrendDirection = "stable"
)

type Trend struct {
	Direction   TrendDirection `json:"direction"`
	Magnitude   int            `json:"magnitude"`
	Description string         `json:"description"`
}

// FeedbackAnalytics is the dashboard payload for one professor/subject/period.
type FeedbackAnalytics struct {
	Period          Period         `json:"period"`
	Records         []Feedback     `json:"records"`
	Average         float64        `json:"average"`
	PreviousAverage float64        `json:"previousAverage"`
	Distribution    []RatingBucket `json:"distribution"`
	Trend           Trend          `json:"trend"`
}

// QuestionView is a catalog question with its stage name and options resolved.
// Options is nil for non-choice questions.
type QuestionView struct {
	ID          uint         `json:"id"`
	Title       string       `json:"title"`
	Description *string      `json:"description"`
	Type        QuestionType `json:"type"`
	Required    bool         `json:"required"`
	Audience    Audience     `json:"audience"`
	StageID     *uint        `json:"stageId"`
	StageName   string       `json:"stageName"`
	Options     []string     `json:"options"`
}

// QuestionGroup is the questions of one stage, in catalog order.
type QuestionGroup struct {
	Stage     string         `json:"stage"`
	Questions []QuestionView `json:"questions"`
}

// ValueCount is how often one stored value was given for a question.
type ValueCount struct {
	Value      string `json:"value"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// QuestionSummary aggregates the stored responses of one question.
type QuestionSummary struct {
	Question      QuestionView `json:"question"`
	ResponseCount int          `json:"responseCount"`
	Values        []ValueCount `json:"values"`
	Average       *float64     `json:"average,omitempty"`
}

type StageSummary struct {
	Stage     string            `json:"stage"`
	Questions []QuestionSummary `json:"questions"`
}

// ResponseSummary is the stored responses of an audience recombined by stage.
type ResponseSummary struct {
	Period   Period         `json:"period"`
	Audience Audience       `json:"audience"`
	Stages   []StageSummary `json:"stages"`
}

type QuestionOutcome string

const (
	OutcomeAccepted QuestionOutcome = "accepted"
	OutcomeSkipped  QuestionOutcome = "skipped"
)

// SubmissionResult reports what happened to every question of a submission.
type SubmissionResult struct {
	SubmissionID string `json:"submissionId"`
	Accepted     []uint `json:"accepted"`
	Skipped      []uint `json:"skipped"`
}
