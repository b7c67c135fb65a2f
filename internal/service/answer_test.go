package service

import (
	"edu_eval_backend/internal/model"
	"edu_eval_backend/internal/util"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAnswer(t *testing.T) {
	single := question(1, model.SingleChoice, model.AudienceStudent, "")
	multi := question(2, model.MultipleChoice, model.AudienceStudent, "")
	text := question(3, model.TextQuestion, model.AudienceStudent, "")
	numeric := question(4, model.NumericQuestion, model.AudienceStudent, "")

	tests := []struct {
		name string
		q    model.Question
		raw  string
		want AnswerValue
	}{
		{"single scalar", single, `"A"`, Single("A")},
		{"multiple array", multi, `["B","C"]`, Multiple("B", "C")},
		{"multiple scalar is wrapped", multi, `"B"`, Multiple("B")},
		{"nulls dropped", multi, `["B",null,"C"]`, Multiple("B", "C")},
		{"empty strings kept", multi, `["", "C"]`, Multiple("", "C")},
		{"empty array", multi, `[]`, Multiple()},
		{"null single", text, `null`, AnswerValue{Kind: AnswerSingle}},
		{"empty text kept", text, `""`, Single("")},
		{"numeric number", numeric, `4.5`, Single("4.5")},
		{"numeric string", numeric, `"7"`, Single("7")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeAnswer(tt.q, json.RawMessage(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want.Kind, got.Kind)
			assert.ElementsMatch(t, tt.want.Values, got.Values)
		})
	}
}

func TestDecodeAnswerRejectsWrongShape(t *testing.T) {
	tests := []struct {
		name string
		q    model.Question
		raw  string
	}{
		{"array to single choice", question(1, model.SingleChoice, model.AudienceStudent, ""), `["A","B"]`},
		{"array to text", question(3, model.TextQuestion, model.AudienceStudent, ""), `["x"]`},
		{"number to text", question(3, model.TextQuestion, model.AudienceStudent, ""), `12`},
		{"object", question(2, model.MultipleChoice, model.AudienceStudent, ""), `{"a":1}`},
		{"bool in array", question(2, model.MultipleChoice, model.AudienceStudent, ""), `[true]`},
		{"non-numeric string", question(4, model.NumericQuestion, model.AudienceStudent, ""), `"many"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeAnswer(tt.q, json.RawMessage(tt.raw))
			require.Error(t, err)
			assert.True(t, util.IsValidationError(err))
		})
	}
}

func TestDecodeAnswerUnknownStoredType(t *testing.T) {
	q := question(5, model.QuestionType("ranking"), model.AudienceStudent, "")

	_, err := DecodeAnswer(q, json.RawMessage(`"A"`))
	require.Error(t, err)
	assert.True(t, util.IsPersistenceError(err))
	assert.ErrorIs(t, err, util.ErrUnknownQuestionType)
}
