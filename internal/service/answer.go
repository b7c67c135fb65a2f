package service

import (
	"bytes"
	"edu_eval_backend/internal/model"
	"edu_eval_backend/internal/util"
	"encoding/json"
	"fmt"
	"strconv"
)

type AnswerKind int

const (
	AnswerSingle AnswerKind = iota
	AnswerMultiple
)

// AnswerValue is a decoded answer. Values never contains nulls; it may be empty,
// in which case the question is skipped.
type AnswerValue struct {
	Kind   AnswerKind
	Values []string
}

func Single(value string) AnswerValue {
	return AnswerValue{Kind: AnswerSingle, Values: []string{value}}
}

func Multiple(values ...string) AnswerValue {
	return AnswerValue{Kind: AnswerMultiple, Values: values}
}

func (a AnswerValue) Empty() bool {
	return len(a.Values) == 0
}

var jsonNull = []byte("null")

// DecodeAnswer decodes raw according to the declared type of q.
// multiple_choice takes an array or a scalar, which is wrapped. Every other type
// takes a scalar; numeric questions also take a JSON number. A stored type the
// decoder does not know is a PersistenceError.
func DecodeAnswer(q model.Question, raw json.RawMessage) (AnswerValue, error) {
	if !q.Type.Valid() {
		return AnswerValue{}, util.NewPersistenceError(
			fmt.Sprintf("decode answer for question %d", q.ID),
			fmt.Errorf("%w %q", util.ErrUnknownQuestionType, q.Type),
		)
	}

	field := fmt.Sprintf("answers.%d", q.ID)
	raw = bytes.TrimSpace(raw)

	if q.Type == model.MultipleChoice {
		if len(raw) > 0 && raw[0] == '[' {
			var items []json.RawMessage
			if err := json.Unmarshal(raw, &items); err != nil {
				return AnswerValue{}, util.NewValidationError(field, "malformed array")
			}
			values := make([]string, 0, len(items))
			for _, item := range items {
				v, ok, err := decodeScalar(item, false)
				if err != nil {
					return AnswerValue{}, util.NewValidationError(field, "%v", err)
				}
				if ok {
					values = append(values, v)
				}
			}
			return Multiple(values...), nil
		}

		v, ok, err := decodeScalar(raw, false)
		if err != nil {
			return AnswerValue{}, util.NewValidationError(field, "%v", err)
		}
		if !ok {
			return Multiple(), nil
		}
		return Multiple(v), nil
	}

	if len(raw) > 0 && raw[0] == '[' {
		return AnswerValue{}, util.NewValidationError(field, "%s question takes a single value", q.Type)
	}

	numeric := q.Type == model.NumericQuestion
	v, ok, err := decodeScalar(raw, numeric)
	if err != nil {
		return AnswerValue{}, util.NewValidationError(field, "%v", err)
	}
	if !ok {
		return AnswerValue{Kind: AnswerSingle}, nil
	}
	if numeric && v != "" {
		if _, err := strconv.ParseFloat(v, 64); err != nil {
			return AnswerValue{}, util.NewValidationError(field, "%q is not a number", v)
		}
	}
	return Single(v), nil
}

// decodeScalar returns ok=false for an absent or null value.
func decodeScalar(raw json.RawMessage, allowNumber bool) (string, bool, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, jsonNull) {
		return "", false, nil
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false, fmt.Errorf("malformed string")
		}
		return s, true, nil
	case '{', '[', 't', 'f':
		return "", false, fmt.Errorf("unsupported value %s", raw)
	}

	if !allowNumber {
		return "", false, fmt.Errorf("expected a string, got %s", raw)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", false, fmt.Errorf("malformed number")
	}
	return n.String(), true, nil
}
