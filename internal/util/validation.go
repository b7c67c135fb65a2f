package util

import (
	"edu_eval_backend/internal/model"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators installs the custom binding tags used by request structs.
func RegisterValidators() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("binding validator is not go-playground/validator")
			return
		}
		// Report request field names instead of Go struct field names.
		v.RegisterTagNameFunc(requestFieldName)
		if err := v.RegisterValidation("audience", func(fl validator.FieldLevel) bool {
			return model.Audience(fl.Field().String()).Valid()
		}); err != nil {
			registerErr = fmt.Errorf("register audience: %w", err)
			return
		}
		if err := v.RegisterValidation("period_key", func(fl validator.FieldLevel) bool {
			return ValidPeriodKey(fl.Field().String())
		}); err != nil {
			registerErr = fmt.Errorf("register period_key: %w", err)
		}
	})
	return registerErr
}

func requestFieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// ParsePeriodBounds splits "<RFC3339>_<RFC3339>" into its bounds, start before
// end. An empty key or AllTimeKey reports allTime with zero bounds.
func ParsePeriodBounds(key string) (start, end time.Time, allTime bool, err error) {
	key = strings.TrimSpace(key)
	if key == "" || key == AllTimeKey {
		return time.Time{}, time.Time{}, true, nil
	}

	parts := strings.SplitN(key, "_", 2)
	if len(parts) != 2 {
		return time.Time{}, time.Time{}, false, fmt.Errorf("%w: %q", ErrInvalidPeriodKey, key)
	}
	start, err = time.Parse(time.RFC3339, parts[0])
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("%w: start: %v", ErrInvalidPeriodKey, err)
	}
	end, err = time.Parse(time.RFC3339, parts[1])
	if err != nil {
		return time.Time{}, time.Time{}, false, fmt.Errorf("%w: end: %v", ErrInvalidPeriodKey, err)
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, false, fmt.Errorf("%w: start must precede end", ErrInvalidPeriodKey)
	}
	return start.UTC(), end.UTC(), false, nil
}

func ValidPeriodKey(key string) bool {
	_, _, _, err := ParsePeriodBounds(key)
	return err == nil
}
