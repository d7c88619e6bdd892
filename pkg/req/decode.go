package req

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Decode читает JSON тело запроса и проверяет теги validate
func Decode[T any](body io.Reader) (T, error) {
	var payload T

	if err := render.DecodeJSON(body, &payload); err != nil {
		if errors.Is(err, io.EOF) {
			return payload, errors.New("empty request body")
		}
		return payload, fmt.Errorf("invalid request body: %w", err)
	}

	if err := validate.Struct(payload); err != nil {
		return payload, err
	}

	return payload, nil
}
