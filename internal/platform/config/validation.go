package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var configValidator = validator.New(validator.WithRequiredStructEnabled())

// Validate revisa la config completa y junta todos los problemas en un solo error.
func (c *Config) Validate() error {
	err := configValidator.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("config inválida: %w", err)
	}

	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		problems = append(problems, describe(fe))
	}
	return fmt.Errorf("config inválida: %s", strings.Join(problems, "; "))
}

func describe(fe validator.FieldError) string {
	key := configKey(fe.Namespace())
	param := fe.Param()

	switch fe.Tag() {
	case "required":
		return key + " es obligatorio"
	case "required_with":
		return fmt.Sprintf("%s es obligatorio si se define %s", key, strings.ToLower(param))
	case "min":
		return fmt.Sprintf("%s debe ser >= %s", key, param)
	case "max":
		return fmt.Sprintf("%s debe ser <= %s", key, param)
	case "gtefield":
		return fmt.Sprintf("%s debe ser >= %s", key, strings.ToLower(param))
	case "oneof":
		return fmt.Sprintf("%s debe ser uno de [%s]", key, param)
	}
	return fmt.Sprintf("%s no cumple %q", key, fe.Tag())
}

// configKey: "Config.Server.Port" -> "server.port".
func configKey(ns string) string {
	_, rest, found := strings.Cut(ns, ".")
	if !found {
		rest = ns
	}
	return strings.ToLower(rest)
}
