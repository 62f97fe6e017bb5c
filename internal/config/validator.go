package config

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"

	cneerrors "github.com/LUX-YU/cmake-node-editor/pkg/errors"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		validateInst = validator.New()
	})
	return validateInst
}

// ValidateConfig checks a settings document after defaults are applied.
func ValidateConfig(settings Settings) error {
	if err := validatorInstance().Struct(settings); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			first := fieldErrs[0]
			return cneerrors.NewValidationError(
				first.Namespace(),
				fmt.Sprintf("failed %q constraint", first.Tag()), err)
		}
		return cneerrors.NewValidationError("settings", err.Error(), err)
	}
	return nil
}
