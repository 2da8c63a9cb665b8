package config

import (
	"os"
	"strings"

	"github.com/aleister1102/screendiff/internal/errorwrapper"
	"github.com/go-playground/validator/v10"
)

// ValidateConfig performs validation on the GlobalConfig structure.
// Any violation maps to ErrInvalidConfiguration and aborts the run before
// any filesystem or browser work starts.
func ValidateConfig(cfg *GlobalConfig) error {
	validate := newValidator()

	if err := validate.Struct(cfg); err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
			first := validationErrors[0]
			return errorwrapper.NewValidationError(first.Namespace(), first.Value(), "failed rule '"+first.Tag()+"'")
		}
		return errorwrapper.WrapSentinel(errorwrapper.ErrInvalidConfiguration, err, "config validation failed")
	}

	return nil
}

// ValidateCompareConfig validates just the comparison section, used when the
// directories come from flags rather than a config file.
func ValidateCompareConfig(cfg *CompareConfig) error {
	if cfg.BaselineDir == "" {
		return errorwrapper.NewValidationError("baseline_dir", cfg.BaselineDir, "baseline directory is required")
	}
	if cfg.NewDir == "" {
		return errorwrapper.NewValidationError("new_dir", cfg.NewDir, "new directory is required")
	}
	return nil
}

func newValidator() *validator.Validate {
	validate := validator.New()

	// Directory path existence (basic check)
	_ = validate.RegisterValidation("dirpath", func(fl validator.FieldLevel) bool {
		dirPath := fl.Field().String()
		if dirPath == "" {
			return true // Optional field
		}
		info, err := os.Stat(dirPath)
		if os.IsNotExist(err) {
			return false
		}
		return err == nil && info.IsDir()
	})

	// Log level
	_ = validate.RegisterValidation("loglevel", func(fl validator.FieldLevel) bool {
		level := strings.ToLower(fl.Field().String())
		switch level {
		case "", "trace", "debug", "info", "warn", "error", "fatal", "panic":
			return true
		default:
			return false
		}
	})

	// Log format
	_ = validate.RegisterValidation("logformat", func(fl validator.FieldLevel) bool {
		format := strings.ToLower(fl.Field().String())
		switch format {
		case "", "console", "text", "json":
			return true
		default:
			return false
		}
	})

	// Run mode
	_ = validate.RegisterValidation("runmode", func(fl validator.FieldLevel) bool {
		mode := strings.ToLower(fl.Field().String())
		switch mode {
		case "", "compare", "capture":
			return true
		default:
			return false
		}
	})

	// Mouse button of a click step
	_ = validate.RegisterValidation("mousebutton", func(fl validator.FieldLevel) bool {
		button := strings.ToLower(fl.Field().String())
		switch button {
		case "", "left", "right", "middle":
			return true
		default:
			return false
		}
	})

	return validate
}
