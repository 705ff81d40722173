package shimfile

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"

	"github.com/wanderpoints/platshim/internal/platform"
)

var osFs = afero.NewOsFs()

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("yaml"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("platform", func(fl validator.FieldLevel) bool {
			return platform.Known(platform.Platform(fl.Field().String()))
		})
		_ = v.RegisterValidation("semverconstraint", func(fl validator.FieldLevel) bool {
			_, err := semver.NewConstraint(fl.Field().String())
			return err == nil
		})
		validate = v
	})
	return validate
}

// CheckRules runs the semantic checks on a parsed table: field rules and
// one rule per (platform, module) pair.
func CheckRules(f *File) []ValidationIssue {
	var issues []ValidationIssue

	if err := getValidator().Struct(f); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return []ValidationIssue{{Message: err.Error()}}
		}
		for _, fe := range verrs {
			issues = append(issues, ValidationIssue{
				Path:    namespaceToPath(fe.Namespace()),
				Message: fieldMessage(fe),
				Keyword: fe.Tag(),
			})
		}
	}

	seen := make(map[string]int)
	for i, r := range f.Rules {
		key := r.Platform + "|" + r.Module
		if first, ok := seen[key]; ok {
			issues = append(issues, ValidationIssue{
				Path:    fmt.Sprintf("/rules/%d", i),
				Message: fmt.Sprintf("duplicate rule for %s on %s (first at /rules/%d)", r.Module, r.Platform, first),
				Keyword: "unique",
			})
			continue
		}
		seen[key] = i
	}
	return issues
}

// namespaceToPath turns "File.rules[0].platform" into "/rules/0/platform".
func namespaceToPath(ns string) string {
	if i := strings.Index(ns, "."); i >= 0 {
		ns = ns[i+1:]
	}
	ns = strings.NewReplacer("[", "/", "]", "", ".", "/").Replace(ns)
	return "/" + ns
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "platform":
		return fmt.Sprintf("unknown platform %q (want one of %v)", fe.Value(), platform.All())
	case "semverconstraint":
		return fmt.Sprintf("invalid semver constraint %q", fe.Value())
	case "eq":
		return fmt.Sprintf("%s must be %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed %q check", fe.Field(), fe.Tag())
	}
}
