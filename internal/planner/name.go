package planner

import (
	"fmt"
	"regexp"

	apperrors "github.com/hyhieu/easy-pybind/internal/errors"
)

// Identifier regex shared by C++ and Python, which is also a safe path segment.
var identifierRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateModuleName checks that name can be used both as a directory name and
// as an identifier in every generated file.
func ValidateModuleName(name string) error {
	if name == "" {
		return apperrors.NewInvalidModuleNameError(name, "is empty")
	}

	if !identifierRegex.MatchString(name) {
		for i, r := range name {
			if i == 0 && r >= '0' && r <= '9' {
				return apperrors.NewInvalidModuleNameError(name, "must not start with a digit")
			}
			if !isIdentRune(r) {
				return apperrors.NewInvalidModuleNameError(name, fmt.Sprintf("contains invalid character %q", r))
			}
		}
		return apperrors.NewInvalidModuleNameError(name, "is not an identifier")
	}

	if isReservedWord(name) {
		return apperrors.NewInvalidModuleNameError(name, "is a reserved word in C++ or Python")
	}

	return nil
}

func isIdentRune(r rune) bool {
	return r == '_' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9'
}

// isReservedWord checks if a name is a Python or C++ keyword.
func isReservedWord(name string) bool {
	reserved := map[string]bool{
		// Python
		"False": true, "None": true, "True": true, "and": true, "as": true,
		"assert": true, "async": true, "await": true, "break": true, "class": true,
		"continue": true, "def": true, "del": true, "elif": true, "else": true,
		"except": true, "finally": true, "for": true, "from": true, "global": true,
		"if": true, "import": true, "in": true, "is": true, "lambda": true,
		"nonlocal": true, "not": true, "or": true, "pass": true, "raise": true,
		"return": true, "try": true, "while": true, "with": true, "yield": true,

		// C++
		"alignas": true, "alignof": true, "auto": true, "bool": true, "case": true,
		"catch": true, "char": true, "const": true, "constexpr": true, "default": true,
		"delete": true, "do": true, "double": true, "enum": true, "explicit": true,
		"export": true, "extern": true, "false": true, "float": true, "friend": true,
		"goto": true, "inline": true, "int": true, "long": true, "mutable": true,
		"namespace": true, "new": true, "noexcept": true, "nullptr": true, "operator": true,
		"private": true, "protected": true, "public": true, "register": true, "short": true,
		"signed": true, "sizeof": true, "static": true, "struct": true, "switch": true,
		"template": true, "this": true, "throw": true, "true": true, "typedef": true,
		"typename": true, "union": true, "unsigned": true, "using": true, "virtual": true,
		"void": true, "volatile": true,
	}
	return reserved[name]
}
