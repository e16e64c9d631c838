package validator

// Error codes emitted by the built-in rules.
const (
	CodeRequired  = "validation.required"
	CodeInvalid   = "validation.invalid"
	CodeEmail     = "validation.email"
	CodeURL       = "validation.url"
	CodePattern   = "validation.regex_pattern"
	CodeTag       = "validation.tag"
	CodeMinLength = "validation.min_length"
	CodeMaxLength = "validation.max_length"
	CodeRange     = "validation.range"
	CodeMinDate   = "validation.min_date"
	CodeMaxDate   = "validation.max_date"
	CodeInList    = "validation.in_list"
	CodeNotEqual  = "validation.not_equal"
	CodeSameAs    = "validation.same_as"
	CodeUnique    = "validation.unique"
)
