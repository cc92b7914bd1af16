package decl

// Qualification controls how much of a type's enclosing scope is printed.
type Qualification int

const (
	NameOnly Qualification = iota
	NameAndContainingTypes
	NameAndContainingTypesAndNamespaces
)

// GenericsOptions select what is shown for generic declarations.
type GenericsOptions uint8

const (
	IncludeTypeParameters GenericsOptions = 1 << iota
	IncludeTypeConstraints
	IncludeVariance
)

// MemberOptions select what is shown for members.
type MemberOptions uint16

const (
	IncludeContainingType MemberOptions = 1 << iota
	IncludeParameters
	IncludeType
	IncludeModifiers
	IncludeAccessibility
	IncludeConstantValue
)

// ParameterOptions select what is shown for each parameter.
type ParameterOptions uint8

const (
	ParamType ParameterOptions = 1 << iota
	ParamName
	ParamDefaultValue
	ParamModifiers
	ParamExtensionThis
	// ParamRefMarker appends @ to the type of ref, out and in parameters so
	// overloads differing only by reference passing stay distinct.
	ParamRefMarker
)

// KindOptions select declaration keywords.
type KindOptions uint8

const (
	IncludeMemberKeyword KindOptions = 1 << iota
	IncludeTypeKeyword
)

// MiscOptions are miscellaneous switches.
type MiscOptions uint8

const (
	UseSpecialTypes MiscOptions = 1 << iota
	EscapeKeywordIdentifiers
	IncludeBaseList
)

// PropertyStyle controls how properties are rendered.
type PropertyStyle int

const (
	PropertyNameOnly PropertyStyle = iota
	PropertyReadWriteDescriptor
)

// DelegateStyle controls how delegate types are rendered.
type DelegateStyle int

const (
	DelegateNameOnly DelegateStyle = iota
	DelegateNameAndParameters
	DelegateNameAndSignature
)

// Format is a formatting profile handed to a Provider by value. Two
// profiles are in common use: one producing canonical ids and one producing
// the human readable declaration text. The constructors below return a
// fresh copy on every call.
type Format struct {
	Qualification Qualification
	Generics      GenericsOptions
	Members       MemberOptions
	Parameters    ParameterOptions
	Kinds         KindOptions
	Misc          MiscOptions
	Properties    PropertyStyle
	Delegates     DelegateStyle
}

func (o GenericsOptions) Has(f GenericsOptions) bool   { return o&f != 0 }
func (o MemberOptions) Has(f MemberOptions) bool       { return o&f != 0 }
func (o ParameterOptions) Has(f ParameterOptions) bool { return o&f != 0 }
func (o KindOptions) Has(f KindOptions) bool           { return o&f != 0 }
func (o MiscOptions) Has(f MiscOptions) bool           { return o&f != 0 }

// IDFormat produces canonical ids: fully qualified names with type
// parameters and, for members, the containing type and parameter types.
// Parameter names, return types and modifiers are left out so the id
// survives reformatting and recompilation.
func IDFormat() Format {
	return Format{
		Qualification: NameAndContainingTypesAndNamespaces,
		Generics:      IncludeTypeParameters,
		Members:       IncludeContainingType | IncludeParameters,
		Parameters:    ParamType | ParamRefMarker,
		Properties:    PropertyNameOnly,
		Delegates:     DelegateNameAndParameters,
	}
}

// DisplayFormat produces the declaration text shown to reviewers.
func DisplayFormat() Format {
	return Format{
		Qualification: NameOnly,
		Generics:      IncludeTypeParameters | IncludeTypeConstraints | IncludeVariance,
		Members: IncludeParameters | IncludeType | IncludeModifiers |
			IncludeAccessibility | IncludeConstantValue,
		Parameters: ParamType | ParamName | ParamDefaultValue | ParamModifiers | ParamExtensionThis,
		Kinds:      IncludeMemberKeyword | IncludeTypeKeyword,
		Misc:       UseSpecialTypes | EscapeKeywordIdentifiers | IncludeBaseList,
		Properties: PropertyReadWriteDescriptor,
		Delegates:  DelegateNameAndSignature,
	}
}

// MinimalFormat produces short type names for navigation entries.
func MinimalFormat() Format {
	return Format{
		Qualification: NameOnly,
		Generics:      IncludeTypeParameters,
		Misc:          UseSpecialTypes,
		Delegates:     DelegateNameOnly,
	}
}
