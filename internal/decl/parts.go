package decl

// PartKind is the category of one display part.
type PartKind int

const (
	PartAliasName PartKind = iota
	PartAssemblyName
	PartClassName
	PartDelegateName
	PartEnumName
	PartErrorTypeName
	PartEventName
	PartFieldName
	PartInterfaceName
	PartKeyword
	PartLabelName
	PartLineBreak
	PartNumericLiteral
	PartStringLiteral
	PartLocalName
	PartMethodName
	PartModuleName
	PartNamespaceName
	PartOperator
	PartParameterName
	PartPropertyName
	PartPunctuation
	PartSpace
	PartStructName
	PartAnonymousTypeIndicator
	PartText
	PartTypeParameterName
	PartRangeVariableName
	PartEnumMemberName
	PartExtensionMethodName
	PartConstantName

	numPartKinds
)

var partKindNames = [numPartKinds]string{
	"AliasName", "AssemblyName", "ClassName", "DelegateName", "EnumName", "ErrorTypeName",
	"EventName", "FieldName", "InterfaceName", "Keyword", "LabelName", "LineBreak",
	"NumericLiteral", "StringLiteral", "LocalName", "MethodName", "ModuleName",
	"NamespaceName", "Operator", "ParameterName", "PropertyName", "Punctuation", "Space",
	"StructName", "AnonymousTypeIndicator", "Text", "TypeParameterName", "RangeVariableName",
	"EnumMemberName", "ExtensionMethodName", "ConstantName",
}

func (k PartKind) String() string {
	if k < 0 || k >= numPartKinds {
		return "Unknown"
	}
	return partKindNames[k]
}

// PartKinds returns every defined part kind in declaration order.
func PartKinds() []PartKind {
	kinds := make([]PartKind, numPartKinds)
	for i := range kinds {
		kinds[i] = PartKind(i)
	}
	return kinds
}

// Part is one classified fragment of a declaration's display text. Symbol is
// the declaration the fragment names, if any.
type Part struct {
	Kind   PartKind
	Text   string
	Symbol Symbol
}

// PartsString concatenates the text of parts.
func PartsString(parts []Part) string {
	n := 0
	for _, p := range parts {
		n += len(p.Text)
	}
	buf := make([]byte, 0, n)
	for _, p := range parts {
		buf = append(buf, p.Text...)
	}
	return string(buf)
}
