package token

import "github.com/julianshen/apiview/internal/decl"

// classification lists every display-part kind explicitly. Adding a PartKind
// without an entry here fails TestClassifyIsExhaustive.
var classification = map[decl.PartKind]Kind{
	decl.PartTypeParameterName: TypeName,
	decl.PartAliasName:         TypeName,
	decl.PartAssemblyName:      TypeName,
	decl.PartClassName:         TypeName,
	decl.PartDelegateName:      TypeName,
	decl.PartEnumName:          TypeName,
	decl.PartErrorTypeName:     TypeName,
	decl.PartInterfaceName:     TypeName,
	decl.PartStructName:        TypeName,

	decl.PartKeyword:       Keyword,
	decl.PartLineBreak:     Newline,
	decl.PartStringLiteral: StringLiteral,
	decl.PartPunctuation:   Punctuation,
	decl.PartSpace:         Whitespace,

	decl.PartPropertyName:        MemberName,
	decl.PartEventName:           MemberName,
	decl.PartFieldName:           MemberName,
	decl.PartMethodName:          MemberName,
	decl.PartOperator:            MemberName,
	decl.PartEnumMemberName:      MemberName,
	decl.PartExtensionMethodName: MemberName,
	decl.PartConstantName:        MemberName,

	decl.PartLabelName:              Text,
	decl.PartNumericLiteral:         Text,
	decl.PartLocalName:              Text,
	decl.PartModuleName:             Text,
	decl.PartNamespaceName:          Text,
	decl.PartParameterName:          Text,
	decl.PartAnonymousTypeIndicator: Text,
	decl.PartText:                   Text,
	decl.PartRangeVariableName:      Text,
}

// Classify maps a display-part kind to the token kind it is emitted as.
// Unknown kinds classify as Text.
func Classify(k decl.PartKind) Kind {
	if kind, ok := classification[k]; ok {
		return kind
	}
	return Text
}

// classified reports whether k has an explicit classification entry.
func classified(k decl.PartKind) bool {
	_, ok := classification[k]
	return ok
}
