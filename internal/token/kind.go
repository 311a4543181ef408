package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	Ident
	Number
	String
	// NoSubstTemplate is a template literal without substitutions: `abc`.
	NoSubstTemplate
	// TemplateHead is "`abc${".
	TemplateHead
	// TemplateMiddle is "}abc${".
	TemplateMiddle
	// TemplateTail is "}abc`".
	TemplateTail
	RegExp
	// Punct is any operator without a dedicated kind (+, &&, ===, ...).
	Punct

	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace
	Lt
	Gt
	Slash
	Assign
	Dot
	Ellipsis
	Comma
	Colon
	Question
	Semicolon
	Arrow

	JSXText
	JSXName
	JSXString
)

var kindNames = [...]string{
	Invalid:         "Invalid",
	EOF:             "EOF",
	Ident:           "Ident",
	Number:          "Number",
	String:          "String",
	NoSubstTemplate: "NoSubstTemplate",
	TemplateHead:    "TemplateHead",
	TemplateMiddle:  "TemplateMiddle",
	TemplateTail:    "TemplateTail",
	RegExp:          "RegExp",
	Punct:           "Punct",
	LParen:          "LParen",
	RParen:          "RParen",
	LBracket:        "LBracket",
	RBracket:        "RBracket",
	LBrace:          "LBrace",
	RBrace:          "RBrace",
	Lt:              "Lt",
	Gt:              "Gt",
	Slash:           "Slash",
	Assign:          "Assign",
	Dot:             "Dot",
	Ellipsis:        "Ellipsis",
	Comma:           "Comma",
	Colon:           "Colon",
	Question:        "Question",
	Semicolon:       "Semicolon",
	Arrow:           "Arrow",
	JSXText:         "JSXText",
	JSXName:         "JSXName",
	JSXString:       "JSXString",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
