package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                  Code = 1000
	LexUnknownChar           Code = 1001
	LexUnterminatedString    Code = 1002
	LexUnterminatedComment   Code = 1003
	LexUnterminatedTemplate  Code = 1004
	LexUnterminatedRegExp    Code = 1005
	LexUnterminatedJSXString Code = 1006

	// Парсерные
	SynInfo                  Code = 2000
	SynUnexpectedToken       Code = 2001
	SynUnclosedElement       Code = 2002
	SynMismatchedClosingTag  Code = 2003
	SynUnclosedBrace         Code = 2004
	SynExpectAttributeValue  Code = 2005
	SynExpectTagName         Code = 2006
	SynUnexpectedClosingTag  Code = 2007
	SynUnexpectedEndOfMarkup Code = 2008

	// styleName pass
	StyInfo               Code = 4000
	StyLiteralStyleName   Code = 4001
	StyEmptyInitializer   Code = 4002
	StyDuplicateStyleName Code = 4003

	IOInfo          Code = 5000
	IOLoadFileError Code = 5001
	IOWriteError    Code = 5002
	IOCacheError    Code = 5003

	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:              "Unknown error",
		LexInfo:                  "Lexical information",
		LexUnknownChar:           "Unknown character",
		LexUnterminatedString:    "Unterminated string literal",
		LexUnterminatedComment:   "Unterminated block comment",
		LexUnterminatedTemplate:  "Unterminated template literal",
		LexUnterminatedRegExp:    "Unterminated regular expression",
		LexUnterminatedJSXString: "Unterminated attribute string",
		SynInfo:                  "Syntax information",
		SynUnexpectedToken:       "Unexpected token",
		SynUnclosedElement:       "Element is never closed",
		SynMismatchedClosingTag:  "Closing tag does not match opening tag",
		SynUnclosedBrace:         "Unclosed expression container",
		SynExpectAttributeValue:  "Expected attribute value",
		SynExpectTagName:         "Expected tag name",
		SynUnexpectedClosingTag:  "Unexpected closing tag",
		SynUnexpectedEndOfMarkup: "Unexpected end of markup",
		StyInfo:                  "styleName information",
		StyLiteralStyleName:      "styleName attribute is string literal",
		StyEmptyInitializer:      "styleName initializer expression is empty",
		StyDuplicateStyleName:    "styleName attribute given more than once",
		IOInfo:                   "I/O information",
		IOLoadFileError:          "I/O load file error",
		IOWriteError:             "I/O write error",
		IOCacheError:             "Cache error",
		ObsInfo:                  "Observability information",
		ObsTimings:               "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("STY%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
