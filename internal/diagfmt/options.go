package diagfmt

// PrettyOpts: вывод для человека.
type PrettyOpts struct {
	Color    bool
	PathMode PathMode
	Context  int8  // строк контекста вокруг первичной
	Width    uint8 // 0 - без ограничения

	ShowNotes   bool
	ShowFixes   bool
	ShowPreview bool // показать текст после применения fix
}

// JSONOpts: машинный вывод.
type JSONOpts struct {
	PathMode         PathMode
	IncludePositions bool // line/col рядом с байтовыми offset
	Max              int  // режет только вывод; Bag не трогается

	IncludeNotes    bool
	IncludeFixes    bool
	IncludePreviews bool
}
