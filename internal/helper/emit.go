package helper

// Name is the reserved identifier of the helper in emitted code.
const Name = "checkAndJoinStyleName"

// EmitHelper describes a declaration the emitter writes at most once at the
// top of a file that requested it.
type EmitHelper struct {
	Name string
	// Scoped helpers belong to an enclosing function; unscoped ones go to
	// the top level of the file.
	Scoped bool
	// Priority orders helpers in the output, lower first.
	Priority int
	Text     string
}

const styleNameSource = `function checkAndJoinStyleName(styleName) {
  if (styleName === undefined) {
    throw new Error('stylename is undefined');
  }
  if (!Array.isArray(styleName)) {
    return styleName;
  }
  for (const el of styleName) {
    if (el === undefined) {
      throw new Error('one of stylenames is undefined');
    }
  }
  return styleName.join(' ');
}`

// StyleNameHelper is the helper every rewritten attribute group requests.
var StyleNameHelper = EmitHelper{
	Name:   Name,
	Scoped: false,
	Text:   styleNameSource,
}

// Source returns the exact source text of the default implementation.
func Source() string {
	return styleNameSource
}
