package editor

// Clipboard provides editor-level clipboard integration.
//
// Errors are ignored by the editor; hosts surface them if they care.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(s string) error
}
