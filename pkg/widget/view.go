package widget

// Sender identifies who authored a transcript message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is one rendered transcript bubble.
type Message struct {
	Text      string
	Sender    Sender
	Timestamp string
}

// Indicator is a handle on a rendered typing indicator.
type Indicator interface {
	// Attached reports whether the indicator is still part of the transcript.
	Attached() bool
	// Remove detaches the indicator. Removing twice is harmless.
	Remove()
}

// Transcript is the message container.
type Transcript interface {
	AppendMessage(Message)
	AppendIndicator() Indicator
	ScrollToBottom()
}

// Input is the text field the user types into.
type Input interface {
	Value() string
	SetValue(string)
}

// StatusLine shows the outcome of the latest upload attempt.
type StatusLine interface {
	SetStatus(text, color string)
}

// DropTarget is the region accepting dropped files.
type DropTarget interface {
	SetBorderColor(color string)
}

// FilePicker opens the native file chooser. The selection comes back later as
// a Change event on TargetFileInput.
type FilePicker interface {
	Open()
}

// Elements are the view handles resolved once when the widget is mounted.
type Elements struct {
	Transcript Transcript
	Input      Input
	Status     StatusLine
	DropTarget DropTarget
	Picker     FilePicker
}
