// Package memview is an in-memory document for hosting a widget without a
// browser. It records everything the controllers render and can notify a
// listener, which is how the terminal front end draws.
package memview

import (
	"sync"

	"github.com/deepgram/asklyn/pkg/widget"
)

// Listener receives render notifications. Any field may be nil.
type Listener struct {
	Message   func(widget.Message)
	Indicator func(shown bool)
	Status    func(text, color string)
}

type node struct {
	msg *widget.Message
	ind *indicator
}

// Document implements every widget element. It is safe for concurrent use.
type Document struct {
	mu sync.Mutex

	nodes           []node
	input           string
	statusText      string
	statusColor     string
	border          string
	scrolls         int
	pickerOpens     int
	indicatorsAdded int

	listener Listener
}

func New() *Document {
	return &Document{border: widget.ColorInactive}
}

// Elements returns the document as the widget's element set.
func (d *Document) Elements() widget.Elements {
	return widget.Elements{
		Transcript: d,
		Input:      d,
		Status:     d,
		DropTarget: d,
		Picker:     d,
	}
}

func (d *Document) Listen(l Listener) {
	d.mu.Lock()
	d.listener = l
	d.mu.Unlock()
}

func (d *Document) AppendMessage(m widget.Message) {
	d.mu.Lock()
	d.nodes = append(d.nodes, node{msg: &m})
	notify := d.listener.Message
	d.mu.Unlock()

	if notify != nil {
		notify(m)
	}
}

func (d *Document) AppendIndicator() widget.Indicator {
	ind := &indicator{doc: d}

	d.mu.Lock()
	d.nodes = append(d.nodes, node{ind: ind})
	d.indicatorsAdded++
	notify := d.listener.Indicator
	d.mu.Unlock()

	if notify != nil {
		notify(true)
	}
	return ind
}

func (d *Document) ScrollToBottom() {
	d.mu.Lock()
	d.scrolls++
	d.mu.Unlock()
}

func (d *Document) Value() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.input
}

func (d *Document) SetValue(v string) {
	d.mu.Lock()
	d.input = v
	d.mu.Unlock()
}

func (d *Document) SetStatus(text, color string) {
	d.mu.Lock()
	d.statusText, d.statusColor = text, color
	notify := d.listener.Status
	d.mu.Unlock()

	if notify != nil {
		notify(text, color)
	}
}

func (d *Document) SetBorderColor(color string) {
	d.mu.Lock()
	d.border = color
	d.mu.Unlock()
}

func (d *Document) Open() {
	d.mu.Lock()
	d.pickerOpens++
	d.mu.Unlock()
}

// Messages returns the transcript's messages in order.
func (d *Document) Messages() []widget.Message {
	d.mu.Lock()
	defer d.mu.Unlock()

	var out []widget.Message
	for _, n := range d.nodes {
		if n.msg != nil {
			out = append(out, *n.msg)
		}
	}
	return out
}

// Indicators is the number of typing indicators currently in the transcript.
func (d *Document) Indicators() int {
	d.mu.Lock()
	defer d.mu.Unlock()

	count := 0
	for _, n := range d.nodes {
		if n.ind != nil {
			count++
		}
	}
	return count
}

// IndicatorsAdded counts every indicator ever appended.
func (d *Document) IndicatorsAdded() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.indicatorsAdded
}

func (d *Document) Status() (text, color string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.statusText, d.statusColor
}

func (d *Document) BorderColor() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.border
}

func (d *Document) Scrolls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.scrolls
}

func (d *Document) PickerOpens() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pickerOpens
}

type indicator struct {
	doc *Document
}

func (i *indicator) Attached() bool {
	i.doc.mu.Lock()
	defer i.doc.mu.Unlock()
	return i.doc.indexOf(i) >= 0
}

func (i *indicator) Remove() {
	d := i.doc

	d.mu.Lock()
	idx := d.indexOf(i)
	if idx < 0 {
		d.mu.Unlock()
		return
	}
	d.nodes = append(d.nodes[:idx], d.nodes[idx+1:]...)
	notify := d.listener.Indicator
	d.mu.Unlock()

	if notify != nil {
		notify(false)
	}
}

// indexOf must be called with d.mu held.
func (d *Document) indexOf(i *indicator) int {
	for idx, n := range d.nodes {
		if n.ind == i {
			return idx
		}
	}
	return -1
}
