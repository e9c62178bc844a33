package markup

// NodeKind classifies the variants of Node.
type NodeKind uint8

// Node kinds.
const (
	NodeElementStart NodeKind = iota
	NodeElementEnd
	NodeElementComplete
	NodeContent
)

func (k NodeKind) String() string {
	switch k {
	case NodeElementStart:
		return "ElementStart"
	case NodeElementEnd:
		return "ElementEnd"
	case NodeElementComplete:
		return "ElementComplete"
	case NodeContent:
		return "Content"
	default:
		return "Unknown"
	}
}

// Node is one of *ElementStart, *ElementEnd, *ElementComplete or *Content.
// The set is closed; use a type switch to dispatch on it.
type Node interface {
	// Kind identifies the variant.
	Kind() NodeKind

	// Pos is the byte offset of the node in Document.Source.
	Pos() int

	node()
}

// ElementStart is a start tag that opens an element.
type ElementStart struct {
	Tag    TagDescriptor
	Offset int
}

// ElementEnd is an end tag such as "</div>".
type ElementEnd struct {
	Name   string
	Offset int
}

// ElementComplete is a self-closing tag such as "<br/>". It never opens an
// element.
type ElementComplete struct {
	Tag    TagDescriptor
	Offset int
}

// Content is a run of literal text between tags.
type Content struct {
	Text   string
	Offset int
}

func (*ElementStart) Kind() NodeKind    { return NodeElementStart }
func (*ElementEnd) Kind() NodeKind      { return NodeElementEnd }
func (*ElementComplete) Kind() NodeKind { return NodeElementComplete }
func (*Content) Kind() NodeKind         { return NodeContent }

func (n *ElementStart) Pos() int    { return n.Offset }
func (n *ElementEnd) Pos() int      { return n.Offset }
func (n *ElementComplete) Pos() int { return n.Offset }
func (n *Content) Pos() int         { return n.Offset }

func (*ElementStart) node()    {}
func (*ElementEnd) node()      {}
func (*ElementComplete) node() {}
func (*Content) node()         {}
