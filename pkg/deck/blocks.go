package deck

// Kind identifies a content block variant.
type Kind string

// Block kinds produced by the parser.
const (
	KindParagraph  Kind = "paragraph"
	KindBulletList Kind = "bullets"
	KindImage      Kind = "image"
	KindQuote      Kind = "quote"
	KindCode       Kind = "code"
	KindLink       Kind = "link"
)

// Block is one content element in a slide body. Blocks are immutable once
// parsed.
type Block interface {
	// Kind returns the variant tag.
	Kind() Kind

	// Fragments returns how many reveal steps this block contributes.
	Fragments() int
}

// Paragraph is a run of plain prose.
type Paragraph struct {
	Text string
}

func (Paragraph) Kind() Kind     { return KindParagraph }
func (Paragraph) Fragments() int { return 1 }

// BulletItem is a single list entry with optional nested items.
type BulletItem struct {
	Text     string
	Children []BulletItem
}

// BulletList is an ordered list of items. Top-level items reveal one at a
// time; nested items appear together with their parent.
type BulletList struct {
	Items []BulletItem
}

func (BulletList) Kind() Kind       { return KindBulletList }
func (b BulletList) Fragments() int { return len(b.Items) }

// Image references an asset by path, relative to the document source
// directory. Whether the file exists is checked at render time only.
type Image struct {
	Path string
	Alt  string
}

func (Image) Kind() Kind     { return KindImage }
func (Image) Fragments() int { return 1 }

// Quote is a block quotation with an optional attribution line.
type Quote struct {
	Text        string
	Attribution string
}

func (Quote) Kind() Kind     { return KindQuote }
func (Quote) Fragments() int { return 1 }

// Code is a fenced code listing. Text is preserved verbatim, including
// interior blank lines. Lang is the declared language tag and may be empty.
type Code struct {
	Lang string
	Text string
}

func (Code) Kind() Kind     { return KindCode }
func (Code) Fragments() int { return 1 }

// Link is a standalone hyperlink with a display label.
type Link struct {
	URL   string
	Label string
}

func (Link) Kind() Kind     { return KindLink }
func (Link) Fragments() int { return 1 }
