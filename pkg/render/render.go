// Package render projects slide nodes into styled terminal frames.
//
// Render is a pure function of the node, the number of revealed fragments,
// and the options; the TUI calls it on every navigation step and export
// sinks call it once per slide. Content blocks beyond the revealed fragment
// count are omitted entirely, which is what makes progressive reveal work:
// the frame for fragment n is the frame for fragment n-1 plus one block (or
// one bullet item).
//
// Only asset existence is checked against the filesystem; a missing image
// degrades to a placeholder in the frame and is logged, never an error.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/halvard/deckard/pkg/deck"
	"github.com/halvard/deckard/pkg/theme"
)

// DefaultWidth is the wrap width used when none is configured.
const DefaultWidth = 72

// Options configures frame rendering.
type Options struct {
	// Width is the wrap width in terminal cells.
	Width int

	// Theme supplies colors and glyphs. Zero value means theme.Default().
	Theme theme.Theme

	// BaseDir is the directory image paths resolve against, normally the
	// deck source directory.
	BaseDir string

	// Logger receives missing-asset warnings. Defaults to a discard logger.
	Logger *log.Logger
}

func (o Options) withDefaults() Options {
	if o.Width <= 0 {
		o.Width = DefaultWidth
	}
	if o.Theme.Name == "" {
		o.Theme = theme.Default()
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return o
}

// Frame is one rendered slide surface.
type Frame struct {
	// Title is the styled slide title line, empty for untitled slides.
	Title string

	// Body is the styled content, blocks separated by blank lines.
	Body string

	// Revealed and Total report fragment progress for footer display.
	Revealed int
	Total    int
}

// String joins title and body into the final surface text.
func (f Frame) String() string {
	switch {
	case f.Title == "":
		return f.Body
	case f.Body == "":
		return f.Title
	default:
		return f.Title + "\n\n" + f.Body
	}
}

// Render projects a slide node into a frame, including only content up to
// the given fragment count.
func Render(node *deck.SlideNode, fragment int, opts Options) Frame {
	opts = opts.withDefaults()
	st := newStyles(opts.Theme, opts.Width)

	frame := Frame{
		Revealed: fragment,
		Total:    node.FragmentCount(),
	}
	if node.Title != "" {
		frame.Title = st.title.Render(node.Title)
	}

	var parts []string
	budget := fragment
	for _, block := range node.Body {
		if budget <= 0 {
			break
		}
		parts = append(parts, renderBlock(block, &budget, st, opts))
	}
	frame.Body = strings.Join(parts, "\n\n")
	return frame
}

// renderBlock renders one block, consuming reveal budget. Bullet lists may
// render partially; every other block consumes its single fragment whole.
func renderBlock(block deck.Block, budget *int, st styles, opts Options) string {
	switch v := block.(type) {
	case deck.BulletList:
		reveal := *budget
		if reveal > len(v.Items) {
			reveal = len(v.Items)
		}
		*budget -= reveal
		return renderBullets(v.Items[:reveal], st)

	case deck.Paragraph:
		*budget--
		return st.text.Render(v.Text)

	case deck.Quote:
		*budget--
		quoted := st.quote.Render(v.Text)
		if v.Attribution != "" {
			quoted += "\n" + st.attribution.Render("— "+v.Attribution)
		}
		return quoted

	case deck.Link:
		*budget--
		label := v.Label
		if label == "" {
			label = v.URL
		}
		return st.link.Render(label) + " " + st.dim.Render("("+v.URL+")")

	case deck.Code:
		*budget--
		return renderCode(v, st, opts.Theme)

	case deck.Image:
		*budget--
		return renderImage(v, st, opts)

	default:
		*budget--
		return ""
	}
}

// renderBullets renders the revealed prefix of a bullet list. Nested items
// appear together with their parent.
func renderBullets(items []deck.BulletItem, st styles) string {
	var b strings.Builder
	var write func(items []deck.BulletItem, level int)
	write = func(items []deck.BulletItem, level int) {
		indent := strings.Repeat("  ", level)
		for _, item := range items {
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString(indent + st.bullet.Render(st.glyph) + " " + st.text.Render(item.Text))
			write(item.Children, level+1)
		}
	}
	write(items, 0)
	return b.String()
}

// renderCode renders a fenced listing in a bordered box with the language
// tag as label. Highlighting applies only to recognized tags.
func renderCode(code deck.Code, st styles, th theme.Theme) string {
	text := code.Text
	if th.Highlight {
		text = Highlight(code.Lang, code.Text, st)
	}

	box := st.codeBox.Render(text)
	if code.Lang == "" {
		return box
	}
	return st.codeLang.Render(code.Lang) + "\n" + box
}

// renderImage renders a placeholder box for an image. Terminal surfaces
// cannot inline raster images, so the placeholder shows the alt text and
// path; a missing file gets a distinct marker and a log line.
func renderImage(img deck.Image, st styles, opts Options) string {
	label := img.Alt
	if label == "" {
		label = img.Path
	}

	if _, err := ResolveAsset(opts.BaseDir, img.Path); err != nil {
		opts.Logger.Warn("missing image asset", "path", img.Path, "err", err)
		return st.imageBox.Render(fmt.Sprintf("✗ missing image: %s", img.Path))
	}
	return st.imageBox.Render(fmt.Sprintf("▣ %s", label)) + "\n" + st.dim.Render("  "+img.Path)
}

// styles bundle the lipgloss styles derived from one theme.
type styles struct {
	title       lipgloss.Style
	text        lipgloss.Style
	dim         lipgloss.Style
	bullet      lipgloss.Style
	quote       lipgloss.Style
	attribution lipgloss.Style
	link        lipgloss.Style
	codeBox     lipgloss.Style
	codeLang    lipgloss.Style
	codeKeyword lipgloss.Style
	codeString  lipgloss.Style
	codeComment lipgloss.Style
	imageBox    lipgloss.Style
	glyph       string
}

func newStyles(th theme.Theme, width int) styles {
	c := th.Colors
	return styles{
		title:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(c.Title)),
		text:        lipgloss.NewStyle().Foreground(lipgloss.Color(c.Text)).Width(width),
		dim:         lipgloss.NewStyle().Foreground(lipgloss.Color(c.Dim)),
		bullet:      lipgloss.NewStyle().Foreground(lipgloss.Color(c.Accent)),
		quote:       lipgloss.NewStyle().Foreground(lipgloss.Color(c.Quote)).Italic(true).Width(width - 2).PaddingLeft(2).Border(lipgloss.ThickBorder(), false, false, false, true),
		attribution: lipgloss.NewStyle().Foreground(lipgloss.Color(c.Dim)).PaddingLeft(4),
		link:        lipgloss.NewStyle().Foreground(lipgloss.Color(c.Link)).Underline(true),
		codeBox:     lipgloss.NewStyle().Foreground(lipgloss.Color(c.Code)).Padding(0, 1).Border(lipgloss.RoundedBorder()),
		codeLang:    lipgloss.NewStyle().Foreground(lipgloss.Color(c.Dim)).Bold(true),
		codeKeyword: lipgloss.NewStyle().Foreground(lipgloss.Color(c.Accent)).Bold(true),
		codeString:  lipgloss.NewStyle().Foreground(lipgloss.Color(c.Quote)),
		codeComment: lipgloss.NewStyle().Foreground(lipgloss.Color(c.Dim)),
		imageBox:    lipgloss.NewStyle().Foreground(lipgloss.Color(c.Dim)).Padding(0, 1).Border(lipgloss.NormalBorder()),
		glyph:       th.Bullet,
	}
}
