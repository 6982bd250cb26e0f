package deck

import (
	"testing"
)

// buildDoc returns a small tree:
//
//	0 "Intro"        (1 paragraph)
//	  0.0 "Detail"   (bullets: 3 items)
//	1 "Closing"      (paragraph + code)
func buildDoc() *Document {
	detail := &SlideNode{
		Title: "Detail",
		Depth: 1,
		Body: []Block{
			BulletList{Items: []BulletItem{
				{Text: "one"},
				{Text: "two", Children: []BulletItem{{Text: "two.a"}}},
				{Text: "three"},
			}},
		},
	}
	return &Document{
		Title: "Intro",
		Slides: []*SlideNode{
			{
				Title:    "Intro",
				Body:     []Block{Paragraph{Text: "hello"}},
				Children: []*SlideNode{detail},
			},
			{
				Title: "Closing",
				Body: []Block{
					Paragraph{Text: "bye"},
					Code{Lang: "go", Text: "fmt.Println(1)"},
				},
			},
		},
	}
}

func TestParsePath(t *testing.T) {
	tests := []struct {
		input   string
		want    Path
		wantErr bool
	}{
		{"0", Path{0}, false},
		{"2.0.1", Path{2, 0, 1}, false},
		{" 1 . 2 ", Path{1, 2}, false},
		{"", nil, true},
		{"  ", nil, true},
		{"a", nil, true},
		{"1.-2", nil, true},
		{"1..2", nil, true},
	}

	for _, tt := range tests {
		got, err := ParsePath(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParsePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if err == nil && !got.Equal(tt.want) {
			t.Errorf("ParsePath(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestPathStringRoundTrip(t *testing.T) {
	p := Path{2, 0, 1}
	got, err := ParsePath(p.String())
	if err != nil {
		t.Fatalf("ParsePath(%q): %v", p.String(), err)
	}
	if !got.Equal(p) {
		t.Errorf("round trip = %v, want %v", got, p)
	}
}

func TestPathClone(t *testing.T) {
	p := Path{1, 2}
	c := p.Clone()
	c[0] = 9
	if p[0] != 1 {
		t.Error("Clone should not share backing storage")
	}
}

func TestResolve(t *testing.T) {
	doc := buildDoc()

	node, err := doc.Resolve(Path{0, 0})
	if err != nil {
		t.Fatalf("Resolve(0.0): %v", err)
	}
	if node.Title != "Detail" {
		t.Errorf("Resolve(0.0).Title = %q, want %q", node.Title, "Detail")
	}

	if _, err := doc.Resolve(Path{5}); err == nil {
		t.Error("out-of-range index should fail")
	}
	if _, err := doc.Resolve(Path{1, 0}); err == nil {
		t.Error("descending into a leaf should fail")
	}
	if _, err := doc.Resolve(nil); err == nil {
		t.Error("empty path should fail")
	}
}

func TestWalkOrder(t *testing.T) {
	doc := buildDoc()

	var titles []string
	var paths []string
	doc.Walk(func(n *SlideNode, p Path) {
		titles = append(titles, n.Title)
		paths = append(paths, p.String())
	})

	wantTitles := []string{"Intro", "Detail", "Closing"}
	wantPaths := []string{"0", "0.0", "1"}
	for i := range wantTitles {
		if titles[i] != wantTitles[i] {
			t.Errorf("Walk titles[%d] = %q, want %q", i, titles[i], wantTitles[i])
		}
		if paths[i] != wantPaths[i] {
			t.Errorf("Walk paths[%d] = %q, want %q", i, paths[i], wantPaths[i])
		}
	}

	if doc.SlideCount() != 3 {
		t.Errorf("SlideCount = %d, want 3", doc.SlideCount())
	}
}

func TestFragmentCount(t *testing.T) {
	doc := buildDoc()

	intro, _ := doc.Resolve(Path{0})
	if got := intro.FragmentCount(); got != 1 {
		t.Errorf("Intro fragments = %d, want 1", got)
	}

	// Bullet lists count top-level items only; nested items ride along.
	detail, _ := doc.Resolve(Path{0, 0})
	if got := detail.FragmentCount(); got != 3 {
		t.Errorf("Detail fragments = %d, want 3", got)
	}

	closing, _ := doc.Resolve(Path{1})
	if got := closing.FragmentCount(); got != 2 {
		t.Errorf("Closing fragments = %d, want 2", got)
	}
}

func TestValidate(t *testing.T) {
	doc := buildDoc()
	if err := doc.Validate(); err != nil {
		t.Errorf("valid tree should pass: %v", err)
	}

	doc.Slides[0].Children[0].Depth = 5
	if err := doc.Validate(); err == nil {
		t.Error("wrong child depth should fail")
	}
}
