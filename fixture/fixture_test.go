package fixture_test

import (
	"errors"
	"os"
	"testing"

	"github.com/gogpu/paragraph/fixture"
	"github.com/gogpu/paragraph/layout"
	"github.com/gogpu/paragraph/metric"
	"github.com/gogpu/paragraph/text"
)

func monoEngine(t *testing.T) text.Engine {
	t.Helper()
	e, err := text.NewMonoEngine(metric.FromInt(10), text.LineMetrics{
		Ascent:  metric.FromInt(8),
		Descent: metric.FromInt(2),
	})
	if err != nil {
		t.Fatalf("NewMonoEngine: %v", err)
	}
	return e
}

func TestParagraphsFile(t *testing.T) {
	f, err := os.Open("testdata/paragraphs.para")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	file, err := fixture.Parse("paragraphs.para", f)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(file.Paragraphs) == 0 {
		t.Fatal("no paragraphs parsed")
	}
	e := monoEngine(t)
	for _, p := range file.Paragraphs {
		t.Run(p.Name, func(t *testing.T) {
			l, err := p.Build(e)
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if err := p.Verify(l); err != nil {
				t.Error(err)
			}
		})
	}
}

func TestParseString(t *testing.T) {
	file, err := fixture.ParseString(`
		# comment
		paragraph "a\u00ADb" { width 10 20 flags trailing-spaces force-justify cache }
		paragraph named "x" {
			object 0 width 5
			format 0 1 underline strikeout
			tab 40 delimiter ","
		}
	`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	if len(file.Paragraphs) != 2 {
		t.Fatalf("got %d paragraphs, want 2", len(file.Paragraphs))
	}
	p := file.Paragraphs[0]
	if p.Name != "" || string(p.Text) != "a\u00ADb" {
		t.Errorf("paragraph 0 = %q %q", p.Name, p.Text)
	}
	if len(p.Statements) != 3 {
		t.Fatalf("got %d statements, want 3", len(p.Statements))
	}
	if w := p.Statements[0].Width; len(w) != 2 || w[0] != 10 || w[1] != 20 {
		t.Errorf("widths = %v, want [10 20]", w)
	}
	if f := p.Statements[1].Flags; len(f) != 2 || f[1] != "force-justify" {
		t.Errorf("flags = %v", f)
	}
	if !p.Statements[2].Cache {
		t.Error("cache statement not parsed")
	}

	named, ok := file.Lookup("named")
	if !ok {
		t.Fatal("Lookup(named) failed")
	}
	if o := named.Statements[0].Object; o == nil || o.At != 0 || o.Width != 5 {
		t.Errorf("object = %+v", o)
	}
	if f := named.Statements[1].Format; f == nil || len(f.Styles) != 2 {
		t.Errorf("format = %+v", f)
	}
	if tab := named.Statements[2].Tab; tab == nil || tab.Type != "delimiter" || tab.Delimiter == nil || *tab.Delimiter != "," {
		t.Errorf("tab = %+v", tab)
	}
	if _, ok := file.Lookup("missing"); ok {
		t.Error("Lookup(missing) succeeded")
	}
}

func TestParseErrors(t *testing.T) {
	tests := []string{
		`paragraph`,
		`paragraph "x" { width }`,
		`paragraph "x" { direction up }`,
		`paragraph "x" { flags bold }`,
		`paragraph "x" { level 1 2 }`,
		`text "x" {}`,
	}
	for _, src := range tests {
		if _, err := fixture.ParseString(src); err == nil {
			t.Errorf("ParseString(%q) succeeded", src)
		}
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		src  string
		want error
	}{
		{`paragraph "x" { wrap sometimes }`, fixture.ErrInvalidValue},
		{`paragraph "x" { align middle }`, fixture.ErrInvalidValue},
		{`paragraph "x" { tab 10 delimiter }`, fixture.ErrInvalidValue},
		{`paragraph "x" { tab 10 delimiter "ab" }`, fixture.ErrInvalidValue},
		{`paragraph "x" { level 0 1 200 }`, fixture.ErrInvalidValue},
		{`paragraph "x" { level 0 2 1 }`, fixture.ErrOutOfRange},
		{`paragraph "x" { format 1 1 underline }`, fixture.ErrOutOfRange},
		{`paragraph "x" { object 3 width 10 }`, fixture.ErrOutOfRange},
		{`paragraph "x" { object 0 width 10 }`, fixture.ErrNotObject},
	}
	e := monoEngine(t)
	for _, tt := range tests {
		file, err := fixture.ParseString(tt.src)
		if err != nil {
			t.Fatalf("ParseString(%q): %v", tt.src, err)
		}
		if _, err := file.Paragraphs[0].Build(e); !errors.Is(err, tt.want) {
			t.Errorf("Build(%q) = %v, want %v", tt.src, err, tt.want)
		}
	}
}

func TestBuildObjectsAndFormats(t *testing.T) {
	file, err := fixture.ParseString(`
		paragraph "ab\uFFFCcd" {
			object 2 width 50 ascent 20 descent 5
			format 0 2 underline
			width 1000
		}
	`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	l, err := file.Paragraphs[0].Build(monoEngine(t))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	ln := l.LineAt(0)
	if got := ln.Height(); got != metric.FromInt(25) {
		t.Errorf("Height = %v, want 25", got)
	}
	if got, _ := ln.OffsetToX(3, layout.Leading); got != metric.FromInt(70) {
		t.Errorf("OffsetToX(3) = %v, want 70", got)
	}
	runs := ln.GlyphRuns(-1, -1)
	if len(runs) == 0 || runs[0].Flags&layout.RunUnderline == 0 {
		t.Errorf("first run is not underlined: %+v", runs)
	}
}

func TestBuildStacksLines(t *testing.T) {
	file, err := fixture.ParseString(`paragraph "aa bb cc" { width 25 }`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	l, err := file.Paragraphs[0].Build(monoEngine(t))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if l.LineCount() != 3 {
		t.Fatalf("got %d lines, want 3", l.LineCount())
	}
	for i := range l.LineCount() {
		if y := l.LineAt(i).Y(); y != metric.FromInt(10*i) {
			t.Errorf("line %d at y = %v, want %d", i, y, 10*i)
		}
	}
}

func TestBuildUnbounded(t *testing.T) {
	file, err := fixture.ParseString(`paragraph "aa bb cc" { columns 4 }`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	l, err := file.Paragraphs[0].Build(monoEngine(t))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if l.LineCount() < 2 {
		t.Errorf("got %d lines with 4 columns, want at least 2", l.LineCount())
	}
}

func TestVerifyMismatch(t *testing.T) {
	tests := []string{
		`paragraph "Hello World" { width 55 expect 0 11 0 }`,
		`paragraph "Hello World" { width 55 expect 0 5 1 }`,
		`paragraph "Hello World" { width 55 expect 0 5 1 expect 6 5 0 expect 11 0 0 }`,
		`paragraph "ab" { width 100 position 1 x 20 }`,
	}
	e := monoEngine(t)
	for _, src := range tests {
		file, err := fixture.ParseString(src)
		if err != nil {
			t.Fatalf("ParseString(%q): %v", src, err)
		}
		p := file.Paragraphs[0]
		l, err := p.Build(e)
		if err != nil {
			t.Fatalf("Build(%q): %v", src, err)
		}
		if err := p.Verify(l); !errors.Is(err, fixture.ErrMismatch) {
			t.Errorf("Verify(%q) = %v, want ErrMismatch", src, err)
		}
	}
}

func TestBuildAll(t *testing.T) {
	file, err := fixture.ParseString(`
		paragraph a "Hello World" { width 55 expect 0 5 1 expect 6 5 0 }
		paragraph b "aa bb cc" { width 25 1000 expect 0 2 1 expect 3 5 0 }
		paragraph c "ab" { align right width 100 position 0 x 80 }
	`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	layouts, err := file.BuildAll(monoEngine(t), 2)
	if err != nil {
		t.Fatalf("BuildAll: %v", err)
	}
	if len(layouts) != len(file.Paragraphs) {
		t.Fatalf("got %d layouts, want %d", len(layouts), len(file.Paragraphs))
	}
	for i, p := range file.Paragraphs {
		if err := p.Verify(layouts[i]); err != nil {
			t.Errorf("paragraph %s: %v", p.Name, err)
		}
	}

	bad, err := fixture.ParseString(`paragraph ok "x" {} paragraph broken "x" { wrap sometimes }`)
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	if _, err := bad.BuildAll(monoEngine(t), 0); !errors.Is(err, fixture.ErrInvalidValue) {
		t.Errorf("BuildAll = %v, want ErrInvalidValue", err)
	}
}
