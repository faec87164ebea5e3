// Command paralayout lays out a paragraph and prints its lines.
//
// Either a text given with -text or the paragraphs of a fixture file given
// with -fixture are laid out. Fixture expectations are checked and failures
// make the command exit with an error.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"text/tabwriter"

	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/paragraph"
	"github.com/gogpu/paragraph/fixture"
	"github.com/gogpu/paragraph/internal/debugdraw"
	"github.com/gogpu/paragraph/layout"
	"github.com/gogpu/paragraph/metric"
	"github.com/gogpu/paragraph/text"
)

type config struct {
	text    string
	fixture string
	name    string
	font    string
	size    float64
	width   float64
	wrap    string
	align   string
	rtl     bool
	engine  string
	pdf     string
	verbose bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.text, "text", "", "text to lay out")
	flag.StringVar(&cfg.fixture, "fixture", "", "fixture file to lay out and check")
	flag.StringVar(&cfg.name, "name", "", "only the fixture paragraph with this name")
	flag.StringVar(&cfg.font, "font", "", "TrueType/OpenType font file (default Go Regular)")
	flag.Float64Var(&cfg.size, "size", 16, "font size in pixels per em")
	flag.Float64Var(&cfg.width, "width", 0, "line width in pixels, 0 for unbounded lines")
	flag.StringVar(&cfg.wrap, "wrap", "word", "wrap mode: none, manual, word, anywhere, word-or-anywhere")
	flag.StringVar(&cfg.align, "align", "left", "alignment: left, right, center, justify, leading, trailing")
	flag.BoolVar(&cfg.rtl, "rtl", false, "right-to-left paragraph direction")
	flag.StringVar(&cfg.engine, "engine", "gotext", "shaping engine: gotext, sfnt, mono")
	flag.StringVar(&cfg.pdf, "pdf", "", "write a debug drawing of the layouts to this PDF file")
	flag.BoolVar(&cfg.verbose, "v", false, "log layout diagnostics")
	flag.Parse()

	if err := run(cfg, os.Stdout); err != nil {
		log.Fatalf("paralayout: %v", err)
	}
}

func run(cfg config, out io.Writer) error {
	if cfg.verbose {
		paragraph.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	engine, err := newEngine(cfg)
	if err != nil {
		return err
	}

	var layouts []*layout.TextLayout
	switch {
	case cfg.fixture != "":
		layouts, err = layoutFixture(cfg, engine, out)
	case cfg.text != "":
		var l *layout.TextLayout
		l, err = layoutText(cfg, engine)
		layouts = append(layouts, l)
	default:
		return fmt.Errorf("one of -text or -fixture is required")
	}
	if len(layouts) == 0 || layouts[0] == nil {
		return err
	}

	// Failed fixture checks still print their layouts.
	for _, l := range layouts {
		if perr := printLines(out, l); perr != nil {
			return perr
		}
	}
	if cfg.pdf != "" {
		if perr := writePDF(cfg.pdf, layouts); perr != nil {
			return perr
		}
	}
	return err
}

func newEngine(cfg config) (text.Engine, error) {
	if cfg.engine == "mono" {
		size := metric.FromFloat(cfg.size)
		return text.NewMonoEngine(size.DivInt(2), text.LineMetrics{
			Ascent:  size.MulDiv(4, 5),
			Descent: size.DivInt(5),
		})
	}

	data := goregular.TTF
	if cfg.font != "" {
		b, err := os.ReadFile(cfg.font)
		if err != nil {
			return nil, fmt.Errorf("read font: %w", err)
		}
		data = b
	}
	switch cfg.engine {
	case "gotext":
		return text.NewGoTextEngine(data, cfg.size)
	case "sfnt":
		return text.NewSfntEngine(data, cfg.size)
	default:
		return nil, fmt.Errorf("unknown engine %q", cfg.engine)
	}
}

func layoutText(cfg config, engine text.Engine) (*layout.TextLayout, error) {
	wrap, ok := layout.ParseWrapMode(cfg.wrap)
	if !ok {
		return nil, fmt.Errorf("unknown wrap mode %q", cfg.wrap)
	}
	align, ok := layout.ParseAlignment(cfg.align)
	if !ok {
		return nil, fmt.Errorf("unknown alignment %q", cfg.align)
	}
	dir := text.DirectionLTR
	if cfg.rtl {
		dir = text.DirectionRTL
	}

	l, err := layout.New(engine,
		layout.WithWrapMode(wrap),
		layout.WithAlignment(align),
		layout.WithDirection(dir),
	)
	if err != nil {
		return nil, err
	}
	l.SetText(cfg.text)

	l.BeginLayout()
	var y metric.Fixed
	for {
		ln := l.CreateLine()
		if !ln.IsValid() {
			break
		}
		if cfg.width > 0 {
			ln.SetLineWidth(metric.FromFloat(cfg.width))
			ln.SetPosition(metric.Pt(0, y))
			y = y.Add(ln.Height())
		}
	}
	l.EndLayout()

	if cfg.width <= 0 {
		// Unbounded lines only know their height once closed.
		for i := range l.LineCount() {
			ln := l.LineAt(i)
			ln.SetPosition(metric.Pt(0, y))
			y = y.Add(ln.Height())
		}
	}
	return l, nil
}

func layoutFixture(cfg config, engine text.Engine, out io.Writer) ([]*layout.TextLayout, error) {
	f, err := os.Open(cfg.fixture)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	file, err := fixture.Parse(cfg.fixture, f)
	if err != nil {
		return nil, err
	}
	if cfg.name != "" {
		p, ok := file.Lookup(cfg.name)
		if !ok {
			return nil, fmt.Errorf("no paragraph named %q in %s", cfg.name, cfg.fixture)
		}
		file.Paragraphs = []*fixture.Paragraph{p}
	}

	layouts, err := file.BuildAll(engine, 0)
	if err != nil {
		return nil, err
	}
	failed := 0
	for i, p := range file.Paragraphs {
		status := "ok"
		if err := p.Verify(layouts[i]); err != nil {
			status = err.Error()
			failed++
		}
		fmt.Fprintf(out, "paragraph %q: %s\n", p.Name, status)
	}
	if failed > 0 {
		return layouts, fmt.Errorf("%d of %d paragraphs failed", failed, len(file.Paragraphs))
	}
	return layouts, nil
}

func printLines(out io.Writer, l *layout.TextLayout) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "line\tfrom\tlength\ttrailing\twidth\tnatural\theight\truns\t")
	for i := range l.LineCount() {
		ln := l.LineAt(i)
		fmt.Fprintf(tw, "%d\t%d\t%d\t%d\t%.2f\t%.2f\t%.2f\t%d\t\n",
			i, ln.From(), ln.Length(), ln.TrailingSpaces(),
			ln.Width().Float(), ln.NaturalTextWidth().Float(), ln.Height().Float(),
			len(ln.GlyphRuns(-1, -1)))
	}
	fmt.Fprintf(tw, "min %.2f\tmax %.2f\t\n", l.MinimumWidth().Float(), l.MaximumWidth().Float())
	return tw.Flush()
}

func writePDF(name string, layouts []*layout.TextLayout) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := debugdraw.Render(f, layouts...); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
