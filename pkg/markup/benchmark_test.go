package markup_test

import (
	"strings"
	"testing"

	"github.com/yaklabco/tagforest/pkg/markup"
)

func benchmarkPage(sections int) []byte {
	var b strings.Builder
	b.WriteString("<html><body>\n")
	for range sections {
		b.WriteString(`<div class="card" style="color: red; margin: 0 auto">` + "\n")
		b.WriteString(`  <h2 id="title">Heading &amp; text</h2>` + "\n")
		b.WriteString(`  <p>Some <b>bold</b> and <i>italic</i> words.<br/></p>` + "\n")
		b.WriteString(`  <img src="a.png" alt='quoted \'alt\''/>` + "\n")
		b.WriteString("</div>\n")
	}
	b.WriteString("</body></html>\n")
	return []byte(b.String())
}

func BenchmarkAnalyze(b *testing.B) {
	content := benchmarkPage(200)

	b.SetBytes(int64(len(content)))
	b.ResetTimer()
	for range b.N {
		doc := markup.Analyze(content)
		if doc.HasIssues() {
			b.Fail()
		}
	}
}

// Benchmark recovery from end tags that close several open elements.
func BenchmarkAnalyzeRecovery(b *testing.B) {
	content := []byte(strings.Repeat("<ul><li><span>item</ul>", 500))

	b.SetBytes(int64(len(content)))
	b.ResetTimer()
	for range b.N {
		doc := markup.Analyze(content)
		if !doc.HasDiagnostic(markup.ImplicitlyClosed) {
			b.Fail()
		}
	}
}
