package ibro

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const tileHTML = `
<a class="clickable-tile" href="https://ibro.org/grant/early-career">
  <div class="call-tile">
    <h3 class="title-calls-events-list">Early Career Award</h3>
    <p>
      <b>Open to:</b> International applicants<br>
      <b>Application deadline:</b> 18 September 2026<br>
      <b>Application start date:</b> Program dependent<br>
      <b>Grant aim:</b> Support for <i>early career</i> neuroscientists<br>
    </p>
  </div>
</a>`

func TestLabeledFields(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(tileHTML))
	if err != nil {
		t.Fatal(err)
	}
	tile := doc.Find("div.call-tile").First()
	fields := labeledFields(tile)

	if got := fields["open to"]; got != "International applicants" {
		t.Fatalf("open to = %q", got)
	}
	if got := fields["application deadline"]; got != "18 September 2026" {
		t.Fatalf("deadline = %q", got)
	}
	if got := fields["grant aim"]; got != "Support for early career neuroscientists" {
		t.Fatalf("grant aim = %q", got)
	}
}

func TestParseTileDate(t *testing.T) {
	if got := parseTileDate("Program dependent"); got != nil {
		t.Fatalf("got %v", got)
	}
	if got := parseTileDate("Event dependent deadlines"); got != nil {
		t.Fatalf("got %v", got)
	}
	want := time.Date(2026, time.September, 18, 0, 0, 0, 0, time.UTC)
	if got := parseTileDate("18 September 2026"); got == nil || !got.Equal(want) {
		t.Fatalf("got %v", got)
	}
}
