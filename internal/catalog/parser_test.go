package catalog

import (
	"strings"
	"testing"
)

const journalTableHTML = `
<html><body><table>
<tr><th>Title</th><th>ISSN</th><th>Quartile</th><th>Publisher</th></tr>
<tr><td>IEEE Transactions on Computers</td><td>0018-9340</td><td>q1</td><td>IEEE</td></tr>
<tr><td>Journal of Systems and Software</td><td>0164-1212; 1873-1228</td><td>Q2</td><td>Elsevier</td></tr>
<tr><td></td><td>1234-5678</td><td>Q3</td><td>Nobody</td></tr>
<tr><td>Obscure Letters</td><td>2222-3333</td><td>n/a</td><td>Somewhere</td></tr>
</table></body></html>`

func TestParseJournals(t *testing.T) {
	entries, err := ParseJournalsFrom(strings.NewReader(journalTableHTML), "scopus")
	if err != nil {
		t.Fatalf("ParseJournalsFrom: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}

	first := entries[0]
	if first.Name != "IEEE Transactions on Computers" {
		t.Errorf("name = %q", first.Name)
	}
	if first.ISSN != "0018-9340" {
		t.Errorf("issn = %q", first.ISSN)
	}
	if first.Quartile != "Q1" {
		t.Errorf("quartile = %q, want normalized Q1", first.Quartile)
	}
	if first.Index != "scopus" {
		t.Errorf("index = %q", first.Index)
	}
	if first.Publisher != "IEEE" {
		t.Errorf("publisher = %q", first.Publisher)
	}

	if entries[1].ISSN != "0164-1212" {
		t.Errorf("double issn = %q, want first kept", entries[1].ISSN)
	}
	if entries[2].Quartile != "" {
		t.Errorf("unknown quartile = %q, want empty", entries[2].Quartile)
	}
}

const domesticTableHTML = `
<html><body><table>
<tr><th>STT</th><th>ISSN</th><th>Points</th></tr>
<tr><td>Tap chi Khoa hoc va Cong nghe</td><td>1859-3585</td><td>0,5</td></tr>
<tr><td>Tap chi Tin hoc</td><td>1813-9663</td><td>0,75-1</td></tr>
<tr><td>Tap chi Co khi</td><td>0866-7056</td><td>bad</td></tr>
</table></body></html>`

func TestParseDomestic(t *testing.T) {
	entries, err := ParseDomesticFrom(strings.NewReader(domesticTableHTML), "cntt")
	if err != nil {
		t.Fatalf("ParseDomesticFrom: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}

	if entries[0].Points != 0.5 {
		t.Errorf("comma decimal points = %v, want 0.5", entries[0].Points)
	}
	if entries[0].Council != "cntt" {
		t.Errorf("council = %q", entries[0].Council)
	}
	if entries[1].Points != 1 {
		t.Errorf("range points = %v, want upper bound 1", entries[1].Points)
	}
	if entries[2].Points != 0 {
		t.Errorf("unparseable points = %v, want 0", entries[2].Points)
	}
}

func TestNormalizeISSN(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"0018-9340", "0018-9340"},
		{" 0164-1212 ; 1873-1228", "0164-1212"},
		{"1859-3585/1859-0000", "1859-3585"},
		{"1813-9663 ", "1813-9663"},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizeISSN(c.in); got != c.want {
			t.Errorf("NormalizeISSN(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
