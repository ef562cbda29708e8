package catalog_test

import (
	"strings"
	"testing"

	"github.com/blackwell-systems/filmshelf/internal/catalog"
)

func TestParseBulk(t *testing.T) {
	input := "\ufeff" + catalog.BulkTemplate + "\n" +
		"The Matrix,Wachowski,\"Keanu Reeves, Carrie-Anne Moss\",Sci-Fi,DVD-001,1999,cyberpunk\n" +
		"\n" +
		"Heat,Michael Mann\n" +
		"Alien,Ridley Scott,,Horror,VHS-3\n" +
		",No Title,,,X-1\n" +
		"Extra,Dir,,Drama,E-1,2001,tag,ignored,also ignored\n"

	res, err := catalog.ParseBulk(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParseBulk: %v", err)
	}

	if len(res.Films) != 3 {
		t.Fatalf("got %d films, want 3: %+v", len(res.Films), res.Films)
	}
	matrix := res.Films[0]
	if matrix.Actors != "Keanu Reeves, Carrie-Anne Moss" {
		t.Errorf("quoted actors = %q", matrix.Actors)
	}
	if matrix.Tags != "cyberpunk" || matrix.Year != "1999" {
		t.Errorf("matrix = %+v", matrix)
	}
	alien := res.Films[1]
	if alien.IDNumber != "VHS-3" || alien.Year != "" || alien.Tags != "" {
		t.Errorf("missing trailing fields not empty: %+v", alien)
	}
	if res.Films[2].Tags != "tag" {
		t.Errorf("extra fields leaked: %+v", res.Films[2])
	}

	if len(res.Skipped) != 2 {
		t.Fatalf("got %d skipped, want 2: %+v", len(res.Skipped), res.Skipped)
	}
	if res.Skipped[0].Line != 4 || !strings.Contains(res.Skipped[0].Reason, "id number") {
		t.Errorf("skipped[0] = %+v", res.Skipped[0])
	}
	if res.Skipped[1].Line != 6 || !strings.Contains(res.Skipped[1].Reason, "title") {
		t.Errorf("skipped[1] = %+v", res.Skipped[1])
	}
}

func TestParseBulk_BrokenQuoteFallsBack(t *testing.T) {
	res, err := catalog.ParseBulk(strings.NewReader("Brazil \"director's cut,Terry Gilliam,,Comedy,B-9\n"))
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Films) != 1 {
		t.Fatalf("got %+v", res)
	}
	if res.Films[0].IDNumber != "B-9" {
		t.Errorf("IDNumber = %q, want B-9", res.Films[0].IDNumber)
	}
}

func TestParseBulk_Empty(t *testing.T) {
	res, err := catalog.ParseBulk(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Films) != 0 || len(res.Skipped) != 0 {
		t.Errorf("empty input = %+v", res)
	}
}
