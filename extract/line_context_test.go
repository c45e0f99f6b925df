package extract

import "testing"

func TestLineContextBorrowsNextLine(t *testing.T) {
	text := "SKU-200\nBlue Ceramic Vase\nSKU-300\nOak Side Table"

	recs := LineContext{}.Extract(text)
	if len(recs) != 2 {
		t.Fatalf("got %d records, want 2", len(recs))
	}

	if recs[0].SKU != "SKU-200" || recs[0].Name != "Blue Ceramic Vase" {
		t.Errorf("first record = %+v", recs[0])
	}
	if recs[1].SKU != "SKU-300" || recs[1].Name != "Oak Side Table" {
		t.Errorf("second record = %+v", recs[1])
	}
	if recs[0].Source != "line-context" {
		t.Errorf("Source = %q", recs[0].Source)
	}
}

func TestLineContextFallsBackToRemainder(t *testing.T) {
	// Next line is empty, so the description comes from the remainder of
	// the identifier's own line.
	text := "SKU-200 Blue Ceramic Vase\n\nprose without identifiers"

	recs := LineContext{}.Extract(text)
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	if recs[0].Name != "Blue Ceramic Vase" {
		t.Errorf("Name = %q", recs[0].Name)
	}
	if recs[0].Quantity != 1 {
		t.Errorf("Quantity = %d, want default 1", recs[0].Quantity)
	}
}

func TestLineContextConsumesBorrowedLine(t *testing.T) {
	// The borrowed description line starts with an identifier-shaped
	// token of its own; consuming it must prevent a double read.
	text := "SKU-200\nSKU-300 Oak Side Table"

	recs := LineContext{}.Extract(text)
	if len(recs) != 1 {
		t.Fatalf("got %d records, want 1", len(recs))
	}
	if recs[0].SKU != "SKU-200" || recs[0].Name != "SKU-300 Oak Side Table" {
		t.Errorf("record = %+v", recs[0])
	}
}

func TestLineContextIgnoresNonIdentifiers(t *testing.T) {
	recs := LineContext{}.Extract("Red Wine\nBottle of something\n12 items")
	if len(recs) != 0 {
		t.Errorf("got %d records, want 0: %+v", len(recs), recs)
	}
}

func TestLineContextIdentifierAloneAtEnd(t *testing.T) {
	// Identifier on the final line with nothing to borrow and no
	// remainder: no record.
	recs := LineContext{}.Extract("SKU-200")
	if len(recs) != 0 {
		t.Errorf("got %d records, want 0", len(recs))
	}
}
