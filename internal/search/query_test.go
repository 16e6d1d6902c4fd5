package search

import "testing"

func TestFormulateQuery_NumbersSearchVerbatim(t *testing.T) {
	claim := "Global GDP grew 3.1 percent in the last quarter"
	if got := FormulateQuery(claim); got != claim {
		t.Errorf("expected verbatim query for numeric claim, got %q", got)
	}
}

func TestFormulateQuery_DatesSearchVerbatim(t *testing.T) {
	claim := "The treaty entered into force in 1998"
	if got := FormulateQuery(claim); got != claim {
		t.Errorf("expected verbatim query for dated claim, got %q", got)
	}
}

func TestFormulateQuery_KeyTermsForProseClaims(t *testing.T) {
	claim := "Paris is the capital city of France"
	got := FormulateQuery(claim)
	if got != "Paris France" {
		t.Errorf("expected key terms, got %q", got)
	}
}

func TestFormulateQuery_AtMostThreeKeyTerms(t *testing.T) {
	claim := "Einstein visited Princeton before Oxford and later Cambridge"
	got := FormulateQuery(claim)
	if got != "Einstein Princeton Oxford" {
		t.Errorf("expected first three key terms, got %q", got)
	}
}

func TestFormulateQuery_FallbackPrefix(t *testing.T) {
	short := "the sky appears blue on clear days"
	if got := FormulateQuery(short); got != short {
		t.Errorf("expected claim itself as fallback, got %q", got)
	}

	long := ""
	for i := 0; i < 30; i++ {
		long += "words "
	}
	got := FormulateQuery(long)
	if len(got) > 100 {
		t.Errorf("expected bounded fallback query, got %d chars", len(got))
	}
}
