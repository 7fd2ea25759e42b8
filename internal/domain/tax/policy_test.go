package tax

import "testing"

func TestResolveUnknownCodeUsesDefaults(t *testing.T) {
	rates := Resolve("ZZ")
	if rates.Federal != DefaultFederalRate {
		t.Fatalf("expected federal %v, got %v", DefaultFederalRate, rates.Federal)
	}
	if rates.State != DefaultStateRate {
		t.Fatalf("expected state %v, got %v", DefaultStateRate, rates.State)
	}
}

func TestResolveEmptyCodeUsesDefaults(t *testing.T) {
	rates := Resolve("")
	if rates.Federal != DefaultFederalRate || rates.State != DefaultStateRate {
		t.Fatalf("expected defaults, got %+v", rates)
	}
}

func TestResolveIsCaseInsensitive(t *testing.T) {
	lower := Resolve("fl")
	upper := Resolve("FL")
	if lower != upper {
		t.Fatalf("expected identical rates, got %+v and %+v", lower, upper)
	}
	if lower.State != 0 {
		t.Fatalf("expected FL state rate 0, got %v", lower.State)
	}
}

func TestResolveStateOnlyOverrideInheritsFederal(t *testing.T) {
	rates := Resolve("TX")
	if rates.State != 0 {
		t.Fatalf("expected TX state rate 0, got %v", rates.State)
	}
	if rates.Federal != DefaultFederalRate {
		t.Fatalf("expected TX federal rate %v, got %v", DefaultFederalRate, rates.Federal)
	}
}

func TestResolveTrimsWhitespace(t *testing.T) {
	rates := Resolve("  wa ")
	if rates.State != 0 {
		t.Fatalf("expected WA state rate 0, got %v", rates.State)
	}
}
