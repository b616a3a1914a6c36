package token

import "testing"

func TestLookupKeyword(t *testing.T) {
	if k, ok := LookupKeyword("impl"); !ok || k != KwImpl {
		t.Errorf("LookupKeyword(impl) = %v, %v", k, ok)
	}
	if k, ok := LookupKeyword("Self"); !ok || k != KwSelfType {
		t.Errorf("LookupKeyword(Self) = %v, %v", k, ok)
	}
	if k, ok := LookupKeyword("self"); !ok || k != KwSelfValue {
		t.Errorf("LookupKeyword(self) = %v, %v", k, ok)
	}
	// Регистрозависимость: "Impl" — обычный идентификатор.
	if _, ok := LookupKeyword("Impl"); ok {
		t.Error("keywords must be case sensitive")
	}
	if _, ok := LookupKeyword("banana"); ok {
		t.Error("banana is not a keyword")
	}
}
