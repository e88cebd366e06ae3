package propfirm

import (
	"errors"
	"testing"

	"github.com/WilliamPapier/MyPhytonEA/internal/models"
)

func TestRulesForKnownFirms(t *testing.T) {
	rules, err := RulesFor("ftmo")
	if err != nil {
		t.Fatalf("expected ftmo rules, got %v", err)
	}
	if rules.FirmName != "FTMO" || rules.MaxDailyLoss != 500 {
		t.Errorf("unexpected ftmo rules %+v", rules)
	}

	// Lookup is case-insensitive
	if _, err := RulesFor("FTMO"); err != nil {
		t.Errorf("expected case-insensitive lookup, got %v", err)
	}
}

func TestRulesForUnknownFirm(t *testing.T) {
	_, err := RulesFor("nonexistent")
	if !errors.Is(err, models.ErrUnknownPropFirm) {
		t.Errorf("expected ErrUnknownPropFirm, got %v", err)
	}
}

func TestFirmNamesSorted(t *testing.T) {
	names := FirmNames()
	if len(names) != 4 {
		t.Fatalf("expected 4 firms, got %d", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("expected sorted names, got %v", names)
		}
	}
	for _, name := range names {
		if _, err := RulesFor(name); err != nil {
			t.Errorf("listed firm %s not resolvable: %v", name, err)
		}
	}
}

func TestSessionAllowed(t *testing.T) {
	rules, _ := RulesFor("ftmo")
	if !rules.SessionAllowed(SessionLondon) {
		t.Error("expected London allowed for ftmo")
	}
	if rules.SessionAllowed(SessionAsian) {
		t.Error("expected Asian disallowed for ftmo")
	}
}
