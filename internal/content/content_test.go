package content

import (
	"math/rand"
	"testing"

	"github.com/vklychkov/gemduel/internal/grid"
)

func TestClassRegistry(t *testing.T) {
	infos := ListClasses()
	if len(infos) != 3 {
		t.Fatalf("registered classes = %d, want 3", len(infos))
	}
	for _, info := range infos {
		if !ClassExists(info.ID) {
			t.Errorf("ClassExists(%q) = false", info.ID)
		}
		c, err := ClassByID(info.ID)
		if err != nil {
			t.Fatalf("ClassByID(%q): %v", info.ID, err)
		}
		if c.MaxHealth <= 0 {
			t.Errorf("class %q has max health %d", c.ID, c.MaxHealth)
		}
		if len(c.Skills) != 3 {
			t.Errorf("class %q has %d skills, want 3", c.ID, len(c.Skills))
		}
	}

	if _, err := ClassByID("bogus"); err == nil {
		t.Error("ClassByID accepted an unknown ID")
	}
	if ClassExists("bogus") {
		t.Error("ClassExists accepted an unknown ID")
	}
}

func TestSkillCatalogConsistency(t *testing.T) {
	seen := make(map[string]bool)
	for _, info := range ListClasses() {
		class, err := ClassByID(info.ID)
		if err != nil {
			t.Fatal(err)
		}
		for _, sk := range class.Skills {
			if seen[sk.ID] {
				t.Errorf("duplicate skill ID %q", sk.ID)
			}
			seen[sk.ID] = true

			if sk.Cost.Amount <= 0 {
				t.Errorf("skill %q is free", sk.ID)
			}
			if sk.NeedsTarget && sk.OnTarget == nil {
				t.Errorf("targeted skill %q has no target action", sk.ID)
			}
			if !sk.NeedsTarget && len(sk.Effects) == 0 {
				t.Errorf("untargeted skill %q does nothing", sk.ID)
			}

			got, err := SkillByID(sk.ID)
			if err != nil {
				t.Errorf("SkillByID(%q): %v", sk.ID, err)
			} else if got.ID != sk.ID {
				t.Errorf("SkillByID(%q) returned %q", sk.ID, got.ID)
			}
		}
	}
	if _, err := SkillByID("bogus"); err == nil {
		t.Error("SkillByID accepted an unknown ID")
	}
}

func TestBlessingCatalogIntegrity(t *testing.T) {
	ids := make(map[string]bool)
	for _, bl := range BlessingCatalog() {
		if bl.ID == "" || bl.Name == "" {
			t.Errorf("blessing %+v missing identity", bl)
		}
		if ids[bl.ID] {
			t.Errorf("duplicate blessing ID %q", bl.ID)
		}
		ids[bl.ID] = true
		if bl.Cost.Amount <= 0 {
			t.Errorf("blessing %q is free", bl.ID)
		}
		if len(bl.Effects) == 0 {
			t.Errorf("blessing %q has no effects", bl.ID)
		}
		if bl.Duration < 0 {
			t.Errorf("blessing %q has negative duration", bl.ID)
		}

		got, ok := BlessingByID(bl.ID)
		if !ok || got.ID != bl.ID {
			t.Errorf("BlessingByID(%q) lookup failed", bl.ID)
		}
	}
}

func TestSampleBlessings(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	offers := SampleBlessings(rng, 3, nil)
	if len(offers) != 3 {
		t.Fatalf("sampled %d offers, want 3", len(offers))
	}
	seen := make(map[string]bool)
	for _, o := range offers {
		if seen[o.ID] {
			t.Errorf("offer %q sampled twice", o.ID)
		}
		seen[o.ID] = true
	}

	exclude := make(map[string]bool)
	for _, bl := range BlessingCatalog() {
		exclude[bl.ID] = true
	}
	if got := SampleBlessings(rng, 3, exclude); len(got) != 0 {
		t.Errorf("sampling a fully excluded catalog returned %d offers", len(got))
	}

	// Asking for more than the catalog holds returns the whole catalog.
	all := SampleBlessings(rng, 1000, nil)
	if len(all) != len(BlessingCatalog()) {
		t.Errorf("oversampling returned %d, want the full catalog of %d",
			len(all), len(BlessingCatalog()))
	}
}

func TestItemCatalogAndRelics(t *testing.T) {
	for _, item := range ItemCatalog() {
		got, ok := ItemByID(item.ID)
		if !ok || got.ID != item.ID {
			t.Errorf("ItemByID(%q) lookup failed", item.ID)
		}
		p := item.AsPlayerItem()
		if p.ID != item.ID || p.Slot != item.Slot {
			t.Errorf("AsPlayerItem(%q) dropped fields: %+v", item.ID, p)
		}
	}
	if _, ok := ItemByID("bogus"); ok {
		t.Error("ItemByID accepted an unknown ID")
	}

	relic := ForgeRelic(3)
	if relic.ID != "blessed_relic_3" {
		t.Errorf("relic ID = %q", relic.ID)
	}
	effects := RelicEffects(relic.ID)
	if len(effects) != 1 || effects[0].Defense != 3 || effects[0].Health != 6 {
		t.Errorf("RelicEffects(%q) = %+v", relic.ID, effects)
	}
	if RelicEffects("aegis_plate") != nil {
		t.Error("RelicEffects accepted a non-relic ID")
	}
	if RelicEffects("blessed_relic_0") != nil {
		t.Error("RelicEffects accepted a zero-strength relic")
	}
}

func TestVerdantRenewalShape(t *testing.T) {
	bl, ok := BlessingByID("verdant_renewal")
	if !ok {
		t.Fatal("verdant_renewal missing from the catalog")
	}
	if bl.Duration != 3 {
		t.Errorf("duration = %d, want 3", bl.Duration)
	}
	if bl.Color != grid.Green {
		t.Errorf("color = %v, want green", bl.Color)
	}
}
