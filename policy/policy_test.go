package policy

import (
	"testing"

	trust "github.com/ajudaki/trust"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if !cfg.Enabled {
		t.Error("Default().Enabled = false, want true")
	}
	if cfg.ImageBlockThreshold != 0.7 {
		t.Errorf("ImageBlockThreshold = %v, want 0.7", cfg.ImageBlockThreshold)
	}
	if cfg.TextBlockThreshold != 0.7 {
		t.Errorf("TextBlockThreshold = %v, want 0.7", cfg.TextBlockThreshold)
	}
	if cfg.ReviewThreshold != 0.3 {
		t.Errorf("ReviewThreshold = %v, want 0.3", cfg.ReviewThreshold)
	}
}

func TestConfig_With(t *testing.T) {
	enabled := false
	review := 0.5

	base := Default()
	merged := base.With(&Override{
		Enabled:         &enabled,
		ReviewThreshold: &review,
	})

	if merged.Enabled {
		t.Error("merged.Enabled = true, want false")
	}
	if merged.ReviewThreshold != 0.5 {
		t.Errorf("merged.ReviewThreshold = %v, want 0.5", merged.ReviewThreshold)
	}
	// Unset fields keep defaults.
	if merged.ImageBlockThreshold != 0.7 {
		t.Errorf("merged.ImageBlockThreshold = %v, want 0.7", merged.ImageBlockThreshold)
	}

	// The merge is pure: the base config is untouched.
	if !base.Enabled || base.ReviewThreshold != 0.3 {
		t.Errorf("base config was mutated: %+v", base)
	}
}

func TestConfig_With_Nil(t *testing.T) {
	base := Default()
	if got := base.With(nil); got != base {
		t.Errorf("With(nil) = %+v, want %+v", got, base)
	}
}

func TestThresholds_With(t *testing.T) {
	base := DefaultImageThresholds()
	merged := base.With(Thresholds{
		trust.ImageCategoryWeapon: 0.5,
		"unknown_category":        0.1,
	})

	if merged[trust.ImageCategoryWeapon] != 0.5 {
		t.Errorf("merged weapon = %v, want 0.5", merged[trust.ImageCategoryWeapon])
	}
	if _, ok := merged["unknown_category"]; ok {
		t.Error("unknown override key should be ignored")
	}
	if base[trust.ImageCategoryWeapon] != 0.7 {
		t.Errorf("base thresholds mutated: weapon = %v", base[trust.ImageCategoryWeapon])
	}
}

func TestDefaultImageThresholds(t *testing.T) {
	th := DefaultImageThresholds()

	if th[trust.ImageCategoryAlcohol] != 0.9 {
		t.Errorf("alcohol threshold = %v, want 0.9", th[trust.ImageCategoryAlcohol])
	}
	for _, cat := range trust.ImageCategories {
		if _, ok := th[cat]; !ok {
			t.Errorf("missing threshold for image category %q", cat)
		}
	}
}

func TestDefaultTextThresholds(t *testing.T) {
	th := DefaultTextThresholds()

	want := map[string]float64{
		trust.TextCategoryThreat:         0.5,
		trust.TextCategorySevereToxicity: 0.5,
		trust.TextCategoryIdentityAttack: 0.6,
		trust.TextCategoryToxicity:       0.7,
		trust.TextCategoryInsult:         0.7,
		trust.TextCategoryProfanity:      0.9,
	}
	for cat, w := range want {
		if th[cat] != w {
			t.Errorf("threshold for %q = %v, want %v", cat, th[cat], w)
		}
	}
}
