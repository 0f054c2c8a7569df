package sdk

import "testing"

func TestResolveAndroid(t *testing.T) {
	tests := []struct {
		api        int
		layout     LayoutTier
		appearance AppearanceTier
	}{
		{26, LayoutMargins, AppearanceUnsupported},
		{29, LayoutMargins, AppearanceUnsupported},
		{R, LayoutMargins, AppearanceController},
		{SV2, LayoutMargins, AppearanceController},
		{Tiramisu, LayoutMargins, AppearanceExplicitColors},
		{UpsideDownCake, LayoutMargins, AppearanceController},
		{VanillaIceCream, LayoutCSSVariables, AppearanceController},
		{36, LayoutCSSVariables, AppearanceController},
	}
	for _, tt := range tests {
		caps := Resolve(Android, tt.api)
		if caps.Layout != tt.layout {
			t.Errorf("api %d: layout = %s, want %s", tt.api, caps.Layout, tt.layout)
		}
		if caps.Appearance != tt.appearance {
			t.Errorf("api %d: appearance = %s, want %s", tt.api, caps.Appearance, tt.appearance)
		}
		if caps.APILevel != tt.api {
			t.Errorf("api %d: APILevel = %d", tt.api, caps.APILevel)
		}
	}
}

func TestResolveOtherPlatforms(t *testing.T) {
	for _, p := range []Platform{IOS, Web} {
		caps := Resolve(p, 35)
		if caps.Layout != LayoutNone || caps.Appearance != AppearanceUnsupported {
			t.Errorf("%s: got %s, want no-op capabilities", p, caps)
		}
	}
}

func TestCapabilitiesString(t *testing.T) {
	got := Resolve(Android, Tiramisu).String()
	want := "android api=33 layout=margins appearance=explicit-colors"
	if got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got := Resolve(Web, 0).String(); got != "web layout=none appearance=unsupported" {
		t.Errorf("String() = %q", got)
	}
}

func TestParsePlatform(t *testing.T) {
	if p, err := ParsePlatform("android"); err != nil || p != Android {
		t.Errorf("ParsePlatform(android) = %q, %v", p, err)
	}
	if _, err := ParsePlatform("symbian"); err == nil {
		t.Error("expected error for unknown platform")
	}
}
