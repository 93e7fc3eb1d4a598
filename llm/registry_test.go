package llm

import "testing"

func TestRegistryCoversAllTypes(t *testing.T) {
	for _, typ := range []ProviderType{ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderCustom} {
		info, ok := Info(typ)
		if !ok {
			t.Errorf("%s: missing registry entry", typ)
			continue
		}
		if info.ID != typ.String() {
			t.Errorf("%s: registry ID %q does not match type string", typ, info.ID)
		}
	}
}

func TestValidateKey(t *testing.T) {
	cases := []struct {
		typ   ProviderType
		key   string
		valid bool
	}{
		{ProviderAnthropic, "sk-ant-REDACTED", true},
		{ProviderAnthropic, "sk-abcdefghijklmnopqrstuv", false},
		{ProviderAnthropic, "", false},
		{ProviderOpenAI, "sk-abcdefghijklmnopqrstuv", true},
		{ProviderOpenAI, "abcdefghijklmnopqrstuv", false},
		{ProviderGemini, "AIzaSyA1234567890abcdefghij", true},
		{ProviderGemini, "short", false},
		{ProviderCustom, "anything-goes", true},
		{ProviderCustom, "", false},
	}
	for _, c := range cases {
		if got := ValidateKey(c.typ, c.key); got != c.valid {
			t.Errorf("ValidateKey(%s, %q) = %v, want %v", c.typ, c.key, got, c.valid)
		}
	}
}

func TestDefaultModelNonEmpty(t *testing.T) {
	for _, typ := range []ProviderType{ProviderAnthropic, ProviderOpenAI, ProviderGemini} {
		if typ.DefaultModel() == "" {
			t.Errorf("%s: expected non-empty default model", typ)
		}
	}
	// Custom has no catalog; the model always comes from configuration.
	if ProviderCustom.DefaultModel() != "" {
		t.Error("custom: expected empty default model")
	}
}
