package tableview

import "testing"

func TestFormatColumnName(t *testing.T) {
	tests := []struct {
		key      string
		expected string
	}{
		{"pct-qps", "% QPS"},
		{"user-id", "User ID"},
		{"spend-delta", "Spend Δ"},
		{"campaign", "Campaign"},
		{"win-rate-percent", "Win Rate %"},
		{"advertiser-id", "Advertiser ID"},
		{"cpm", "Cpm"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := FormatColumnName(tt.key); got != tt.expected {
				t.Errorf("FormatColumnName(%q) = %q, want %q", tt.key, got, tt.expected)
			}
		})
	}
}

func TestIsNumericString(t *testing.T) {
	tests := []struct {
		formatted string
		numeric   bool
	}{
		{"$1,234.50", true},
		{"12.34%", true},
		{"1.03x", true},
		{"12.5K", true},
		{"-3.2", true},
		{"1,204", true},
		{"Acme Corp", false},
		{"", false},
		{"$", false},
		{"3.4G", true},
		{"12 users", false},
	}

	for _, tt := range tests {
		t.Run(tt.formatted, func(t *testing.T) {
			if got := IsNumericString(tt.formatted); got != tt.numeric {
				t.Errorf("IsNumericString(%q) = %v, want %v", tt.formatted, got, tt.numeric)
			}
		})
	}
}

func TestResolveKeysExplicitOrder(t *testing.T) {
	tv := New(Config{Columns: []string{"b", "a", "c"}})
	keys := tv.resolveKeys(Row{"a": 1, "b": 2, "c": 3, "d": 4})
	want := []string{"b", "a", "c"}
	if len(keys) != len(want) {
		t.Fatalf("got %d keys, want %d", len(keys), len(want))
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestResolveKeysDerived(t *testing.T) {
	tv := New(Config{})
	keys := tv.resolveKeys(Row{"spend": 1.0, "campaign": "x", "qps": 2.0})
	// Derived order is alphabetical since Go maps have no enumeration order.
	want := []string{"campaign", "qps", "spend"}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestDisplayNameOverride(t *testing.T) {
	tv := New(Config{ColumnNames: map[string]string{"cpm": "CPM"}})
	if got := tv.displayName("cpm"); got != "CPM" {
		t.Errorf("displayName(cpm) = %q, want CPM", got)
	}
	if got := tv.displayName("spend"); got != "Spend" {
		t.Errorf("displayName(spend) = %q, want Spend", got)
	}
}
