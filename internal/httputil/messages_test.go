package httputil

import "testing"

func TestResolveLocale(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{header: "", want: "en"},
		{header: "zh-CN,zh;q=0.9,en;q=0.8", want: "zh"},
		{header: "en-US,en;q=0.9", want: "en"},
		{header: "fr-FR", want: "en"},
		{header: ";;;garbage", want: "en"},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			if got := ResolveLocale(tt.header); got != tt.want {
				t.Errorf("ResolveLocale(%q) = %q, want %q", tt.header, got, tt.want)
			}
		})
	}
}

func TestLocalize(t *testing.T) {
	if got := Localize("zh", MsgNotFound); got != "未找到" {
		t.Errorf("Localize(zh) = %q", got)
	}
	if got := Localize("de", MsgInternalServerError); got != "Internal Server Error" {
		t.Errorf("Localize(de) = %q, want English fallback", got)
	}
}
