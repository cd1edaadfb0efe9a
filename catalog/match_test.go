package catalog

import (
	"testing"

	"github.com/tbxark/intentagent/types"
)

func newMatchCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := New(
		Intent{Label: "天气", Keywords: []string{"天气", "下雨", "气温"}, Tool: types.ToolDescriptor{Name: "weather"}},
		Intent{Label: "起名", Keywords: []string{"起名", "取名", "名字"}, Tool: types.ToolDescriptor{Name: "naming"}},
		Intent{Label: Reserved, Keywords: []string{"天气", "名字"}},
		Intent{Label: "翻译", Keywords: []string{"Translate"}, Tool: types.ToolDescriptor{Name: "translate"}},
	)
	if err != nil {
		t.Fatalf("创建 catalog 失败: %v", err)
	}
	return c
}

func TestMatch(t *testing.T) {
	c := newMatchCatalog(t)
	cases := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{"single keyword", "今天北京的天气怎么样？", "天气", true},
		{"multiple keywords", "明天会下雨吗？气温多少度？", "天气", true},
		{"synonym", "宝宝取名", "起名", true},
		{"highest score wins", "帮我起名字，天气不错", "起名", true},
		{"tie keeps catalog order", "天气不好，名字也不好听", "天气", true},
		{"case insensitive", "please TRANSLATE this", "翻译", true},
		{"no keyword", "帮我查询一下", "", false},
		{"empty text", "", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := c.Match(tc.text)
			if got != tc.want || ok != tc.wantOK {
				t.Errorf("Match(%q) = (%q, %v)，期望 (%q, %v)", tc.text, got, ok, tc.want, tc.wantOK)
			}
		})
	}
}

func TestMatchIsDeterministic(t *testing.T) {
	c := newMatchCatalog(t)
	first, _ := c.Match("天气不好，名字也不好听")
	for i := 0; i < 100; i++ {
		if got, _ := c.Match("天气不好，名字也不好听"); got != first {
			t.Fatalf("第 %d 次匹配结果不同: %q != %q", i, got, first)
		}
	}
}

func TestMatchSkipsEmptyKeywords(t *testing.T) {
	c, err := New(Intent{Label: "空", Tool: types.ToolDescriptor{Name: "empty"}})
	if err != nil {
		t.Fatalf("创建 catalog 失败: %v", err)
	}
	if _, ok := c.Match("任何文本"); ok {
		t.Error("没有关键词的意图不应匹配")
	}
}
