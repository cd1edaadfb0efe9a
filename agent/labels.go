package agent

import (
	"fmt"
	"slices"

	"github.com/tbxark/intentagent/catalog"
	"github.com/tbxark/intentagent/intent"
	"github.com/tbxark/intentagent/types"
)

// Labels are the fixed classifier vocabularies and canned texts of the router.
type Labels struct {
	// Reject categories refuse the request on entry.
	Reject []string

	// ChitChat is the self-referential "about the assistant" label.
	ChitChat string

	Negate        string
	Refuse        string
	ConfirmPrefix string
	Modify        string
	Affirm        string
	Unrelated     string

	RejectText      string
	ChitChatText    string
	DoubtPrefix     string
	DoubtSuffix     string
	UnavailableText string
}

func DefaultLabels() Labels {
	return Labels{
		Reject:          []string{"政治敏感", "违法犯罪", "违反道德"},
		ChitChat:        "关于我",
		Negate:          "否定",
		Refuse:          "拒绝",
		ConfirmPrefix:   "确认",
		Modify:          "修改",
		Affirm:          "肯定",
		Unrelated:       catalog.Reserved,
		RejectText:      "不好意思！我好像没有理解您的意思。",
		ChitChatText:    "我是智能助手。",
		DoubtPrefix:     "不太确定您的意思，",
		DoubtSuffix:     "？",
		UnavailableText: "抱歉，服务暂时不可用，请稍后再试。",
	}
}

func (l Labels) confirmLabel(tool types.ToolDescriptor) string {
	return l.ConfirmPrefix + tool.Description
}

func (l Labels) doubtHint(tool types.ToolDescriptor) string {
	return l.DoubtPrefix + tool.Description + l.DoubtSuffix
}

// catalogLabels drops the reserved pseudo-intent, which is never a routing target.
func catalogLabels(cat *catalog.Catalog) []string {
	return slices.DeleteFunc(cat.Labels(), func(s string) bool { return s == catalog.Reserved })
}

func (l Labels) entry(cat *catalog.Catalog) []string {
	out := slices.Clone(l.Reject)
	out = append(out, catalogLabels(cat)...)
	return append(out, l.ChitChat)
}

func (l Labels) reconfirm(cat *catalog.Catalog) []string {
	return append([]string{l.Negate, l.Unrelated}, catalogLabels(cat)...)
}

// decision groups the labels of a yes/no style classification.
type decision struct {
	labels []string
	reject []string
	accept []string
}

func (d decision) isReject(label string) bool { return slices.Contains(d.reject, label) }
func (d decision) isAccept(label string) bool { return slices.Contains(d.accept, label) }

func (l Labels) doubt(tool types.ToolDescriptor) decision {
	reject := []string{l.Negate, l.Refuse}
	accept := []string{l.confirmLabel(tool), l.Modify, l.Affirm}
	return decision{
		labels: slices.Concat(reject, accept, []string{l.Unrelated}),
		reject: reject,
		accept: accept,
	}
}

func (l Labels) confirm(tool types.ToolDescriptor) decision {
	reject := []string{l.Negate, l.Modify}
	accept := []string{l.confirmLabel(tool)}
	return decision{
		labels: slices.Concat(reject, accept, []string{l.Unrelated}),
		reject: reject,
		accept: accept,
	}
}

func (l Labels) validate(cat *catalog.Catalog) error {
	entry := l.entry(cat)
	if len(entry) > intent.MaxLabels {
		return fmt.Errorf("%w: entry classification offers %d labels", intent.ErrTooManyLabels, len(entry))
	}
	if len(l.reconfirm(cat)) > intent.MaxLabels {
		return fmt.Errorf("%w: callback re-confirmation offers %d labels", intent.ErrTooManyLabels, len(l.reconfirm(cat)))
	}
	reserved := append(slices.Clone(l.Reject), l.ChitChat, l.Negate)
	for _, label := range catalogLabels(cat) {
		if slices.Contains(reserved, label) {
			return fmt.Errorf("%w: intent label %q collides with a router label", types.ErrInvalidCatalog, label)
		}
	}
	return nil
}

// LocalKeywords gives an intent.LocalClassifier enough vocabulary to stand
// in for the model: catalog keywords plus plain yes/no words.
func LocalKeywords(cat *catalog.Catalog, l Labels) map[string][]string {
	out := map[string][]string{
		l.Negate:    {"不对", "不是", "不要", "取消", "否"},
		l.Refuse:    {"拒绝", "算了"},
		l.Modify:    {"修改", "改成", "改为", "换成"},
		l.Affirm:    {"是的", "对的", "没错", "好的"},
		l.ChitChat:  {"你是谁", "你叫什么", "介绍一下你"},
		l.Unrelated: {},
	}
	for _, label := range l.Reject {
		out[label] = []string{}
	}
	for _, in := range cat.Intents() {
		if in.Label == catalog.Reserved {
			continue
		}
		out[in.Label] = slices.Clone(in.Keywords)
		out[l.confirmLabel(in.Tool)] = []string{"确认", "确定", "提交", "没问题"}
	}
	return out
}
