package catalog

import "github.com/tbxark/intentagent/types"

// DefaultIntents is the built-in ERP assistant catalog.
func DefaultIntents() []Intent {
	return []Intent{
		{
			Label:    "订单",
			Keywords: []string{"订单", "查询", "查看", "状态", "详情"},
			Hint:     "今年是{year}年，本月是{month}月",
			Tool: types.ToolDescriptor{
				Name:        "get_order_data",
				Description: "你想查询订单数据",
				Slots: []types.Slot{
					{Name: "开始时间", Description: "查询的时间，格式为YYYY-MM-DD HH:MM:SS，默认值NONE"},
					{Name: "结束时间", Description: "查询的时间，格式为YYYY-MM-DD HH:MM:SS，默认值NONE"},
				},
			},
		},
		{
			Label:    "起名",
			Keywords: []string{"起名", "取名", "名字", "命名", "叫什么", "姓名"},
			Tool: types.ToolDescriptor{
				Name:        "naming",
				Description: "你想根据您的信息起名",
				Slots: []types.Slot{
					{Name: "姓氏", Description: "您的姓氏，默认值NONE"},
					{Name: "性别", Description: "男/女，默认值NONE"},
					{Name: "出生日期", Description: "您的出生日期,格式为YYYY-MM-DD，默认值NONE"},
					{Name: "出生时间", Description: "您的出生时间，格式为HH:MM:SS"},
					{Name: "出生城市", Description: "您的出生城市，默认值NONE"},
					{Name: "字数要求", Description: "单字/双字，默认值NONE"},
					{Name: "特殊要求", Description: "偏好，特殊要求，默认值NONE"},
				},
				Required: []string{"姓氏", "性别", "出生日期", "出生时间", "出生城市", "字数要求"},
			},
		},
	}
}

func Default() *Catalog {
	c, err := New(DefaultIntents()...)
	if err != nil {
		panic(err)
	}
	return c
}
